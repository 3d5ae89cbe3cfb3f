package entities

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

const (
	MaxTrustScore        = 100
	ValidReportTrustGain = 2
)

type User struct {
	UserID     string
	Username   string
	Role       Role
	TrustScore int
	CreatedAt  time.Time
}

// RewardValidReport raises the trust score for a report an admin acted on.
func (u User) RewardValidReport() User {
	u.TrustScore = min(MaxTrustScore, u.TrustScore+ValidReportTrustGain)
	return u
}

// Actor is the authenticated caller as supplied by the session layer.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return strings.TrimSpace(a.UserID) != "" && Role(strings.ToUpper(string(a.Role))) == RoleAdmin
}
