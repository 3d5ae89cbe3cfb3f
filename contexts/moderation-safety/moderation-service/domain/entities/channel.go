package entities

import "time"

type ChannelStatus string

const (
	ChannelStatusActive     ChannelStatus = "ACTIVE"
	ChannelStatusSuspended  ChannelStatus = "SUSPENDED"
	ChannelStatusTerminated ChannelStatus = "TERMINATED"
)

type Channel struct {
	ChannelID       string
	OwnerID         string
	Name            string
	Status          ChannelStatus
	StatusChangedAt time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Visibility string

const (
	VisibilityPublic   Visibility = "PUBLIC"
	VisibilityUnlisted Visibility = "UNLISTED"
	VisibilityPrivate  Visibility = "PRIVATE"
)

type Video struct {
	VideoID       string
	ChannelID     string
	Title         string
	Visibility    Visibility
	AgeRestricted bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Comment struct {
	CommentID string
	VideoID   string
	AuthorID  string
	ParentID  string
	Body      string
	CreatedAt time.Time
}
