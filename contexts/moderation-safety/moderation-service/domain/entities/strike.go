package entities

import (
	"strings"
	"time"

	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
)

type StrikeType string

const (
	StrikeTypeCommunityGuidelines StrikeType = "COMMUNITY_GUIDELINES"
	StrikeTypeCopyright           StrikeType = "COPYRIGHT"
	StrikeTypeSpam                StrikeType = "SPAM"
	StrikeTypeMisleading          StrikeType = "MISLEADING"
	StrikeTypeTermsOfService      StrikeType = "TERMS_OF_SERVICE"
)

func ParseStrikeType(raw string) (StrikeType, error) {
	value := StrikeType(strings.ToUpper(strings.TrimSpace(raw)))
	switch value {
	case StrikeTypeCommunityGuidelines, StrikeTypeCopyright, StrikeTypeSpam,
		StrikeTypeMisleading, StrikeTypeTermsOfService:
		return value, nil
	}
	return "", domainerrors.Invalid("unknown strike type %q", raw)
}

type StrikeSeverity string

const (
	SeverityWarning     StrikeSeverity = "WARNING"
	SeverityStrike      StrikeSeverity = "STRIKE"
	SeveritySuspension  StrikeSeverity = "SUSPENSION"
	SeverityTermination StrikeSeverity = "TERMINATION"
)

func ParseStrikeSeverity(raw string) (StrikeSeverity, error) {
	value := StrikeSeverity(strings.ToUpper(strings.TrimSpace(raw)))
	if value.Rank() == 0 {
		return "", domainerrors.Invalid("unknown strike severity %q", raw)
	}
	return value, nil
}

// Rank orders severities WARNING < STRIKE < SUSPENSION < TERMINATION; unknown is 0.
func (s StrikeSeverity) Rank() int {
	switch s {
	case SeverityWarning:
		return 1
	case SeverityStrike:
		return 2
	case SeveritySuspension:
		return 3
	case SeverityTermination:
		return 4
	}
	return 0
}

const DefaultStrikeExpiry = 90 * 24 * time.Hour

type Strike struct {
	StrikeID  string
	UserID    string
	ChannelID string
	Type      StrikeType
	Severity  StrikeSeverity
	Reason    string
	VideoID   string
	IssuedBy  string
	Active    bool
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEffective is true while the strike is active and not past its expiry.
// The expiry wins even when the active flag has not been reconciled yet.
func (s Strike) IsEffective(now time.Time) bool {
	return s.Active && now.UTC().Before(s.ExpiresAt.UTC())
}

type StrikeSpec struct {
	UserID    string
	ChannelID string
	Type      StrikeType
	Severity  StrikeSeverity
	Reason    string
	VideoID   string
	IssuedBy  string
	ExpiresIn time.Duration
}

func NewStrike(strikeID string, spec StrikeSpec, now time.Time) (Strike, error) {
	if strings.TrimSpace(strikeID) == "" ||
		strings.TrimSpace(spec.UserID) == "" ||
		strings.TrimSpace(spec.IssuedBy) == "" {
		return Strike{}, domainerrors.ErrInvalidRequest
	}
	if _, err := ParseStrikeType(string(spec.Type)); err != nil {
		return Strike{}, err
	}
	if spec.Severity.Rank() == 0 {
		return Strike{}, domainerrors.Invalid("unknown strike severity %q", spec.Severity)
	}
	if strings.TrimSpace(spec.Reason) == "" {
		return Strike{}, domainerrors.Invalid("strike reason is required")
	}
	expiresIn := spec.ExpiresIn
	if expiresIn == 0 {
		expiresIn = DefaultStrikeExpiry
	}
	if expiresIn < 0 {
		return Strike{}, domainerrors.Invalid("strike expiry must be positive")
	}
	now = now.UTC()
	return Strike{
		StrikeID:  strikeID,
		UserID:    strings.TrimSpace(spec.UserID),
		ChannelID: strings.TrimSpace(spec.ChannelID),
		Type:      spec.Type,
		Severity:  spec.Severity,
		Reason:    strings.TrimSpace(spec.Reason),
		VideoID:   strings.TrimSpace(spec.VideoID),
		IssuedBy:  strings.TrimSpace(spec.IssuedBy),
		Active:    true,
		ExpiresAt: now.Add(expiresIn),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
