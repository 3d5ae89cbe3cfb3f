package application

import (
	"encoding/json"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
)

// Audit snapshots are serialized with stable snake_case keys so stored rows do
// not depend on Go field names.

type flagState struct {
	FlagID     string     `json:"flag_id"`
	Status     string     `json:"status"`
	Decision   string     `json:"decision,omitempty"`
	ReviewedBy string     `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Version    int        `json:"version"`
}

type claimState struct {
	ClaimID      string     `json:"claim_id"`
	Status       string     `json:"status"`
	Decision     string     `json:"decision,omitempty"`
	DecidedBy    string     `json:"decided_by,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	VideoBlocked bool       `json:"video_blocked"`
	Version      int        `json:"version"`
}

type videoState struct {
	VideoID       string `json:"video_id"`
	Visibility    string `json:"visibility"`
	AgeRestricted bool   `json:"age_restricted"`
}

type strikeState struct {
	StrikeID  string    `json:"strike_id"`
	UserID    string    `json:"user_id"`
	ChannelID string    `json:"channel_id,omitempty"`
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Reason    string    `json:"reason"`
	VideoID   string    `json:"video_id,omitempty"`
	Active    bool      `json:"active"`
	ExpiresAt time.Time `json:"expires_at"`
}

type decisionState struct {
	Flag           *flagState   `json:"flag,omitempty"`
	Claim          *claimState  `json:"claim,omitempty"`
	Video          *videoState  `json:"video,omitempty"`
	CommentDeleted int          `json:"comments_deleted,omitempty"`
	ContentMissing bool         `json:"content_missing,omitempty"`
	Strike         *strikeState `json:"strike,omitempty"`
	ChannelID      string       `json:"channel_id,omitempty"`
	ChannelStatus  string       `json:"channel_status,omitempty"`
	ReporterTrust  *int         `json:"reporter_trust_score,omitempty"`
}

func snapshotFlag(flag entities.Flag) *flagState {
	return &flagState{
		FlagID:     flag.FlagID,
		Status:     string(flag.Status),
		Decision:   flag.Decision,
		ReviewedBy: flag.ReviewedBy,
		ReviewedAt: flag.ReviewedAt,
		Notes:      flag.Notes,
		Version:    flag.Version,
	}
}

func snapshotClaim(claim entities.CopyrightClaim) *claimState {
	return &claimState{
		ClaimID:      claim.ClaimID,
		Status:       string(claim.Status),
		Decision:     claim.Decision,
		DecidedBy:    claim.DecidedBy,
		DecidedAt:    claim.DecidedAt,
		VideoBlocked: claim.VideoBlocked,
		Version:      claim.Version,
	}
}

func snapshotVideo(video entities.Video) *videoState {
	return &videoState{
		VideoID:       video.VideoID,
		Visibility:    string(video.Visibility),
		AgeRestricted: video.AgeRestricted,
	}
}

func snapshotStrike(strike entities.Strike) *strikeState {
	return &strikeState{
		StrikeID:  strike.StrikeID,
		UserID:    strike.UserID,
		ChannelID: strike.ChannelID,
		Type:      string(strike.Type),
		Severity:  string(strike.Severity),
		Reason:    strike.Reason,
		VideoID:   strike.VideoID,
		Active:    strike.Active,
		ExpiresAt: strike.ExpiresAt,
	}
}

func encodeSnapshot(value *decisionState) (json.RawMessage, error) {
	if value == nil {
		return nil, nil
	}
	return json.Marshal(value)
}
