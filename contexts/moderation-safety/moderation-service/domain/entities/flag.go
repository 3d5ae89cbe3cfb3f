package entities

import (
	"strings"
	"time"

	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
)

type FlagTargetType string

const (
	FlagTargetVideo   FlagTargetType = "VIDEO"
	FlagTargetComment FlagTargetType = "COMMENT"
)

type FlagReason string

const (
	FlagReasonSpam           FlagReason = "SPAM"
	FlagReasonHarassment     FlagReason = "HARASSMENT"
	FlagReasonHateSpeech     FlagReason = "HATE_SPEECH"
	FlagReasonViolence       FlagReason = "VIOLENCE"
	FlagReasonSexualContent  FlagReason = "SEXUAL_CONTENT"
	FlagReasonMisinformation FlagReason = "MISINFORMATION"
	FlagReasonCopyright      FlagReason = "COPYRIGHT"
	FlagReasonChildSafety    FlagReason = "CHILD_SAFETY"
	FlagReasonOther          FlagReason = "OTHER"
)

func (r FlagReason) Valid() bool {
	switch r {
	case FlagReasonSpam, FlagReasonHarassment, FlagReasonHateSpeech, FlagReasonViolence,
		FlagReasonSexualContent, FlagReasonMisinformation, FlagReasonCopyright,
		FlagReasonChildSafety, FlagReasonOther:
		return true
	}
	return false
}

type FlagStatus string

const (
	FlagStatusPending     FlagStatus = "PENDING"
	FlagStatusUnderReview FlagStatus = "UNDER_REVIEW"
	FlagStatusResolved    FlagStatus = "RESOLVED"
	FlagStatusDismissed   FlagStatus = "DISMISSED"
)

// OpenFlagStatuses are the statuses from which an admin decision is accepted.
var OpenFlagStatuses = []FlagStatus{FlagStatusPending, FlagStatusUnderReview}

func (s FlagStatus) IsTerminal() bool {
	return s == FlagStatusResolved || s == FlagStatusDismissed
}

type Flag struct {
	FlagID     string
	ReporterID string
	TargetType FlagTargetType
	VideoID    string
	CommentID  string
	Reason     FlagReason
	Comment    string
	Status     FlagStatus
	Decision   string
	ReviewedBy string
	ReviewedAt *time.Time
	Notes      string
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewFlag(
	flagID string,
	reporterID string,
	targetType FlagTargetType,
	videoID string,
	commentID string,
	reason FlagReason,
	comment string,
	now time.Time,
) (Flag, error) {
	if strings.TrimSpace(flagID) == "" || strings.TrimSpace(reporterID) == "" {
		return Flag{}, domainerrors.ErrInvalidRequest
	}
	videoID = strings.TrimSpace(videoID)
	commentID = strings.TrimSpace(commentID)
	switch targetType {
	case FlagTargetVideo:
		if videoID == "" || commentID != "" {
			return Flag{}, domainerrors.Invalid("video flags must reference only a video")
		}
	case FlagTargetComment:
		if commentID == "" || videoID != "" {
			return Flag{}, domainerrors.Invalid("comment flags must reference only a comment")
		}
	default:
		return Flag{}, domainerrors.Invalid("unknown flag target type %q", targetType)
	}
	if !reason.Valid() {
		return Flag{}, domainerrors.Invalid("unknown flag reason %q", reason)
	}
	return Flag{
		FlagID:     flagID,
		ReporterID: reporterID,
		TargetType: targetType,
		VideoID:    videoID,
		CommentID:  commentID,
		Reason:     reason,
		Comment:    strings.TrimSpace(comment),
		Status:     FlagStatusPending,
		Version:    1,
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}, nil
}

func (f Flag) TargetID() string {
	if f.TargetType == FlagTargetComment {
		return f.CommentID
	}
	return f.VideoID
}
