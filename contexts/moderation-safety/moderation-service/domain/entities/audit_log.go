package entities

import (
	"encoding/json"
	"time"
)

type AuditAction string

const (
	AuditFlagReviewStarted     AuditAction = "FLAG_REVIEW_STARTED"
	AuditFlagResolved          AuditAction = "FLAG_RESOLVED"
	AuditFlagDismissed         AuditAction = "FLAG_DISMISSED"
	AuditClaimUpheld           AuditAction = "COPYRIGHT_CLAIM_UPHELD"
	AuditClaimRejected         AuditAction = "COPYRIGHT_CLAIM_REJECTED"
	AuditClaimPartiallyUpheld  AuditAction = "COPYRIGHT_CLAIM_PARTIALLY_UPHELD"
	AuditClaimVideoBlocked     AuditAction = "COPYRIGHT_CLAIM_VIDEO_BLOCKED"
	AuditStrikeIssued          AuditAction = "STRIKE_ISSUED"
	AuditStrikeRemoved         AuditAction = "STRIKE_REMOVED"
	AuditStrikeExpired         AuditAction = "STRIKE_EXPIRED"
	AuditStrikeSeverityUpdated AuditAction = "STRIKE_SEVERITY_UPDATED"
	AuditStrikePurged          AuditAction = "STRIKE_PURGED"
)

type AuditTargetType string

const (
	AuditTargetFlag   AuditTargetType = "FLAG"
	AuditTargetClaim  AuditTargetType = "COPYRIGHT_CLAIM"
	AuditTargetStrike AuditTargetType = "STRIKE"
)

// AuditLog is append-only. Rows are never updated or deleted.
type AuditLog struct {
	AuditID    string
	AdminID    string
	Action     AuditAction
	TargetType AuditTargetType
	TargetID   string
	OldValue   json.RawMessage
	NewValue   json.RawMessage
	Notes      string
	CreatedAt  time.Time
}
