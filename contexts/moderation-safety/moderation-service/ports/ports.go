package ports

import (
	"context"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	contractsv1 "vidstream/contracts/gen/events/v1"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type IdempotencyRecord struct {
	Key         string
	RequestHash string
	Payload     []byte
	ExpiresAt   time.Time
}

// IdempotencyStore reads completed records and fills in the response of a
// key reserved through Tx.ReserveIdempotencyKey. A record without a payload is
// a reservation whose response has not been stored yet.
type IdempotencyStore interface {
	Get(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	Put(ctx context.Context, record IdempotencyRecord) error
}

// StrikeSubject selects the strikes that count toward one channel, or toward a
// user when the strike was issued without a channel.
type StrikeSubject struct {
	ChannelID string
	UserID    string
}

// OutboxMessage is a notification row persisted with the decision that produced it.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// Tx is the set of writes available inside one decision. Everything done
// through a Tx commits or rolls back together.
type Tx interface {
	GetUser(ctx context.Context, userID string) (entities.User, error)
	UpdateUserTrustScore(ctx context.Context, userID string, trustScore int) error

	GetChannel(ctx context.Context, channelID string) (entities.Channel, error)
	// LockChannel reads the channel and holds a row lock on it until the
	// transaction ends. Strike issuance and threshold checks go through it.
	LockChannel(ctx context.Context, channelID string) (entities.Channel, error)
	FindChannelByOwner(ctx context.Context, ownerID string) (entities.Channel, error)
	UpdateChannelStatus(ctx context.Context, channelID string, status entities.ChannelStatus, changedAt time.Time) error

	GetVideo(ctx context.Context, videoID string) (entities.Video, error)
	UpdateVideo(ctx context.Context, video entities.Video) error
	GetComment(ctx context.Context, commentID string) (entities.Comment, error)
	// DeleteCommentThread removes a comment and every reply below it.
	DeleteCommentThread(ctx context.Context, commentID string) (int, error)

	GetFlag(ctx context.Context, flagID string) (entities.Flag, error)
	FindOpenFlag(ctx context.Context, reporterID string, targetType entities.FlagTargetType, targetID string) (entities.Flag, bool, error)
	CreateFlag(ctx context.Context, flag entities.Flag) error
	// TransitionFlag stores next only while the row still carries
	// expectedVersion and an open status; otherwise ErrConcurrentModification.
	TransitionFlag(ctx context.Context, next entities.Flag, expectedVersion int) error

	GetClaim(ctx context.Context, claimID string) (entities.CopyrightClaim, error)
	// TransitionClaim stores next only while the row still carries
	// expectedVersion and one of the from statuses; otherwise
	// ErrConcurrentModification.
	TransitionClaim(ctx context.Context, next entities.CopyrightClaim, expectedVersion int, from []entities.ClaimStatus) error

	CreateStrike(ctx context.Context, strike entities.Strike) error
	GetStrike(ctx context.Context, strikeID string) (entities.Strike, error)
	UpdateStrike(ctx context.Context, strike entities.Strike) error
	DeleteStrike(ctx context.Context, strikeID string) error
	// ListActiveStrikes returns rows with active=true. Expiry is evaluated by the caller.
	ListActiveStrikes(ctx context.Context, subject StrikeSubject) ([]entities.Strike, error)

	// ReserveIdempotencyKey claims record.Key for this transaction. A live key
	// with another request hash is ErrIdempotencyConflict, with the same hash
	// ErrIdempotencyKeyInUse. The reservation rolls back with the transaction.
	ReserveIdempotencyKey(ctx context.Context, record IdempotencyRecord, now time.Time) error

	AppendAuditLog(ctx context.Context, entry entities.AuditLog) error
	CreateNotification(ctx context.Context, notification entities.Notification, message OutboxMessage) error
}

type FlagFilter struct {
	Status     entities.FlagStatus
	TargetType entities.FlagTargetType
	Limit      int
	Offset     int
}

type ClaimFilter struct {
	Status  entities.ClaimStatus
	VideoID string
	Limit   int
	Offset  int
}

type StrikeFilter struct {
	UserID     string
	ChannelID  string
	ActiveOnly bool
	Limit      int
	Offset     int
}

type AuditFilter struct {
	AdminID    string
	TargetType entities.AuditTargetType
	TargetID   string
	Limit      int
	Offset     int
}

type Repository interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
	ListFlags(ctx context.Context, filter FlagFilter) ([]entities.Flag, error)
	ListClaims(ctx context.Context, filter ClaimFilter) ([]entities.CopyrightClaim, error)
	ListStrikes(ctx context.Context, filter StrikeFilter) ([]entities.Strike, error)
	ListAuditLogs(ctx context.Context, filter AuditFilter) ([]entities.AuditLog, error)
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
	MarkOutboxFailed(ctx context.Context, outboxID string, reason string, failedAt time.Time) error
}

// StrikeReconciler flips active=false on strikes whose expiry has passed.
type StrikeReconciler interface {
	DeactivateLapsedStrikes(ctx context.Context, now time.Time) (int, error)
}

type NotificationRequest = contractsv1.ModerationNotificationRequested

// Notifier delivers a notification. Delivery transport is outside this module.
type Notifier interface {
	Notify(ctx context.Context, request NotificationRequest) error
}

type EventEnvelope = contractsv1.Envelope

type Metrics interface {
	DecisionApplied(kind string, outcome string)
	StrikeIssued(strikeType string, severity string)
	ChannelTransition(from string, to string)
	PartialFailure(stage string)
	OutboxRelayed(outcome string, count int)
	StrikesReconciled(count int)
}
