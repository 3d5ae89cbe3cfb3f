package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/domain/services"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
	contractsv1 "vidstream/contracts/gen/events/v1"
)

const sourceService = "moderation-service"

// auditEntry describes the state an admin operation changed.
type auditEntry struct {
	Action     entities.AuditAction
	TargetType entities.AuditTargetType
	TargetID   string
	Before     *decisionState
	After      *decisionState
	Notes      string
}

type channelTransition struct {
	From entities.ChannelStatus
	To   entities.ChannelStatus
}

// unitOfWork collects the side effects of one decision while its transaction
// is open. Channels locked through it stay cached for the rest of the decision.
type unitOfWork struct {
	tx          ports.Tx
	now         time.Time
	locked      map[string]entities.Channel
	notices     []services.Notice
	transitions []channelTransition
	issued      []entities.Strike
}

func (u *unitOfWork) notify(notice services.Notice) {
	if notice.UserID == "" {
		return
	}
	u.notices = append(u.notices, notice)
}

// commit runs fn inside one transaction. When adminID is set the operation is
// admin-initiated and fn must describe its mutation; the audit row and every
// queued notification are written before the transaction commits. Delivery of
// those notifications happens after commit and only produces warnings.
func (s Service) commit(
	ctx context.Context,
	adminID string,
	fn func(ctx context.Context, uow *unitOfWork) (*auditEntry, error),
) ([]string, error) {
	if s.Repo == nil {
		return nil, domainerrors.ErrDependencyUnavailable
	}
	now := s.now()
	var (
		messages    []ports.OutboxMessage
		transitions []channelTransition
		issued      []entities.Strike
	)
	err := s.Repo.WithinTx(ctx, func(tx ports.Tx) error {
		messages = messages[:0]
		if reservation, ok := idempotencyReservationFrom(ctx); ok {
			if err := tx.ReserveIdempotencyKey(ctx, reservation.record, reservation.now); err != nil {
				return err
			}
		}
		uow := &unitOfWork{tx: tx, now: now, locked: map[string]entities.Channel{}}
		entry, err := fn(ctx, uow)
		if err != nil {
			return err
		}
		if adminID != "" {
			if entry == nil {
				return fmt.Errorf("%w: admin mutation without audit entry", domainerrors.ErrRepositoryInvariantBroke)
			}
			if err := s.appendAudit(ctx, tx, adminID, *entry, now); err != nil {
				return err
			}
		}
		for _, notice := range uow.notices {
			message, err := s.queueNotification(ctx, tx, notice, now)
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		transitions = uow.transitions
		issued = uow.issued
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics := ResolveMetrics(s.Metrics)
	for _, strike := range issued {
		metrics.StrikeIssued(string(strike.Type), string(strike.Severity))
	}
	for _, transition := range transitions {
		metrics.ChannelTransition(string(transition.From), string(transition.To))
		ResolveLogger(s.Logger).Info("channel status changed",
			"event", "moderation_channel_status_changed",
			"module", moduleName,
			"layer", "application",
			"from", string(transition.From),
			"to", string(transition.To),
		)
	}
	return s.dispatch(ctx, messages), nil
}

func (s Service) appendAudit(ctx context.Context, tx ports.Tx, adminID string, entry auditEntry, now time.Time) error {
	auditID, err := s.newID(ctx)
	if err != nil {
		return err
	}
	before, err := encodeSnapshot(entry.Before)
	if err != nil {
		return err
	}
	after, err := encodeSnapshot(entry.After)
	if err != nil {
		return err
	}
	return tx.AppendAuditLog(ctx, entities.AuditLog{
		AuditID:    auditID,
		AdminID:    adminID,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		OldValue:   before,
		NewValue:   after,
		Notes:      entry.Notes,
		CreatedAt:  now,
	})
}

func (s Service) queueNotification(ctx context.Context, tx ports.Tx, notice services.Notice, now time.Time) (ports.OutboxMessage, error) {
	notificationID, err := s.newID(ctx)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	outboxID, err := s.newID(ctx)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	notification := entities.Notification{
		NotificationID: notificationID,
		UserID:         notice.UserID,
		Type:           notice.Type,
		Title:          notice.Title,
		Message:        notice.Message,
		VideoID:        notice.VideoID,
		ChannelID:      notice.ChannelID,
		CreatedAt:      now,
	}
	data, err := json.Marshal(ports.NotificationRequest{
		NotificationID: notification.NotificationID,
		UserID:         notification.UserID,
		Type:           string(notification.Type),
		Title:          notification.Title,
		Message:        notification.Message,
		VideoID:        notification.VideoID,
		ChannelID:      notification.ChannelID,
	})
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	payload, err := json.Marshal(ports.EventEnvelope{
		EventID:          notificationID,
		EventType:        contractsv1.EventTypeModerationNotificationRequested,
		OccurredAt:       now,
		SourceService:    sourceService,
		SchemaVersion:    1,
		PartitionKeyPath: contractsv1.ModerationNotificationPartitionKeyPath,
		PartitionKey:     notice.UserID,
		Data:             data,
	})
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	message := ports.OutboxMessage{
		OutboxID:     outboxID,
		EventType:    contractsv1.EventTypeModerationNotificationRequested,
		PartitionKey: notice.UserID,
		Payload:      payload,
		CreatedAt:    now,
	}
	if err := tx.CreateNotification(ctx, notification, message); err != nil {
		return ports.OutboxMessage{}, err
	}
	return message, nil
}
