package application

import (
	"context"
	"encoding/json"
	"fmt"

	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
	contractsv1 "vidstream/contracts/gen/events/v1"
)

// DecodeNotification unpacks an outbox payload into the notifier request it carries.
func DecodeNotification(payload []byte) (ports.EventEnvelope, ports.NotificationRequest, error) {
	var envelope ports.EventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return ports.EventEnvelope{}, ports.NotificationRequest{}, err
	}
	if envelope.EventType != contractsv1.EventTypeModerationNotificationRequested {
		return envelope, ports.NotificationRequest{}, fmt.Errorf("unexpected event type %q", envelope.EventType)
	}
	var request ports.NotificationRequest
	if err := json.Unmarshal(envelope.Data, &request); err != nil {
		return envelope, ports.NotificationRequest{}, err
	}
	return envelope, request, nil
}

// dispatch delivers freshly committed notifications without waiting for the
// outbox relay. Rows that fail here stay pending and the relay retries them.
func (s Service) dispatch(ctx context.Context, messages []ports.OutboxMessage) []string {
	if s.Notifier == nil || len(messages) == 0 {
		return nil
	}
	var warnings []string
	for _, message := range messages {
		_, request, err := DecodeNotification(message.Payload)
		if err == nil {
			err = s.Notifier.Notify(ctx, request)
		}
		if err != nil {
			warnings = append(warnings, s.reportPartialFailure("notification_dispatch", message.OutboxID, err))
			continue
		}
		if s.Outbox == nil {
			continue
		}
		if err := s.Outbox.MarkOutboxSent(ctx, message.OutboxID, s.now()); err != nil {
			warnings = append(warnings, s.reportPartialFailure("outbox_ack", message.OutboxID, err))
		}
	}
	return warnings
}

func (s Service) reportPartialFailure(stage string, outboxID string, err error) string {
	partial := &domainerrors.PartialFailureError{Stage: stage, Err: err}
	ResolveMetrics(s.Metrics).PartialFailure(stage)
	ResolveLogger(s.Logger).Error("moderation follow-up failed after commit",
		"event", "moderation_partial_failure",
		"module", moduleName,
		"layer", "application",
		"stage", stage,
		"outbox_id", outboxID,
		"error", partial.Error(),
	)
	return partial.Error()
}
