package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/ports"
	contractsv1 "vidstream/contracts/gen/events/v1"
)

const DefaultTopic = "moderation.notifications"

// Publisher is the subset of the platform bus the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, event contractsv1.Envelope) error
}

// BusNotifier hands notification requests to the delivery service through the
// event bus. The notification id doubles as the event id so redelivery by the
// outbox relay can be deduplicated downstream.
type BusNotifier struct {
	Publisher Publisher
	Topic     string
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (n BusNotifier) Notify(ctx context.Context, request ports.NotificationRequest) error {
	if n.Publisher == nil {
		return errors.New("notification publisher is not configured")
	}
	if strings.TrimSpace(request.NotificationID) == "" || strings.TrimSpace(request.UserID) == "" {
		return errors.New("notification id and user id are required")
	}
	data, err := json.Marshal(request)
	if err != nil {
		return err
	}
	occurredAt := time.Now().UTC()
	if n.Clock != nil {
		occurredAt = n.Clock.Now().UTC()
	}
	topic := n.Topic
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	envelope := contractsv1.Envelope{
		EventID:          request.NotificationID,
		EventType:        contractsv1.EventTypeModerationNotificationRequested,
		OccurredAt:       occurredAt,
		SourceService:    "moderation-service",
		SchemaVersion:    1,
		PartitionKeyPath: contractsv1.ModerationNotificationPartitionKeyPath,
		PartitionKey:     request.UserID,
		Data:             data,
	}
	if err := n.Publisher.Publish(ctx, topic, envelope); err != nil {
		return err
	}
	if n.Logger != nil {
		n.Logger.Debug("notification published",
			"event", "moderation_notification_published",
			"module", "moderation-safety/moderation-service",
			"layer", "adapter",
			"notification_id", request.NotificationID,
			"user_id", request.UserID,
			"type", request.Type,
		)
	}
	return nil
}

var _ ports.Notifier = BusNotifier{}
