package workers

import (
	"context"
	"log/slog"
	"time"

	application "vidstream/contexts/moderation-safety/moderation-service/application"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
)

const moduleName = "moderation-safety/moderation-service"

// OutboxRelay delivers notification rows that the request path could not.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Notifier  ports.Notifier
	Clock     ports.Clock
	BatchSize int
	Metrics   ports.Metrics
	Logger    *slog.Logger
}

// RunOnce delivers one batch. Undecodable rows are marked failed and skipped;
// a delivery error stops the batch so the row is retried next cycle.
func (r OutboxRelay) RunOnce(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(r.Logger)
	metrics := application.ResolveMetrics(r.Metrics)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list pending failed",
			"event", "moderation_outbox_list_failed",
			"module", moduleName,
			"layer", "worker",
			"error", err.Error(),
		)
		return 0, err
	}

	sent := 0
	for _, message := range pending {
		envelope, request, err := application.DecodeNotification(message.Payload)
		if err != nil {
			logger.Error("outbox payload decode failed",
				"event", "moderation_outbox_decode_failed",
				"module", moduleName,
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			metrics.OutboxRelayed("decode_failed", 1)
			if markErr := r.Outbox.MarkOutboxFailed(ctx, message.OutboxID, err.Error(), r.now()); markErr != nil {
				return sent, markErr
			}
			continue
		}

		if err := r.Notifier.Notify(ctx, request); err != nil {
			logger.Error("outbox notify failed",
				"event", "moderation_outbox_notify_failed",
				"module", moduleName,
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"event_id", envelope.EventID,
				"error", err.Error(),
			)
			metrics.OutboxRelayed("notify_failed", 1)
			return sent, err
		}
		if err := r.Outbox.MarkOutboxSent(ctx, message.OutboxID, r.now()); err != nil {
			logger.Error("outbox mark sent failed",
				"event", "moderation_outbox_mark_sent_failed",
				"module", moduleName,
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return sent, err
		}
		sent++
	}

	if sent > 0 {
		metrics.OutboxRelayed("sent", sent)
		logger.Info("outbox relay cycle completed",
			"event", "moderation_outbox_relay_completed",
			"module", moduleName,
			"layer", "worker",
			"sent_count", sent,
		)
	}
	return sent, nil
}

func (r OutboxRelay) now() time.Time {
	if r.Clock != nil {
		return r.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
