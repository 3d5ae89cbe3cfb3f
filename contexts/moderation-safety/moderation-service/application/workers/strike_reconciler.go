package workers

import (
	"context"
	"log/slog"
	"time"

	application "vidstream/contexts/moderation-safety/moderation-service/application"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
)

// StrikeReconciler brings the stored active flag in line with expiresAt.
// Standing is already computed from expiry, so no channel is restored here,
// matching a manual expire.
type StrikeReconciler struct {
	Strikes ports.StrikeReconciler
	Clock   ports.Clock
	Metrics ports.Metrics
	Logger  *slog.Logger
}

func (r StrikeReconciler) RunOnce(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(r.Logger)
	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}
	count, err := r.Strikes.DeactivateLapsedStrikes(ctx, now)
	if err != nil {
		logger.Error("strike reconciliation failed",
			"event", "moderation_strike_reconcile_failed",
			"module", moduleName,
			"layer", "worker",
			"error", err.Error(),
		)
		return 0, err
	}
	if count > 0 {
		application.ResolveMetrics(r.Metrics).StrikesReconciled(count)
		logger.Info("lapsed strikes deactivated",
			"event", "moderation_strikes_reconciled",
			"module", moduleName,
			"layer", "worker",
			"count", count,
		)
	}
	return count, nil
}
