package bootstrap

import (
	"context"
	"log/slog"
	"time"

	postgresadapter "vidstream/contexts/moderation-safety/moderation-service/adapters/postgres"
	"vidstream/contexts/moderation-safety/moderation-service/application"
	"vidstream/internal/platform/config"
)

// OperatorApp backs the modctl commands. It never serves traffic and does
// not register metrics.
type OperatorApp struct {
	runtime *runtime
	logger  *slog.Logger
}

func BuildOperator(ctx context.Context) (*OperatorApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return buildOperator(ctx, cfg)
}

func buildOperator(ctx context.Context, cfg config.Config) (*OperatorApp, error) {
	logger := newLogger(cfg, "modctl")
	rt, err := buildRuntime(ctx, cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	return &OperatorApp{runtime: rt, logger: logger}, nil
}

// Migrate creates or updates the moderation tables.
func (o *OperatorApp) Migrate(_ context.Context) error {
	if o.runtime.database == nil {
		return errNoDatabase
	}
	if err := postgresadapter.Migrate(o.runtime.database.DB); err != nil {
		return err
	}
	o.logger.Info("moderation schema migrated",
		"event", "modctl_migrated",
		"module", bootstrapModule,
		"layer", "platform",
	)
	return nil
}

func (o *OperatorApp) SeedDemo(ctx context.Context) error {
	if o.runtime.repository == nil {
		return errNoDatabase
	}
	return o.runtime.repository.SeedDemo(ctx, time.Now().UTC())
}

func (o *OperatorApp) ReconcileStrikes(ctx context.Context) (int, error) {
	return o.runtime.module.StrikeReconciler.RunOnce(ctx)
}

// RelayOutbox drains pending notifications through the bus once.
func (o *OperatorApp) RelayOutbox(ctx context.Context) (int, error) {
	if err := o.runtime.subscribeNotificationLog(ctx); err != nil {
		return 0, err
	}
	return o.runtime.module.OutboxRelay.RunOnce(ctx)
}

func (o *OperatorApp) ChannelStanding(ctx context.Context, channelID string) (application.ChannelStanding, error) {
	return o.runtime.module.Service.ChannelStandingForOperator(ctx, channelID)
}

func (o *OperatorApp) Close() error {
	return o.runtime.close()
}
