package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"vidstream/contexts/moderation-safety/moderation-service/application/workers"
	"vidstream/internal/platform/config"
)

type WorkerApp struct {
	runtime          *runtime
	ownsRuntime      bool
	outboxRelay      *workers.OutboxRelay
	strikeReconciler *workers.StrikeReconciler
	pollInterval     time.Duration
	logger           *slog.Logger
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return buildWorker(context.Background(), cfg, prometheus.DefaultRegisterer)
}

func buildWorker(ctx context.Context, cfg config.Config, registerer prometheus.Registerer) (*WorkerApp, error) {
	logger := newLogger(cfg, "worker")
	if !cfg.UsesDatabase() {
		return nil, errNoDatabase
	}
	rt, err := buildRuntime(ctx, cfg, logger, newMetrics(cfg, registerer))
	if err != nil {
		return nil, err
	}
	app := newWorkerApp(rt)
	app.ownsRuntime = true
	return app, nil
}

func newWorkerApp(rt *runtime) *WorkerApp {
	app := &WorkerApp{
		runtime:      rt,
		pollInterval: rt.cfg.WorkerPollInterval,
		logger:       rt.logger,
	}
	if rt.cfg.EnableOutboxRelay {
		relay := rt.module.OutboxRelay
		app.outboxRelay = &relay
	}
	if rt.cfg.EnableStrikeReconciler {
		reconciler := rt.module.StrikeReconciler
		app.strikeReconciler = &reconciler
	}
	return app
}

// Run polls each enabled job on its own goroutine until ctx ends. A failed
// cycle is logged and retried on the next tick.
func (w *WorkerApp) Run(ctx context.Context) error {
	if w.ownsRuntime {
		if err := w.runtime.subscribeNotificationLog(ctx); err != nil {
			return err
		}
	}
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", bootstrapModule,
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"outbox_relay", w.outboxRelay != nil,
		"strike_reconciler", w.strikeReconciler != nil,
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if w.outboxRelay != nil {
		group.Go(func() error {
			return w.poll(groupCtx, "outbox_relay", w.outboxRelay.RunOnce)
		})
	}
	if w.strikeReconciler != nil {
		group.Go(func() error {
			return w.poll(groupCtx, "strike_reconciler", w.strikeReconciler.RunOnce)
		})
	}
	return group.Wait()
}

func (w *WorkerApp) poll(ctx context.Context, job string, runOnce func(context.Context) (int, error)) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		if _, err := runOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.Error("worker cycle failed",
				"event", "bootstrap_worker_cycle_failed",
				"module", bootstrapModule,
				"layer", "platform",
				"job", job,
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if !w.ownsRuntime {
		return nil
	}
	return w.runtime.close()
}
