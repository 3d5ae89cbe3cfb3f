package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	moderationservice "vidstream/contexts/moderation-safety/moderation-service"
	"vidstream/contexts/moderation-safety/moderation-service/adapters/memory"
	"vidstream/contexts/moderation-safety/moderation-service/adapters/notifier"
	postgresadapter "vidstream/contexts/moderation-safety/moderation-service/adapters/postgres"
	prometheusadapter "vidstream/contexts/moderation-safety/moderation-service/adapters/prometheus"
	"vidstream/contexts/moderation-safety/moderation-service/domain/services"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
	contractsv1 "vidstream/contracts/gen/events/v1"
	"vidstream/internal/platform/config"
	"vidstream/internal/platform/db"
	"vidstream/internal/platform/httpserver"
	"vidstream/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const bootstrapModule = "internal/app/bootstrap"

// runtime is the wiring shared by every process: storage, bus and the
// moderation module built on top of them.
type runtime struct {
	cfg        config.Config
	logger     *slog.Logger
	database   *db.Database
	repository *postgresadapter.Repository
	store      *memory.Store
	bus        *messaging.Bus
	module     moderationservice.Module
}

func buildRuntime(ctx context.Context, cfg config.Config, logger *slog.Logger, metrics ports.Metrics) (*runtime, error) {
	rt := &runtime{
		cfg:    cfg,
		logger: logger,
		bus:    messaging.NewBus(cfg.OutboxBatchSize, logger),
	}
	deps := moderationservice.Dependencies{
		Policy: services.ThresholdPolicy{
			SuspendAt:            cfg.StrikeSuspendThreshold,
			TerminateCopyrightAt: cfg.CopyrightTerminateThreshold,
		},
		StrikeExpiry:   cfg.StrikeExpiry(),
		IdempotencyTTL: cfg.IdempotencyTTL,
		OutboxBatch:    cfg.OutboxBatchSize,
		Metrics:        metrics,
		Logger:         logger,
	}

	if cfg.UsesDatabase() {
		database, err := db.Connect(cfg.DatabaseURL, cfg.DBMaxConnections, logger)
		if err != nil {
			rt.bus.Close()
			return nil, err
		}
		rt.database = database
		rt.repository = postgresadapter.NewRepository(database.DB, logger)
		if database.SQLite {
			if err := postgresadapter.Migrate(database.DB); err != nil {
				rt.close()
				return nil, err
			}
		}
		if cfg.SeedDemoData {
			if err := rt.repository.SeedDemo(ctx, time.Now().UTC()); err != nil {
				rt.close()
				return nil, err
			}
		}
		deps.Repository = rt.repository
		deps.Idempotency = rt.repository
		deps.Outbox = rt.repository
		deps.Reconciler = rt.repository
		deps.Clock = postgresadapter.SystemClock{}
		deps.IDs = postgresadapter.UUIDGenerator{}
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store",
			"event", "bootstrap_memory_store",
			"module", bootstrapModule,
			"layer", "platform",
		)
		rt.store = memory.NewStore()
		if cfg.SeedDemoData {
			rt.store.SeedDemo()
		}
		deps.Repository = rt.store
		deps.Idempotency = rt.store
		deps.Outbox = rt.store
		deps.Reconciler = rt.store
		deps.Clock = rt.store
		deps.IDs = rt.store
	}

	deps.Notifier = notifier.BusNotifier{
		Publisher: rt.bus,
		Topic:     cfg.NotificationTopic,
		Clock:     deps.Clock,
		Logger:    logger,
	}
	rt.module = moderationservice.NewModule(deps)
	rt.module.Store = rt.store
	return rt, nil
}

// subscribeNotificationLog attaches the delivery sink. Actual delivery to
// users belongs to the notification service; here events are logged.
func (rt *runtime) subscribeNotificationLog(ctx context.Context) error {
	return rt.bus.Subscribe(ctx, rt.cfg.NotificationTopic, "moderation-notification-log",
		func(_ context.Context, event contractsv1.Envelope) error {
			rt.logger.Info("moderation notification published",
				"event", "moderation_notification_published",
				"module", bootstrapModule,
				"layer", "platform",
				"event_id", event.EventID,
				"event_type", event.EventType,
				"partition_key", event.PartitionKey,
			)
			return nil
		})
}

func (rt *runtime) ready(ctx context.Context) error {
	if rt.database == nil {
		return nil
	}
	return rt.database.Ping(ctx)
}

func (rt *runtime) close() error {
	if rt.bus != nil {
		rt.bus.Close()
	}
	if rt.database != nil {
		return rt.database.Close()
	}
	return nil
}

func newLogger(cfg config.Config, process string) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With("service", cfg.ServiceName, "process", process)
	slog.SetDefault(logger)
	return logger
}

func newMetrics(cfg config.Config, registerer prometheus.Registerer) ports.Metrics {
	if !cfg.MetricsEnabled || registerer == nil {
		return nil
	}
	return prometheusadapter.NewMetrics(registerer)
}

type APIApp struct {
	runtime *runtime
	server  *httpserver.Server
	// loops run the relay and reconciler in-process when there is no shared
	// database for a separate worker to poll.
	loops  *WorkerApp
	logger *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return buildAPI(context.Background(), cfg, prometheus.DefaultRegisterer, promhttp.Handler())
}

func buildAPI(ctx context.Context, cfg config.Config, registerer prometheus.Registerer, metricsHandler http.Handler) (*APIApp, error) {
	logger := newLogger(cfg, "api")
	rt, err := buildRuntime(ctx, cfg, logger, newMetrics(cfg, registerer))
	if err != nil {
		return nil, err
	}

	opts := []httpserver.Option{httpserver.WithReadinessCheck(rt.ready)}
	if cfg.MetricsEnabled && metricsHandler != nil {
		opts = append(opts, httpserver.WithMetricsHandler(metricsHandler))
	}
	app := &APIApp{
		runtime: rt,
		server:  httpserver.New(rt.module, logger, normalizeAddr(cfg.HTTPPort), opts...),
		logger:  logger,
	}
	if rt.database == nil {
		app.loops = newWorkerApp(rt)
	}
	return app, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", bootstrapModule,
		"layer", "platform",
	)
	if err := a.runtime.subscribeNotificationLog(ctx); err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(a.server.Start)
	if a.loops != nil {
		group.Go(func() error { return a.loops.Run(groupCtx) })
	}
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

func (a *APIApp) Close() error {
	return a.runtime.close()
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

var errNoDatabase = errors.New("DATABASE_URL is required for this command")
