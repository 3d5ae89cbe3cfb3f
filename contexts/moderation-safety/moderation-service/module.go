package moderationservice

import (
	"log/slog"
	"time"

	httpadapter "vidstream/contexts/moderation-safety/moderation-service/adapters/http"
	"vidstream/contexts/moderation-safety/moderation-service/adapters/memory"
	"vidstream/contexts/moderation-safety/moderation-service/application"
	"vidstream/contexts/moderation-safety/moderation-service/application/workers"
	"vidstream/contexts/moderation-safety/moderation-service/domain/services"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
)

type Module struct {
	Handler          httpadapter.Handler
	Service          application.Service
	OutboxRelay      workers.OutboxRelay
	StrikeReconciler workers.StrikeReconciler
	Store            *memory.Store
}

type Dependencies struct {
	Repository     ports.Repository
	Idempotency    ports.IdempotencyStore
	Outbox         ports.OutboxRepository
	Reconciler     ports.StrikeReconciler
	Notifier       ports.Notifier
	Clock          ports.Clock
	IDs            ports.IDGenerator
	Policy         services.ThresholdPolicy
	StrikeExpiry   time.Duration
	IdempotencyTTL time.Duration
	OutboxBatch    int
	Metrics        ports.Metrics
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:           deps.Repository,
		Idempotency:    deps.Idempotency,
		Outbox:         deps.Outbox,
		Notifier:       deps.Notifier,
		Clock:          deps.Clock,
		IDs:            deps.IDs,
		Policy:         deps.Policy,
		StrikeExpiry:   deps.StrikeExpiry,
		IdempotencyTTL: deps.IdempotencyTTL,
		Metrics:        deps.Metrics,
		Logger:         deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
		OutboxRelay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Notifier:  deps.Notifier,
			Clock:     deps.Clock,
			BatchSize: deps.OutboxBatch,
			Metrics:   deps.Metrics,
			Logger:    deps.Logger,
		},
		StrikeReconciler: workers.StrikeReconciler{
			Strikes: deps.Reconciler,
			Clock:   deps.Clock,
			Metrics: deps.Metrics,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule wires every port to one memory store seeded with the demo
// catalog. The store doubles as the notifier so deliveries can be inspected.
func NewInMemoryModule(notifier ports.Notifier, logger *slog.Logger) Module {
	store := memory.NewStore()
	store.SeedDemo()
	if notifier == nil {
		notifier = store
	}
	module := NewModule(Dependencies{
		Repository:     store,
		Idempotency:    store,
		Outbox:         store,
		Reconciler:     store,
		Notifier:       notifier,
		Clock:          store,
		IDs:            store,
		Policy:         services.DefaultThresholdPolicy(),
		IdempotencyTTL: 7 * 24 * time.Hour,
		Logger:         logger,
	})
	module.Store = store
	return module
}
