package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName      string `envconfig:"SERVICE_NAME" default:"vidstream-moderation"`
	HTTPPort         string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	DBMaxConnections int    `envconfig:"DB_MAX_CONNECTIONS" default:"20"`

	StrikeExpiryDays            int           `envconfig:"STRIKE_EXPIRY_DAYS" default:"90"`
	StrikeSuspendThreshold      int           `envconfig:"STRIKE_SUSPEND_THRESHOLD" default:"3"`
	CopyrightTerminateThreshold int           `envconfig:"COPYRIGHT_TERMINATE_THRESHOLD" default:"3"`
	IdempotencyTTL              time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"168h"`

	NotificationTopic  string        `envconfig:"NOTIFICATION_TOPIC" default:"moderation.notifications"`
	OutboxBatchSize    int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	WorkerPollInterval time.Duration `envconfig:"WORKER_POLL_INTERVAL" default:"2s"`

	EnableOutboxRelay      bool `envconfig:"ENABLE_OUTBOX_RELAY" default:"true"`
	EnableStrikeReconciler bool `envconfig:"ENABLE_STRIKE_RECONCILER" default:"true"`
	MetricsEnabled         bool `envconfig:"METRICS_ENABLED" default:"true"`
	// SeedDemoData loads the demo catalog into an empty in-memory or sqlite store.
	SeedDemoData bool `envconfig:"SEED_DEMO_DATA" default:"false"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.StrikeExpiryDays <= 0:
		return fmt.Errorf("STRIKE_EXPIRY_DAYS must be positive, got %d", c.StrikeExpiryDays)
	case c.StrikeSuspendThreshold <= 0:
		return fmt.Errorf("STRIKE_SUSPEND_THRESHOLD must be positive, got %d", c.StrikeSuspendThreshold)
	case c.CopyrightTerminateThreshold <= 0:
		return fmt.Errorf("COPYRIGHT_TERMINATE_THRESHOLD must be positive, got %d", c.CopyrightTerminateThreshold)
	case c.OutboxBatchSize <= 0:
		return fmt.Errorf("OUTBOX_BATCH_SIZE must be positive, got %d", c.OutboxBatchSize)
	case c.WorkerPollInterval <= 0:
		return fmt.Errorf("WORKER_POLL_INTERVAL must be positive, got %s", c.WorkerPollInterval)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c Config) StrikeExpiry() time.Duration {
	return time.Duration(c.StrikeExpiryDays) * 24 * time.Hour
}

// UsesDatabase is false when the process should run on the in-memory store.
func (c Config) UsesDatabase() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
