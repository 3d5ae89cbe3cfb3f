package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Database wraps DB connectivity for either backend.
// Keep transaction helpers here to support outbox + state consistency.
type Database struct {
	DB     *gorm.DB
	SQLite bool
}

// Connect opens DATABASE_URL. Accepted forms are postgres://, postgresql://
// and sqlite://<path>; sqlite://:memory: gives a throwaway database.
func Connect(databaseURL string, maxConnections int, logger *slog.Logger) (*Database, error) {
	dial, isSQLite, err := dialector(databaseURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger:         slogGorm.New(slogGorm.WithLogger(logger)),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sql db handle: %w", err)
	}
	if isSQLite {
		// sqlite serializes writers; one connection also keeps :memory: shared
		sqlDB.SetMaxOpenConns(1)
	} else if maxConnections > 0 {
		sqlDB.SetMaxOpenConns(maxConnections)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Database{DB: db, SQLite: isSQLite}, nil
}

func dialector(databaseURL string) (gorm.Dialector, bool, error) {
	value := strings.TrimSpace(databaseURL)
	switch {
	case value == "":
		return nil, false, errors.New("database url is required")
	case strings.HasPrefix(value, "sqlite://"):
		path := strings.TrimPrefix(value, "sqlite://")
		if path == "" {
			return nil, false, errors.New("sqlite database path is required")
		}
		if !strings.Contains(path, ":memory:") {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, false, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		return sqlite.Open(path), true, nil
	case strings.HasPrefix(value, "postgres://"), strings.HasPrefix(value, "postgresql://"):
		return postgres.Open(value), false, nil
	default:
		// avoid echoing the url, it may carry a password
		return nil, false, errors.New("unsupported DATABASE_URL scheme")
	}
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return errors.New("database is not connected")
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
