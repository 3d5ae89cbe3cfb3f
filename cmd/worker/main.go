package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"vidstream/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring.
// 3) Poll the notification outbox and reconcile lapsed strikes until signalled.
func main() {
	if err := run(); err != nil {
		slog.Error("worker stopped with error", "event", "worker_stopped", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildWorker()
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("worker shutdown close failed", "event", "worker_close_failed", "error", err.Error())
		}
	}()
	return app.Run(ctx)
}
