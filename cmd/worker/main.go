package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Cienszki/automatic-tournament-sub000/internal/app"
	"github.com/Cienszki/automatic-tournament-sub000/internal/config"
	"github.com/Cienszki/automatic-tournament-sub000/internal/observability"
	"github.com/Cienszki/automatic-tournament-sub000/internal/platform/logging"
)

// worker consumes the recalc queue and runs each job against the same
// services as the api.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName+"-worker", "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("shutdown uptrace", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("close app", "error", err)
		}
	}()

	logger.Info("recalc worker starting", "queue", cfg.RecalcQueueName, "workers", cfg.RecalcQueueWorkers)
	if err := application.ConsumeJobs(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("recalc worker stopped", "error", err)
		return
	}
	logger.Info("recalc worker stopped")
}
