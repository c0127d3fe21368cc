package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vinayakrc/store-monitoring/services/api/config"
	"github.com/vinayakrc/store-monitoring/services/api/db"
	httpserver "github.com/vinayakrc/store-monitoring/services/api/http"
	"github.com/vinayakrc/store-monitoring/services/api/jobs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := db.New(ctx, cfg.DatabaseURL, cfg.DefaultTimezone)
	if err != nil {
		logger.Fatal("db connection error", zap.Error(err))
	}
	defer store.Close()

	registry := jobs.NewRegistry()
	pool := jobs.NewPool(cfg.ReportWorkers)
	runner := jobs.NewRunner(registry, pool, store, cfg.ReportTimeout, logger)

	srv := httpserver.New(cfg, runner, logger)
	logger.Info("REST API listening", zap.String("addr", cfg.ListenAddr()))

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
