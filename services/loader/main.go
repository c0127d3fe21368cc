package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/vinayakrc/store-monitoring/services/loader/internal/config"
	"github.com/vinayakrc/store-monitoring/services/loader/internal/csvsource"
	"github.com/vinayakrc/store-monitoring/services/loader/internal/db"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("loader failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	loaded, err := db.HasData(ctx, pool)
	if err != nil {
		return err
	}
	if loaded && !cfg.ForceReload {
		logger.Info("source tables already populated, nothing to do")
		return nil
	}

	zones, err := csvsource.ReadTimezones(cfg.TimezonesCSV)
	if err != nil {
		return err
	}
	hours, err := csvsource.ReadBusinessHours(cfg.HoursCSV)
	if err != nil {
		return err
	}
	observations, err := csvsource.ReadStatuses(cfg.StatusCSV)
	if err != nil {
		return err
	}
	logger.Info("parsed source feeds",
		zap.Int("timezones", len(zones)),
		zap.Int("business_hours", len(hours)),
		zap.Int("observations", len(observations)),
	)

	if cfg.DryRun {
		logger.Info("dry-run: skipping inserts")
		return nil
	}

	if loaded {
		if err := db.Truncate(ctx, pool); err != nil {
			return err
		}
		logger.Info("truncated source tables for reload")
	}

	if err := db.UpsertTimezones(ctx, pool, zones); err != nil {
		return err
	}
	if err := db.InsertBusinessHours(ctx, pool, hours); err != nil {
		return err
	}
	copied, err := db.CopyObservations(ctx, pool, observations)
	if err != nil {
		return err
	}

	logger.Info("load complete",
		zap.Int("timezones", len(zones)),
		zap.Int("business_hours", len(hours)),
		zap.Int64("observations", copied),
	)
	return nil
}
