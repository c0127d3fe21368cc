package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/vinayakrc/store-monitoring/services/api/report"
)

// Config holds environment-driven settings for the REST API.
type Config struct {
	DatabaseURL     string
	Port            int
	BearerToken     string
	DefaultTimezone string
	ReportWorkers   int
	ReportTimeout   time.Duration
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:            8080,
		DefaultTimezone: report.DefaultTimezone,
		ReportWorkers:   4,
		ReportTimeout:   5 * time.Minute,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if tz := os.Getenv("DEFAULT_TIMEZONE"); tz != "" {
		cfg.DefaultTimezone = tz
	}

	if workersStr := os.Getenv("REPORT_WORKERS"); workersStr != "" {
		if workers, err := strconv.Atoi(workersStr); err == nil && workers > 0 {
			cfg.ReportWorkers = workers
		} else {
			return cfg, fmt.Errorf("invalid REPORT_WORKERS: %s", workersStr)
		}
	}

	if timeoutStr := os.Getenv("REPORT_TIMEOUT"); timeoutStr != "" {
		d, err := time.ParseDuration(timeoutStr)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid REPORT_TIMEOUT: %s", timeoutStr)
		}
		cfg.ReportTimeout = d
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
