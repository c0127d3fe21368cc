package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultStatusCSV    = "store_status.csv"
	defaultHoursCSV     = "menu_hours.csv"
	defaultTimezonesCSV = "timezones.csv"
)

// Config holds runtime configuration for the loader service.
type Config struct {
	DatabaseURL  string
	StatusCSV    string
	HoursCSV     string
	TimezonesCSV string
	ForceReload  bool
	DryRun       bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		StatusCSV:    defaultStatusCSV,
		HoursCSV:     defaultHoursCSV,
		TimezonesCSV: defaultTimezonesCSV,
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	if v := strings.TrimSpace(os.Getenv("STATUS_CSV")); v != "" {
		cfg.StatusCSV = v
	}
	if v := strings.TrimSpace(os.Getenv("HOURS_CSV")); v != "" {
		cfg.HoursCSV = v
	}
	if v := strings.TrimSpace(os.Getenv("TIMEZONES_CSV")); v != "" {
		cfg.TimezonesCSV = v
	}

	cfg.ForceReload = boolEnv("FORCE_RELOAD")
	cfg.DryRun = boolEnv("DRY_RUN")

	return cfg, nil
}

func boolEnv(name string) bool {
	v := strings.TrimSpace(os.Getenv(name))
	return v == "1" || strings.EqualFold(v, "true")
}
