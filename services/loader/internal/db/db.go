package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vinayakrc/store-monitoring/services/api/report"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS store_status (
	id bigserial PRIMARY KEY,
	store_id text NOT NULL,
	timestamp_utc timestamptz NOT NULL,
	status text NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS store_status_store_ts_idx
	ON store_status (store_id, timestamp_utc)`,
	`CREATE TABLE IF NOT EXISTS business_hours (
	id bigserial PRIMARY KEY,
	store_id text NOT NULL,
	day_of_week int NOT NULL,
	start_time_local time NOT NULL,
	end_time_local time NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS store_timezones (
	store_id text PRIMARY KEY,
	timezone_str text NOT NULL
)`,
}

// EnsureSchema creates the three source tables when absent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// HasData reports whether a previous load already populated the tables.
func HasData(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM store_timezones)`).Scan(&exists)
	return exists, err
}

// Truncate clears all three source tables before a forced reload.
func Truncate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `TRUNCATE store_status, business_hours, store_timezones`)
	return err
}

// UpsertTimezones writes the store timezone mapping rows.
func UpsertTimezones(ctx context.Context, pool *pgxpool.Pool, zones []report.StoreTimezone) error {
	if len(zones) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO store_timezones (store_id, timezone_str)
VALUES ($1, $2)
ON CONFLICT (store_id) DO UPDATE
SET timezone_str = EXCLUDED.timezone_str`

	for _, z := range zones {
		batch.Queue(query, z.StoreID, z.Timezone)
	}

	res := pool.SendBatch(ctx, batch)
	defer res.Close()

	for range zones {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}

	return nil
}

// InsertBusinessHours writes the weekly schedule rows.
func InsertBusinessHours(ctx context.Context, pool *pgxpool.Pool, hours []report.BusinessHours) error {
	if len(hours) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO business_hours (store_id, day_of_week, start_time_local, end_time_local)
VALUES ($1, $2, $3::time, $4::time)`

	for _, h := range hours {
		batch.Queue(query, h.StoreID, h.DayOfWeek, h.Open.String(), h.Close.String())
	}

	res := pool.SendBatch(ctx, batch)
	defer res.Close()

	for range hours {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}

	return nil
}

// CopyObservations bulk-inserts the polling observations. The status feed is
// by far the largest of the three, so it goes through COPY.
func CopyObservations(ctx context.Context, pool *pgxpool.Pool, observations []report.Observation) (int64, error) {
	if len(observations) == 0 {
		return 0, nil
	}

	return pool.CopyFrom(ctx,
		pgx.Identifier{"store_status"},
		[]string{"store_id", "timestamp_utc", "status"},
		pgx.CopyFromSlice(len(observations), func(i int) ([]any, error) {
			obs := observations[i]
			return []any{obs.StoreID, obs.Timestamp, string(obs.Status)}, nil
		}),
	)
}
