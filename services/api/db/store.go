package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vinayakrc/store-monitoring/services/api/report"
)

// Store wraps read access to the three source tables. All reads are
// point-in-time snapshots; the report core never writes through it.
type Store struct {
	pool             *pgxpool.Pool
	fallbackTimezone string
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL, fallbackTimezone string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, fallbackTimezone: fallbackTimezone}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const observationsSQL = `
    SELECT store_id, timestamp_utc, status
    FROM store_status
    ORDER BY store_id, timestamp_utc
`

// LoadObservations returns every polling observation, oldest first per store.
func (s *Store) LoadObservations(ctx context.Context) ([]report.Observation, error) {
	rows, err := s.pool.Query(ctx, observationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	observations := make([]report.Observation, 0)
	for rows.Next() {
		var (
			storeID string
			ts      time.Time
			raw     string
		)
		if err := rows.Scan(&storeID, &ts, &raw); err != nil {
			return nil, err
		}
		status, err := report.ParseStatus(raw)
		if err != nil {
			return nil, fmt.Errorf("store %s at %s: %w", storeID, ts.Format(time.RFC3339), err)
		}
		observations = append(observations, report.Observation{
			StoreID:   storeID,
			Timestamp: ts.UTC(),
			Status:    status,
		})
	}
	return observations, rows.Err()
}

const businessHoursSQL = `
    SELECT store_id, day_of_week, start_time_local::text, end_time_local::text
    FROM business_hours
    ORDER BY store_id, day_of_week
`

// LoadBusinessHours returns the weekly schedule rows for all stores.
func (s *Store) LoadBusinessHours(ctx context.Context) ([]report.BusinessHours, error) {
	rows, err := s.pool.Query(ctx, businessHoursSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make([]report.BusinessHours, 0)
	for rows.Next() {
		var (
			storeID   string
			dayOfWeek int
			openRaw   string
			closeRaw  string
		)
		if err := rows.Scan(&storeID, &dayOfWeek, &openRaw, &closeRaw); err != nil {
			return nil, err
		}
		open, err := report.ParseClockTime(openRaw)
		if err != nil {
			return nil, fmt.Errorf("store %s day %d: %w", storeID, dayOfWeek, err)
		}
		close, err := report.ParseClockTime(closeRaw)
		if err != nil {
			return nil, fmt.Errorf("store %s day %d: %w", storeID, dayOfWeek, err)
		}
		hours = append(hours, report.BusinessHours{
			StoreID:   storeID,
			DayOfWeek: dayOfWeek,
			Open:      open,
			Close:     close,
		})
	}
	return hours, rows.Err()
}

const timezonesSQL = `
    SELECT store_id, timezone_str
    FROM store_timezones
    ORDER BY store_id
`

// LoadTimezones returns the store timezone mapping rows.
func (s *Store) LoadTimezones(ctx context.Context) ([]report.StoreTimezone, error) {
	rows, err := s.pool.Query(ctx, timezonesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	zones := make([]report.StoreTimezone, 0)
	for rows.Next() {
		var zone report.StoreTimezone
		if err := rows.Scan(&zone.StoreID, &zone.Timezone); err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}
	return zones, rows.Err()
}

// LoadDataset reads all three tables into one report snapshot. It satisfies
// the job runner's Source interface.
func (s *Store) LoadDataset(ctx context.Context) (*report.Dataset, error) {
	observations, err := s.LoadObservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load observations: %w", err)
	}
	hours, err := s.LoadBusinessHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("load business hours: %w", err)
	}
	zones, err := s.LoadTimezones(ctx)
	if err != nil {
		return nil, fmt.Errorf("load timezones: %w", err)
	}
	return report.NewDataset(observations, hours, zones, s.fallbackTimezone)
}
