package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/vinayakrc/store-monitoring/services/api/report"
)

// timestampLayout matches the status feed format, e.g.
// "2023-01-25 18:13:59.540849 UTC". The fractional part is optional.
const timestampLayout = "2006-01-02 15:04:05.999999 UTC"

// ReadStatuses parses the polling observation feed. Any malformed row fails
// the whole load: bad data is rejected here, never mid-computation.
func ReadStatuses(path string) ([]report.Observation, error) {
	observations := make([]report.Observation, 0)
	err := readRows(path, []string{"store_id", "timestamp_utc", "status"}, func(line int, fields []string) error {
		ts, err := time.ParseInLocation(timestampLayout, fields[1], time.UTC)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", fields[1], err)
		}
		status, err := report.ParseStatus(fields[2])
		if err != nil {
			return err
		}
		observations = append(observations, report.Observation{
			StoreID:   fields[0],
			Timestamp: ts,
			Status:    status,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return observations, nil
}

// ReadBusinessHours parses the weekly schedule feed (Monday=0 .. Sunday=6).
// At most one row may exist per (store, day); duplicates are rejected here
// so they can never fail a report run later.
func ReadBusinessHours(path string) ([]report.BusinessHours, error) {
	seen := make(map[string]*[7]bool)
	hours := make([]report.BusinessHours, 0)
	err := readRows(path, []string{"store_id", "dayOfWeek", "start_time_local", "end_time_local"}, func(line int, fields []string) error {
		day, err := strconv.Atoi(fields[1])
		if err != nil || day < 0 || day > 6 {
			return fmt.Errorf("invalid dayOfWeek %q", fields[1])
		}
		week := seen[fields[0]]
		if week == nil {
			week = &[7]bool{}
			seen[fields[0]] = week
		}
		if week[day] {
			return fmt.Errorf("duplicate business hours for store %s day %d", fields[0], day)
		}
		week[day] = true
		open, err := report.ParseClockTime(fields[2])
		if err != nil {
			return err
		}
		close, err := report.ParseClockTime(fields[3])
		if err != nil {
			return err
		}
		hours = append(hours, report.BusinessHours{
			StoreID:   fields[0],
			DayOfWeek: day,
			Open:      open,
			Close:     close,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hours, nil
}

// ReadTimezones parses the store timezone feed, validating each zone name
// against the IANA database.
func ReadTimezones(path string) ([]report.StoreTimezone, error) {
	zones := make([]report.StoreTimezone, 0)
	err := readRows(path, []string{"store_id", "timezone_str"}, func(line int, fields []string) error {
		if _, err := time.LoadLocation(fields[1]); err != nil {
			return fmt.Errorf("unknown timezone %q: %w", fields[1], err)
		}
		zones = append(zones, report.StoreTimezone{
			StoreID:  fields[0],
			Timezone: fields[1],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return zones, nil
}

// readRows streams a headed CSV file, mapping the wanted columns by header
// name and handing each record's values to fn in the requested order.
func readRows(path string, columns []string, fn func(line int, fields []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("%s: read header: %w", path, err)
	}

	index := make([]int, len(columns))
	for i, col := range columns {
		index[i] = -1
		for j, name := range header {
			if name == col {
				index[i] = j
				break
			}
		}
		if index[i] == -1 {
			return fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	fields := make([]string, len(columns))
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
		for i, j := range index {
			fields[i] = record[j]
		}
		if err := fn(line, fields); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
	}
}
