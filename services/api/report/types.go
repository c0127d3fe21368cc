package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status is the observed state of a store at a polling instant.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus validates a raw status string from an external feed.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusActive, StatusInactive:
		return Status(raw), nil
	default:
		return "", fmt.Errorf("unknown status %q", raw)
	}
}

// Observation is a single polling sample for a store, timestamped in UTC.
type Observation struct {
	StoreID   string
	Timestamp time.Time
	Status    Status
}

// BusinessHours is one weekly schedule row: local open/close times for a
// store on one day of the week (Monday=0 .. Sunday=6).
type BusinessHours struct {
	StoreID   string
	DayOfWeek int
	Open      ClockTime
	Close     ClockTime
}

// StoreTimezone maps a store to its IANA timezone name.
type StoreTimezone struct {
	StoreID  string
	Timezone string
}

// ClockTime is a wall-clock time of day with no date attached.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// ParseClockTime parses "HH:MM:SS" into a ClockTime.
func ParseClockTime(raw string) (ClockTime, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", raw)
	}
	fields := [3]int{}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", raw, err)
		}
		fields[i] = n
	}
	ct := ClockTime{Hour: fields[0], Minute: fields[1], Second: fields[2]}
	if ct.Hour < 0 || ct.Hour > 23 || ct.Minute < 0 || ct.Minute > 59 || ct.Second < 0 || ct.Second > 59 {
		return ClockTime{}, fmt.Errorf("clock time %q out of range", raw)
	}
	return ct, nil
}

// Before reports whether c is earlier in the day than other.
func (c ClockTime) Before(other ClockTime) bool {
	return c.seconds() < other.seconds()
}

func (c ClockTime) seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// At anchors the clock time on a calendar date in the given location. The
// resulting instant carries the UTC offset in effect at that local moment,
// so conversions stay correct across daylight-saving transitions.
func (c ClockTime) At(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, c.Hour, c.Minute, c.Second, 0, loc)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}
