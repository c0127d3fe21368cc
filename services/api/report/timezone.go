package report

import (
	"fmt"
	"time"
)

// DefaultTimezone is applied to stores with no timezone row.
const DefaultTimezone = "America/Chicago"

// Timezones resolves a store to its IANA location, falling back to a fixed
// default when the store has no mapping. Resolution never fails: every name
// is validated when the index is built.
type Timezones struct {
	byStore  map[string]*time.Location
	fallback *time.Location
}

// NewTimezones builds a timezone index from the raw mapping rows. Unknown
// zone names are rejected here so that report runs never hit them.
func NewTimezones(rows []StoreTimezone, fallbackName string) (*Timezones, error) {
	fallback, err := time.LoadLocation(fallbackName)
	if err != nil {
		return nil, fmt.Errorf("load fallback timezone %q: %w", fallbackName, err)
	}

	byStore := make(map[string]*time.Location, len(rows))
	for _, row := range rows {
		loc, err := time.LoadLocation(row.Timezone)
		if err != nil {
			return nil, fmt.Errorf("store %s: load timezone %q: %w", row.StoreID, row.Timezone, err)
		}
		byStore[row.StoreID] = loc
	}

	return &Timezones{byStore: byStore, fallback: fallback}, nil
}

// Resolve returns the store's location, or the fallback when unmapped.
func (t *Timezones) Resolve(storeID string) *time.Location {
	if loc, ok := t.byStore[storeID]; ok {
		return loc
	}
	return t.fallback
}
