package report

import (
	"fmt"
	"time"
)

// fullDayOpen / fullDayClose are the sentinel business hours applied when a
// store has no schedule row for a weekday: open the entire day.
var (
	fullDayOpen  = ClockTime{}
	fullDayClose = ClockTime{Hour: 23, Minute: 59, Second: 59}
)

type hoursSpan struct {
	open  ClockTime
	close ClockTime
}

// Schedule resolves a store's local business hours for a weekday. Missing
// rows are a defined default (open all day), never an error.
type Schedule struct {
	byStore map[string]*[7]*hoursSpan
}

// NewSchedule indexes weekly business-hour rows. Day of week uses the feed
// convention Monday=0 .. Sunday=6; duplicate (store, day) rows are rejected.
func NewSchedule(rows []BusinessHours) (*Schedule, error) {
	byStore := make(map[string]*[7]*hoursSpan)
	for _, row := range rows {
		if row.DayOfWeek < 0 || row.DayOfWeek > 6 {
			return nil, fmt.Errorf("store %s: day_of_week %d out of range", row.StoreID, row.DayOfWeek)
		}
		week := byStore[row.StoreID]
		if week == nil {
			week = &[7]*hoursSpan{}
			byStore[row.StoreID] = week
		}
		if week[row.DayOfWeek] != nil {
			return nil, fmt.Errorf("store %s: duplicate business hours for day %d", row.StoreID, row.DayOfWeek)
		}
		week[row.DayOfWeek] = &hoursSpan{open: row.Open, close: row.Close}
	}
	return &Schedule{byStore: byStore}, nil
}

// Resolve returns the local open/close interval for a store on the weekday
// of the given local date. A close earlier than the open means the interval
// crosses midnight; callers project the close onto the next calendar day.
func (s *Schedule) Resolve(storeID string, weekday time.Weekday) (open, close ClockTime) {
	week := s.byStore[storeID]
	if week == nil {
		return fullDayOpen, fullDayClose
	}
	span := week[mondayIndex(weekday)]
	if span == nil {
		return fullDayOpen, fullDayClose
	}
	return span.open, span.close
}

// mondayIndex converts Go's Sunday=0 weekday to the feed's Monday=0.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
