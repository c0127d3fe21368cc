package report

import (
	"time"
)

// Estimator attributes every second of a UTC reporting window to uptime or
// downtime, restricted to the portions falling inside a store's local
// business hours.
type Estimator struct {
	timeline *Timeline
	schedule *Schedule
	zones    *Timezones
}

// NewEstimator wires the estimator to one dataset snapshot.
func NewEstimator(timeline *Timeline, schedule *Schedule, zones *Timezones) *Estimator {
	return &Estimator{timeline: timeline, schedule: schedule, zones: zones}
}

// Estimate computes business-hour uptime/downtime for one store inside
// [windowStart, windowEnd). It walks every local calendar date the window
// can touch, converts that date's open/close span to UTC, clamps it to the
// window and replays the store's observations across the clamped interval.
func (e *Estimator) Estimate(storeID string, windowStart, windowEnd time.Time) (uptime, downtime time.Duration) {
	loc := e.zones.Resolve(storeID)

	for _, date := range localDates(windowStart, windowEnd, loc) {
		year, month, day := date.Date()
		open, close := e.schedule.Resolve(storeID, date.Weekday())

		openUTC := open.At(year, month, day, loc).UTC()
		closeDay := day
		if close.Before(open) {
			// Overnight schedule: the close belongs to the next date.
			closeDay++
		}
		closeUTC := close.At(year, month, closeDay, loc).UTC()

		start := laterOf(openUTC, windowStart)
		end := earlierOf(closeUTC, windowEnd)
		if !start.Before(end) {
			continue
		}

		up, down := e.replay(storeID, start, end)
		uptime += up
		downtime += down
	}

	return uptime, downtime
}

// replay runs the last-observation-carried-forward sweep over one clamped
// interval. Observation selection is inclusive of both bounds. An interval
// with no observations at all counts entirely as downtime; the segment
// before the first observation borrows that observation's status, since no
// earlier state is known.
func (e *Estimator) replay(storeID string, start, end time.Time) (uptime, downtime time.Duration) {
	samples := e.timeline.Between(storeID, start, end)
	if len(samples) == 0 {
		return 0, end.Sub(start)
	}

	cursor := start
	carried := samples[0].Status
	for _, obs := range samples {
		span := obs.Timestamp.Sub(cursor)
		if carried == StatusActive {
			uptime += span
		} else {
			downtime += span
		}
		cursor = obs.Timestamp
		carried = obs.Status
	}

	if cursor.Before(end) {
		span := end.Sub(cursor)
		if carried == StatusActive {
			uptime += span
		} else {
			downtime += span
		}
	}

	return uptime, downtime
}

// localDates enumerates every calendar date, in the given location, whose
// business-hours interval can overlap [windowStart, windowEnd]. The range
// starts one day before the window's first local date because an overnight
// schedule projects its close past midnight into the next day; dates whose
// interval misses the window entirely are dropped by the clamp. Each entry
// is the date at midnight UTC, used purely as a (year, month, day, weekday)
// carrier.
func localDates(windowStart, windowEnd time.Time, loc *time.Location) []time.Time {
	y0, m0, d0 := windowStart.In(loc).Date()
	y1, m1, d1 := windowEnd.In(loc).Date()

	cur := time.Date(y0, m0, d0-1, 0, 0, 0, 0, time.UTC)
	last := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)

	var dates []time.Time
	for !cur.After(last) {
		dates = append(dates, cur)
		cur = cur.AddDate(0, 0, 1)
	}
	return dates
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
