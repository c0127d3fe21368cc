package report

import "time"

// Dataset is one immutable snapshot of the three source tables. It is built
// once per report run and shared read-only, so any number of in-flight runs
// can use their own snapshots concurrently.
type Dataset struct {
	Timeline *Timeline
	Schedule *Schedule
	Zones    *Timezones
}

// NewDataset assembles a snapshot from raw table rows. The fallback
// timezone applies to stores with no timezone row.
func NewDataset(observations []Observation, hours []BusinessHours, zones []StoreTimezone, fallbackTimezone string) (*Dataset, error) {
	schedule, err := NewSchedule(hours)
	if err != nil {
		return nil, err
	}
	tz, err := NewTimezones(zones, fallbackTimezone)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Timeline: NewTimeline(observations),
		Schedule: schedule,
		Zones:    tz,
	}, nil
}

// Anchor returns the instant all trailing windows are measured from: the
// maximum observation timestamp in the dataset, or now when the dataset
// holds no observations.
func (d *Dataset) Anchor(now time.Time) time.Time {
	if max, ok := d.Timeline.MaxTimestamp(); ok {
		return max
	}
	return now
}
