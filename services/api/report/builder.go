package report

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Window is one trailing reporting window measured backward from the anchor.
type Window struct {
	Name   string
	Length time.Duration
}

// Windows lists the three reporting windows, in output-column order.
var Windows = []Window{
	{Name: "hour", Length: time.Hour},
	{Name: "day", Length: 24 * time.Hour},
	{Name: "week", Length: 7 * 24 * time.Hour},
}

// CSVHeader is the fixed artifact header row.
const CSVHeader = "store_id,uptime_last_hour,downtime_last_hour,uptime_last_day,downtime_last_day,uptime_last_week,downtime_last_week"

// Builder produces the uptime report artifact: one CSV row per store with
// uptime/downtime for the hour, day and week windows, all measured from a
// single anchor instant.
type Builder struct {
	dataset   *Dataset
	estimator *Estimator
}

// NewBuilder creates a builder over one dataset snapshot.
func NewBuilder(dataset *Dataset) *Builder {
	return &Builder{
		dataset:   dataset,
		estimator: NewEstimator(dataset.Timeline, dataset.Schedule, dataset.Zones),
	}
}

// BuildCSV renders the full artifact. Rows are emitted in sorted store
// order, so two runs over the same dataset and anchor are byte-identical.
func (b *Builder) BuildCSV(anchor time.Time) string {
	var sb strings.Builder
	sb.WriteString(CSVHeader)
	sb.WriteByte('\n')
	for _, storeID := range b.dataset.Timeline.StoreIDs() {
		sb.WriteString(b.buildRow(storeID, anchor))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// buildRow computes all six metrics for one store. The hour window reports
// whole minutes; day and week report hours with two decimals. The asymmetry
// is part of the artifact contract.
func (b *Builder) buildRow(storeID string, anchor time.Time) string {
	fields := make([]string, 0, 7)
	fields = append(fields, storeID)
	for _, win := range Windows {
		uptime, downtime := b.estimator.Estimate(storeID, anchor.Add(-win.Length), anchor)
		if win.Name == "hour" {
			fields = append(fields, formatMinutes(uptime), formatMinutes(downtime))
		} else {
			fields = append(fields, formatHours(uptime), formatHours(downtime))
		}
	}
	return strings.Join(fields, ",")
}

func formatMinutes(d time.Duration) string {
	return fmt.Sprintf("%d", int64(math.Round(d.Seconds()/60)))
}

func formatHours(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Seconds()/3600)
}
