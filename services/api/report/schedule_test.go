package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduleResolveMapsMondayZero(t *testing.T) {
	rows := []BusinessHours{
		{StoreID: "s1", DayOfWeek: 0, Open: ClockTime{Hour: 8}, Close: ClockTime{Hour: 20}},
		{StoreID: "s1", DayOfWeek: 6, Open: ClockTime{Hour: 10}, Close: ClockTime{Hour: 14}},
	}
	schedule, err := NewSchedule(rows)
	require.NoError(t, err)

	open, close := schedule.Resolve("s1", time.Monday)
	require.Equal(t, ClockTime{Hour: 8}, open)
	require.Equal(t, ClockTime{Hour: 20}, close)

	open, close = schedule.Resolve("s1", time.Sunday)
	require.Equal(t, ClockTime{Hour: 10}, open)
	require.Equal(t, ClockTime{Hour: 14}, close)
}

func TestScheduleResolveDefaultsToFullDay(t *testing.T) {
	schedule, err := NewSchedule([]BusinessHours{
		{StoreID: "s1", DayOfWeek: 0, Open: ClockTime{Hour: 8}, Close: ClockTime{Hour: 20}},
	})
	require.NoError(t, err)

	// Unlisted weekday for a known store.
	open, close := schedule.Resolve("s1", time.Tuesday)
	require.Equal(t, ClockTime{}, open)
	require.Equal(t, ClockTime{Hour: 23, Minute: 59, Second: 59}, close)

	// Entirely unknown store.
	open, close = schedule.Resolve("unknown", time.Friday)
	require.Equal(t, ClockTime{}, open)
	require.Equal(t, ClockTime{Hour: 23, Minute: 59, Second: 59}, close)
}

func TestNewScheduleRejectsBadRows(t *testing.T) {
	_, err := NewSchedule([]BusinessHours{{StoreID: "s1", DayOfWeek: 7}})
	require.Error(t, err)

	_, err = NewSchedule([]BusinessHours{
		{StoreID: "s1", DayOfWeek: 1},
		{StoreID: "s1", DayOfWeek: 1},
	})
	require.Error(t, err)
}

func TestTimezonesResolve(t *testing.T) {
	zones, err := NewTimezones([]StoreTimezone{
		{StoreID: "s1", Timezone: "America/Denver"},
	}, DefaultTimezone)
	require.NoError(t, err)

	require.Equal(t, "America/Denver", zones.Resolve("s1").String())
	require.Equal(t, DefaultTimezone, zones.Resolve("unmapped").String())
}

func TestNewTimezonesRejectsUnknownZone(t *testing.T) {
	_, err := NewTimezones([]StoreTimezone{
		{StoreID: "s1", Timezone: "Mars/Olympus_Mons"},
	}, DefaultTimezone)
	require.Error(t, err)
}

func TestParseClockTime(t *testing.T) {
	ct, err := ParseClockTime("09:30:15")
	require.NoError(t, err)
	require.Equal(t, ClockTime{Hour: 9, Minute: 30, Second: 15}, ct)
	require.Equal(t, "09:30:15", ct.String())

	for _, raw := range []string{"", "9:30", "24:00:00", "09:60:00", "ab:cd:ef"} {
		_, err := ParseClockTime(raw)
		require.Error(t, err, raw)
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("active")
	require.NoError(t, err)
	require.Equal(t, StatusActive, status)

	_, err = ParseStatus("offline")
	require.Error(t, err)
}
