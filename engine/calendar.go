package engine

import (
	"time"
)

// =============================================================================
// CALENDAR HELPERS - Month enumeration and date partitioning
// =============================================================================

// Date constructs a day-granularity UTC date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(year int, month time.Month) int {
	return Date(year, month+1, 1).AddDate(0, 0, -1).Day()
}

// MonthDates returns every date of the month in ascending order.
func MonthDates(year int, month time.Month) []time.Time {
	n := DaysInMonth(year, month)
	dates := make([]time.Time, n)
	for i := 0; i < n; i++ {
		dates[i] = Date(year, month, i+1)
	}
	return dates
}

// DateKey formats a date as its canonical storage key.
func DateKey(t time.Time) string { return t.Format("2006-01-02") }

// SameDay reports whether two times fall on the same calendar day (UTC).
func SameDay(a, b time.Time) bool {
	return a.UTC().Truncate(24*time.Hour).Equal(b.UTC().Truncate(24 * time.Hour))
}

// =============================================================================
// MONTH PARTITION
// =============================================================================

// MonthPartition splits a month's dates by generation role. A date is holiday
// OR weekly-off, never both: holidays win.
type MonthPartition struct {
	Holidays   []time.Time
	WeeklyOffs []time.Time
	Open       []time.Time
}

// PartitionMonth classifies every date of the month. holidays may contain
// dates outside the month; they are ignored.
func PartitionMonth(year int, month time.Month, weeklyOff time.Weekday, holidays []time.Time) MonthPartition {
	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		if h.Year() == year && h.Month() == month {
			holidaySet[DateKey(h)] = true
		}
	}

	var part MonthPartition
	for _, d := range MonthDates(year, month) {
		switch {
		case holidaySet[DateKey(d)]:
			part.Holidays = append(part.Holidays, d)
		case d.Weekday() == weeklyOff:
			part.WeeklyOffs = append(part.WeeklyOffs, d)
		default:
			part.Open = append(part.Open, d)
		}
	}
	return part
}
