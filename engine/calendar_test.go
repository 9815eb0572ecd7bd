package engine_test

import (
	"testing"
	"time"

	"github.com/shiftline/inout-engine/engine"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.June, 30},
		{2025, time.July, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.December, 31},
	}
	for _, c := range cases {
		if got := engine.DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestPartitionMonth_SundayOffWithHolidays(t *testing.T) {
	// GIVEN: June 2025 (5 Sundays), Sunday weekly off, 4 weekday holidays
	// WHEN: Partitioning
	// THEN: 4 holidays, 5 weekly offs, 21 open dates

	part := engine.PartitionMonth(2025, time.June, time.Sunday, fourHolidays())

	if len(part.Holidays) != 4 {
		t.Errorf("expected 4 holidays, got %d", len(part.Holidays))
	}
	if len(part.WeeklyOffs) != 5 {
		t.Errorf("expected 5 weekly offs, got %d", len(part.WeeklyOffs))
	}
	if len(part.Open) != 21 {
		t.Errorf("expected 21 open dates, got %d", len(part.Open))
	}
}

func TestPartitionMonth_HolidayWinsOverWeeklyOff(t *testing.T) {
	// GIVEN: A holiday falling on the weekly-off weekday (Sunday June 8)
	// WHEN: Partitioning
	// THEN: The date counts as holiday, not weekly off

	holidays := []time.Time{engine.Date(2025, time.June, 8)}
	part := engine.PartitionMonth(2025, time.June, time.Sunday, holidays)

	if len(part.Holidays) != 1 {
		t.Fatalf("expected 1 holiday, got %d", len(part.Holidays))
	}
	if len(part.WeeklyOffs) != 4 {
		t.Errorf("expected 4 weekly offs, got %d", len(part.WeeklyOffs))
	}
	for _, d := range part.WeeklyOffs {
		if d.Day() == 8 {
			t.Error("June 8 classified as weekly off despite being a holiday")
		}
	}
}

func TestPartitionMonth_IgnoresOutOfMonthHolidays(t *testing.T) {
	// GIVEN: Holidays in a different month and year
	// WHEN: Partitioning June 2025
	// THEN: They are ignored

	holidays := []time.Time{
		engine.Date(2025, time.May, 10),
		engine.Date(2024, time.June, 10),
	}
	part := engine.PartitionMonth(2025, time.June, time.Sunday, holidays)

	if len(part.Holidays) != 0 {
		t.Errorf("expected no in-month holidays, got %d", len(part.Holidays))
	}
}

func TestMonthDates_Ascending(t *testing.T) {
	dates := engine.MonthDates(2025, time.June)
	if len(dates) != 30 {
		t.Fatalf("expected 30 dates, got %d", len(dates))
	}
	for i, d := range dates {
		if d.Day() != i+1 {
			t.Fatalf("position %d: expected day %d, got %d", i, i+1, d.Day())
		}
	}
}
