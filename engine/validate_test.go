package engine_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shiftline/inout-engine/engine"
)

func workingDay(day int, status engine.DayStatus, workHours float64) engine.AttendanceRecord {
	in := engine.NewClockTime(9, 30)
	out := in.AddMinutes(int(workHours*60) + 60)
	return engine.AttendanceRecord{
		EmployeeID:   "emp-1",
		Date:         engine.Date(testYear, testMonth, day),
		Status:       status,
		InTime:       &in,
		OutTime:      &out,
		BreakMinutes: 60,
		WorkHours:    decimal.NewFromFloat(workHours),
		OTHours:      decimal.Zero,
		Month:        testMonth,
		Year:         testYear,
	}
}

func offDay(day int, status engine.DayStatus) engine.AttendanceRecord {
	return engine.AttendanceRecord{
		EmployeeID: "emp-1",
		Date:       engine.Date(testYear, testMonth, day),
		Status:     status,
		WorkHours:  decimal.Zero,
		OTHours:    decimal.Zero,
		Month:      testMonth,
		Year:       testYear,
	}
}

func TestValidateRecords_AcceptsConsistentSet(t *testing.T) {
	records := []engine.AttendanceRecord{
		workingDay(2, engine.StatusPresent, 8),
		workingDay(3, engine.StatusHalfDay, 4),
		offDay(4, engine.StatusPaidLeave),
		offDay(5, engine.StatusAbsent),
		offDay(8, engine.StatusWeeklyOff),
	}
	// P(1) + H(0.5) + PL(1) = 2.5
	if err := engine.ValidateRecords(records, decimal.NewFromFloat(2.5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRecords_WorkingDayWithoutClockTimes(t *testing.T) {
	rec := workingDay(2, engine.StatusPresent, 8)
	rec.InTime = nil
	rec.OutTime = nil

	err := engine.ValidateRecords([]engine.AttendanceRecord{rec}, decimal.NewFromInt(1))
	var verr *engine.ValidationError
	if !errors.As(err, &verr) || verr.Code != "time_fields" {
		t.Fatalf("expected time_fields validation error, got %v", err)
	}
}

func TestValidateRecords_MismatchedClockTimes(t *testing.T) {
	rec := workingDay(2, engine.StatusPresent, 8)
	rec.OutTime = nil

	err := engine.ValidateRecords([]engine.AttendanceRecord{rec}, decimal.NewFromInt(1))
	var verr *engine.ValidationError
	if !errors.As(err, &verr) || verr.Code != "time_fields" {
		t.Fatalf("expected time_fields validation error, got %v", err)
	}
}

func TestValidateRecords_OffDayWithClockTimes(t *testing.T) {
	rec := workingDay(2, engine.StatusAbsent, 0)
	rec.WorkHours = decimal.Zero
	rec.BreakMinutes = 0

	err := engine.ValidateRecords([]engine.AttendanceRecord{rec}, decimal.Zero)
	var verr *engine.ValidationError
	if !errors.As(err, &verr) || verr.Code != "time_fields" {
		t.Fatalf("expected time_fields validation error, got %v", err)
	}
}

func TestValidateRecords_OffDayWithHours(t *testing.T) {
	rec := offDay(2, engine.StatusWeeklyOff)
	rec.WorkHours = decimal.NewFromInt(8)

	err := engine.ValidateRecords([]engine.AttendanceRecord{rec}, decimal.Zero)
	var verr *engine.ValidationError
	if !errors.As(err, &verr) || verr.Code != "nonworking_hours" {
		t.Fatalf("expected nonworking_hours validation error, got %v", err)
	}
}

func TestValidateRecords_CreditMismatch(t *testing.T) {
	records := []engine.AttendanceRecord{
		workingDay(2, engine.StatusPresent, 8),
		offDay(3, engine.StatusAbsent),
	}

	err := engine.ValidateRecords(records, decimal.NewFromInt(2))
	var cerr *engine.CreditMismatchError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected credit mismatch error, got %v", err)
	}
	if !cerr.Want.Equal(decimal.NewFromInt(2)) || !cerr.Got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("mismatch detail wrong: want %s got %s", cerr.Want, cerr.Got)
	}
}

func TestAssessQuality_AbsenceRunAndSpread(t *testing.T) {
	// GIVEN: A month with a 3-day absence streak and presence clustered in
	//        the first two thirds
	// WHEN: Assessing quality
	// THEN: The advisory metrics reflect both

	var records []engine.AttendanceRecord
	for day := 1; day <= 30; day++ {
		switch {
		case day >= 10 && day <= 12:
			records = append(records, offDay(day, engine.StatusAbsent))
		case day <= 20:
			records = append(records, workingDay(day, engine.StatusPresent, 8))
		default:
			records = append(records, offDay(day, engine.StatusWeeklyOff))
		}
	}

	q := engine.AssessQuality(records)
	if q.LongestAbsenceRun != 3 {
		t.Errorf("expected longest absence run 3, got %d", q.LongestAbsenceRun)
	}
	if q.PresenceByThird[0] != 9 || q.PresenceByThird[1] != 8 || q.PresenceByThird[2] != 0 {
		t.Errorf("unexpected presence spread: %v", q.PresenceByThird)
	}
}
