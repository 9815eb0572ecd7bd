/*
validate.go - Record-set validation and quality assessment

HARD CHECKS (enforced before persistence):
  - In/out times are both present or both absent, and present iff the
    status is P or H.
  - Non-working statuses carry zero hours and zero break.
  - Status credits sum exactly to the pay-day target.

ADVISORY CHECKS (reported, never enforced):
  - Longest consecutive absence run.
  - Presence spread across thirds of the month.
  These mirror quality heuristics that were never wired into the acceptance
  path; they surface in the report so operators can eyeball suspicious
  months without the solver rejecting otherwise-valid ones.
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidateRecords checks the hard invariants of a generated employee-month.
func ValidateRecords(records []AttendanceRecord, target decimal.Decimal) error {
	for _, rec := range records {
		if (rec.InTime == nil) != (rec.OutTime == nil) {
			return &ValidationError{
				EmployeeID: rec.EmployeeID,
				Code:       "time_fields",
				Message:    fmt.Sprintf("%s: in-time and out-time must be set together", DateKey(rec.Date)),
			}
		}
		if rec.Status.IsWorking() {
			if rec.InTime == nil {
				return &ValidationError{
					EmployeeID: rec.EmployeeID,
					Code:       "time_fields",
					Message:    fmt.Sprintf("%s: status %s requires clock times", DateKey(rec.Date), rec.Status),
				}
			}
			continue
		}
		if rec.InTime != nil {
			return &ValidationError{
				EmployeeID: rec.EmployeeID,
				Code:       "time_fields",
				Message:    fmt.Sprintf("%s: status %s must not carry clock times", DateKey(rec.Date), rec.Status),
			}
		}
		if !rec.WorkHours.IsZero() || !rec.OTHours.IsZero() || rec.BreakMinutes != 0 {
			return &ValidationError{
				EmployeeID: rec.EmployeeID,
				Code:       "nonworking_hours",
				Message:    fmt.Sprintf("%s: status %s must carry zero hours", DateKey(rec.Date), rec.Status),
			}
		}
	}

	if got := TotalCredits(records); !got.Equal(target) {
		var employeeID EmployeeID
		if len(records) > 0 {
			employeeID = records[0].EmployeeID
		}
		return &CreditMismatchError{EmployeeID: employeeID, Want: target, Got: got}
	}
	return nil
}

// =============================================================================
// QUALITY - Advisory heuristics
// =============================================================================

// QualityReport describes how natural a generated month looks.
type QualityReport struct {
	// LongestAbsenceRun is the longest streak of consecutive A days.
	LongestAbsenceRun int

	// PresenceByThird counts P and H days in each third of the month.
	PresenceByThird [3]int
}

// AssessQuality computes the advisory metrics for a date-ordered record set.
func AssessQuality(records []AttendanceRecord) QualityReport {
	var q QualityReport
	run := 0
	for i, rec := range records {
		if rec.Status == StatusAbsent {
			run++
			if run > q.LongestAbsenceRun {
				q.LongestAbsenceRun = run
			}
		} else {
			run = 0
		}
		if rec.Status.IsWorking() {
			third := i * 3 / len(records)
			if third > 2 {
				third = 2
			}
			q.PresenceByThird[third]++
		}
	}
	return q
}
