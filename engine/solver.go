/*
solver.go - Credit-driven day-status solver

PURPOSE:
  For one employee and one month, construct a full day-status sequence whose
  credits sum exactly to the payroll pay-day target:

  1. Partition the month: holidays -> PL (1.0), weekly-offs -> WO (0),
     the rest are open candidates.
  2. Shuffle the open dates and remove one as an additional forced PL day -
     each employee gets one extra paid-leave day beyond configured holidays,
     chosen pseudo-randomly per employee/month (upstream spreadsheet
     convention).
  3. remaining = target - (holidays + 1). Negative means infeasible.
  4. Targets with a .5 fraction need exactly one half-day; otherwise try
     half-day counts 0..3 in shuffled order until the present count is a
     non-negative integer that fits the open capacity. The shuffled order
     diversifies outcomes across employees.
  5. Shuffle the open dates again and assign H, then P, remainder A.

  The construction makes the credit-reconciliation invariant hold exactly:
  sum(credit(status)) == target, with credit(P)=credit(PL)=1, credit(H)=0.5,
  credit(A)=credit(WO)=0. Validation re-checks it anyway (validate.go).

FAILURE:
  Any infeasibility returns *InfeasibleError; the caller retries with a new
  attempt seed or falls back (fallback.go).

SEE ALSO:
  - clock.go: In/out time synthesis for P and H days
  - generator.go: Retry orchestration
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// SolveInput carries the read-only inputs of one employee-month solve.
type SolveInput struct {
	Context EmployeeContext

	// Holidays of the client's year; dates outside the month are ignored.
	Holidays []time.Time
}

// halfDayCandidates is the search space for the half-day count when the
// target has no fractional component.
var halfDayCandidates = []int{0, 1, 2, 3}

// SolveMonth runs one randomized solve attempt. seedTag is recorded on every
// produced record for traceability.
func SolveMonth(in SolveInput, seed uint64, seedTag string) ([]AttendanceRecord, error) {
	ec := in.Context
	r := NewRand(seed)

	part := PartitionMonth(ec.Year, ec.Month, ec.WeeklyOff, in.Holidays)

	status := make(map[string]DayStatus, DaysInMonth(ec.Year, ec.Month))
	for _, d := range part.Holidays {
		status[DateKey(d)] = StatusPaidLeave
	}
	for _, d := range part.WeeklyOffs {
		status[DateKey(d)] = StatusWeeklyOff
	}

	// Extra forced paid-leave day, picked pseudo-randomly from the open set.
	open := append([]time.Time(nil), part.Open...)
	Shuffle(r, open)
	if len(open) == 0 {
		return nil, infeasible(ec.Employee.ID, "no open dates to place the extra paid-leave day")
	}
	status[DateKey(open[0])] = StatusPaidLeave
	open = open[1:]

	target := ec.Target.PayDays
	forced := decimal.NewFromInt(int64(len(part.Holidays) + 1))
	remaining := target.Sub(forced)
	if remaining.IsNegative() {
		return nil, infeasible(ec.Employee.ID,
			"target %s is below the %s forced paid-leave credits", target, forced)
	}

	halfCount, presentCount, ok := chooseHalfDays(r, target, remaining, len(open))
	if !ok {
		return nil, infeasible(ec.Employee.ID,
			"no half-day combination satisfies remaining credit %s within %d open dates", remaining, len(open))
	}

	Shuffle(r, open)
	for i, d := range open {
		switch {
		case i < halfCount:
			status[DateKey(d)] = StatusHalfDay
		case i < halfCount+presentCount:
			status[DateKey(d)] = StatusPresent
		default:
			status[DateKey(d)] = StatusAbsent
		}
	}

	return buildRecords(ec, status, r, seedTag), nil
}

// chooseHalfDays picks the half-day count and resulting present count.
// A .5 fractional target requires exactly one half-day; otherwise candidate
// counts are tried in shuffled order.
func chooseHalfDays(r *Rand, target, remaining decimal.Decimal, capacity int) (halfCount, presentCount int, ok bool) {
	var candidates []int
	if target.Mod(decimal.NewFromInt(1)).Equal(halfCredit) {
		candidates = []int{1}
	} else {
		candidates = append([]int(nil), halfDayCandidates...)
		Shuffle(r, candidates)
	}

	for _, hc := range candidates {
		presentCredit := remaining.Sub(halfCredit.Mul(decimal.NewFromInt(int64(hc))))
		if presentCredit.IsNegative() || !presentCredit.Equal(presentCredit.Truncate(0)) {
			continue
		}
		pc := int(presentCredit.IntPart())
		if hc+pc <= capacity {
			return hc, pc, true
		}
	}
	return 0, 0, false
}

// buildRecords materializes the full month in date order, attaching clock
// times and hours to working days from the same random stream.
func buildRecords(ec EmployeeContext, status map[string]DayStatus, r *Rand, seedTag string) []AttendanceRecord {
	dates := MonthDates(ec.Year, ec.Month)
	records := make([]AttendanceRecord, 0, len(dates))
	for _, d := range dates {
		rec := AttendanceRecord{
			EmployeeID: ec.Employee.ID,
			Date:       d,
			Status:     status[DateKey(d)],
			WorkHours:  decimal.Zero,
			OTHours:    decimal.Zero,
			Month:      ec.Month,
			Year:       ec.Year,
			SeedTag:    seedTag,
		}
		if rec.Status.IsWorking() {
			synthesizeClock(r, ec.Shift, &rec)
		}
		records = append(records, rec)
	}
	return records
}
