/*
fallback.go - Deterministic always-convergent allocator

PURPOSE:
  Used when the randomized solver repeatedly fails. Computes the same
  remaining credit - holidays as forced PL, but WITHOUT the extra forced
  paid-leave day - then spreads the present days evenly across the open
  dates by index instead of shuffling. Guaranteed to converge whenever the
  target fits the open capacity at all; the price is a mechanical-looking
  month. Results are tagged "fallback-*" so downstream consumers can tell
  fallback months from naturally-solved ones.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// SolveFallback runs the deterministic allocator. The seed only drives clock
// jitter; the day-status layout is fully determined by the inputs.
func SolveFallback(in SolveInput, seed uint64, seedTag string) ([]AttendanceRecord, error) {
	ec := in.Context

	part := PartitionMonth(ec.Year, ec.Month, ec.WeeklyOff, in.Holidays)

	status := make(map[string]DayStatus, DaysInMonth(ec.Year, ec.Month))
	for _, d := range part.Holidays {
		status[DateKey(d)] = StatusPaidLeave
	}
	for _, d := range part.WeeklyOffs {
		status[DateKey(d)] = StatusWeeklyOff
	}

	target := ec.Target.PayDays
	remaining := target.Sub(decimal.NewFromInt(int64(len(part.Holidays))))
	if remaining.IsNegative() {
		return nil, infeasible(ec.Employee.ID,
			"target %s is below the %d holiday credits", target, len(part.Holidays))
	}

	needHalf := 0
	if target.Mod(decimal.NewFromInt(1)).Equal(halfCredit) {
		needHalf = 1
	}
	presentCredit := remaining.Sub(halfCredit.Mul(decimal.NewFromInt(int64(needHalf))))
	if !presentCredit.Equal(presentCredit.Truncate(0)) {
		return nil, infeasible(ec.Employee.ID,
			"target %s has a fractional component no half-day layout can express", target)
	}
	presentCount := int(presentCredit.IntPart())

	open := part.Open
	if presentCount+needHalf > len(open) {
		return nil, infeasible(ec.Employee.ID,
			"%d present and %d half days exceed %d open dates", presentCount, needHalf, len(open))
	}

	// Evenly-spaced index sampling: present days land at floor(i*N/presentCount).
	taken := make([]bool, len(open))
	for i := 0; i < presentCount; i++ {
		pos := i * len(open) / presentCount
		status[DateKey(open[pos])] = StatusPresent
		taken[pos] = true
	}
	if needHalf == 1 {
		for i := range open {
			if !taken[i] {
				status[DateKey(open[i])] = StatusHalfDay
				taken[i] = true
				break
			}
		}
	}
	for i := range open {
		if !taken[i] {
			status[DateKey(open[i])] = StatusAbsent
		}
	}

	return buildRecords(ec, status, NewRand(seed), seedTag), nil
}
