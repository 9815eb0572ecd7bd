/*
clock.go - Clock-time and hours synthesis

PURPOSE:
  Attaches plausible in/out times, break minutes, and work/OT hours to P and
  H days. Canonical per-shift start times are used instead of the raw
  configured windows - generated months should look like real punch data,
  and real punches cluster around the canonical starts.

RULES:
  - In-time: canonical shift start perturbed by 0-10 seeded minutes, early
    or late.
  - Target work: 8h for P, 4h for H. Break: fixed 60 minutes.
  - Overtime: seeded 0..min(4h, room under the 12h worked cap).
  - Out-time = in + work + break + OT (wraps past midnight for shift C).
  - WorkHours = (work+OT)/60 rounded to 2 decimals;
    OTHours = max(0, WorkHours-8) rounded to 2 decimals.
*/
package engine

import (
	"github.com/shopspring/decimal"
)

const (
	fullDayMinutes = 8 * 60
	halfDayMinutes = 4 * 60
	breakMinutes   = 60
	workedCapMins  = 12 * 60
	maxOTMinutes   = 4 * 60
	maxJitterMins  = 10
)

// Canonical shift start times, overriding configured windows for realism.
var canonicalStarts = map[ShiftCode]ClockTime{
	ShiftGeneral: {Hour: 9, Minute: 30},
	ShiftA:       {Hour: 8, Minute: 0},
	ShiftB:       {Hour: 16, Minute: 0},
	ShiftC:       {Hour: 0, Minute: 30},
}

// ShiftStart returns the canonical start for a shift code.
// Unknown codes fall back to the General start.
func ShiftStart(code ShiftCode) ClockTime {
	if start, ok := canonicalStarts[code]; ok {
		return start
	}
	return canonicalStarts[ShiftGeneral]
}

// synthesizeClock fills the clock fields of a P or H record from the stream.
func synthesizeClock(r *Rand, shift ShiftCode, rec *AttendanceRecord) {
	jitter := r.Intn(maxJitterMins + 1)
	if r.Bool() {
		jitter = -jitter
	}
	in := ShiftStart(shift).AddMinutes(jitter)

	work := fullDayMinutes
	if rec.Status == StatusHalfDay {
		work = halfDayMinutes
	}

	otRoom := workedCapMins - work
	if otRoom > maxOTMinutes {
		otRoom = maxOTMinutes
	}
	ot := r.Intn(otRoom + 1)

	out := in.AddMinutes(work + breakMinutes + ot)

	workHours := decimal.NewFromInt(int64(work + ot)).
		Div(decimal.NewFromInt(60)).Round(2)
	otHours := workHours.Sub(decimal.NewFromInt(8))
	if otHours.IsNegative() {
		otHours = decimal.Zero
	}

	rec.InTime = &in
	rec.OutTime = &out
	rec.BreakMinutes = breakMinutes
	rec.WorkHours = workHours
	rec.OTHours = otHours.Round(2)
}
