/*
Package engine implements the attendance ("IN-OUT") generation engine.

PURPOSE:
  Given a client's shift configuration, holiday calendar, and per-employee
  payroll pay-day targets for one month, this package synthesizes a full
  day-by-day attendance calendar per employee: statuses, clock in/out times,
  break minutes, work hours, and overtime. The day-status assignment is a
  constrained allocation problem - the fractional credits of the generated
  statuses must sum exactly to the payroll target.

KEY CONCEPTS IN THIS FILE (types.go):
  - DayStatus: P/A/H/PL/WO with a fixed credit value each
  - AttendanceRecord: One persisted row per employee per calendar date
  - AttendanceConfig: Per-client shifts, weekly-off policy, defaulting rules
  - PayrollTarget: The read-only objective the solver must satisfy
  - EmployeeContext: Derived per-run solve context (shift, weekly-off, seed)

DESIGN PRINCIPLES:
  1. Determinism: All randomness flows from seeds derived from stable ids
  2. Precision: decimal.Decimal for credits and hours, exact reconciliation
  3. Isolation: One employee's infeasibility never aborts the run
  4. Idempotency: Persistence is an upsert keyed on (employee, date)

SEE ALSO:
  - solver.go: Credit-driven day-status solver
  - generator.go: Orchestration, retry, fallback, reporting
  - stores.go: Collaborator interfaces
*/
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAY STATUS - The per-date attendance outcome
// =============================================================================

type DayStatus string

const (
	StatusPresent   DayStatus = "P"  // Full working day, credit 1.0
	StatusAbsent    DayStatus = "A"  // Absent, credit 0
	StatusHalfDay   DayStatus = "H"  // Half working day, credit 0.5
	StatusPaidLeave DayStatus = "PL" // Holiday / paid leave, credit 1.0
	StatusWeeklyOff DayStatus = "WO" // Weekly off, credit 0
)

var halfCredit = decimal.New(5, -1) // 0.5

// Credit returns the pay-day credit contributed by this status.
func (s DayStatus) Credit() decimal.Decimal {
	switch s {
	case StatusPresent, StatusPaidLeave:
		return decimal.NewFromInt(1)
	case StatusHalfDay:
		return halfCredit
	default:
		return decimal.Zero
	}
}

// IsWorking reports whether the status carries clock times and hours.
func (s DayStatus) IsWorking() bool {
	return s == StatusPresent || s == StatusHalfDay
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ClientID string
type EmployeeID string

// =============================================================================
// SHIFTS
// =============================================================================

type ShiftCode string

const (
	ShiftGeneral ShiftCode = "GEN"
	ShiftA       ShiftCode = "A"
	ShiftB       ShiftCode = "B"
	ShiftC       ShiftCode = "C"
)

// ClockTime is a time of day with minute granularity.
type ClockTime struct {
	Hour   int
	Minute int
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// TotalMinutes returns minutes since midnight.
func (c ClockTime) TotalMinutes() int { return c.Hour*60 + c.Minute }

// AddMinutes returns the clock time n minutes later, wrapping past midnight.
func (c ClockTime) AddMinutes(n int) ClockTime {
	total := c.TotalMinutes() + n
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
	}
	return ClockTime{Hour: total / 60, Minute: total % 60}
}

func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// ShiftWindow is a configured shift with its nominal working window.
type ShiftWindow struct {
	Code  ShiftCode
	Start ClockTime
	End   ClockTime
}

// =============================================================================
// WEEKLY-OFF POLICY
// =============================================================================

type WeeklyOffMode string

const (
	// WeeklyOffFixed assigns the same weekday off to every employee.
	WeeklyOffFixed WeeklyOffMode = "fixed"
	// WeeklyOffRotational assigns a seeded per-employee weekday, stable for
	// the whole month.
	WeeklyOffRotational WeeklyOffMode = "rotational"
)

type WeeklyOffPolicy struct {
	Mode     WeeklyOffMode
	FixedDay time.Weekday // Only meaningful when Mode is WeeklyOffFixed
}

// =============================================================================
// DEFAULTING RULES - Configurable shift/weekly-off forcing
// =============================================================================

// DefaultingRule forces shift and/or weekly-off assignments for employees
// matching its criteria. Deployment policy, not engine logic: the historical
// rule set forces General shift and Sunday off for female employees, but the
// table is per-client configuration and can be replaced.
type DefaultingRule struct {
	MatchGender    string        // Case-insensitive match; empty matches everyone
	ForceShift     ShiftCode     // Empty = no shift forcing
	ForceWeeklyOff *time.Weekday // nil = no weekly-off forcing
}

// Matches reports whether the rule applies to the employee.
func (r DefaultingRule) Matches(emp Employee) bool {
	return r.MatchGender == "" || strings.EqualFold(r.MatchGender, emp.Gender)
}

// DefaultRules is the rule table shipped when a client has none configured.
func DefaultRules() []DefaultingRule {
	sunday := time.Sunday
	return []DefaultingRule{
		{MatchGender: "female", ForceShift: ShiftGeneral, ForceWeeklyOff: &sunday},
	}
}

// =============================================================================
// ATTENDANCE CONFIG - Per-client generation configuration
// =============================================================================

type AttendanceConfig struct {
	ClientID        ClientID
	EnabledShifts   []ShiftWindow
	WeeklyOff       WeeklyOffPolicy
	DefaultingRules []DefaultingRule
}

// Validate checks the configuration invariants.
func (c *AttendanceConfig) Validate() error {
	if len(c.EnabledShifts) == 0 {
		return ErrNoShiftEnabled
	}
	if c.WeeklyOff.Mode != WeeklyOffFixed && c.WeeklyOff.Mode != WeeklyOffRotational {
		return fmt.Errorf("%w: unknown weekly-off mode %q", ErrInvalidConfig, c.WeeklyOff.Mode)
	}
	return nil
}

// Rules returns the configured defaulting rules, or the shipped defaults.
func (c *AttendanceConfig) Rules() []DefaultingRule {
	if len(c.DefaultingRules) > 0 {
		return c.DefaultingRules
	}
	return DefaultRules()
}

// =============================================================================
// UPSTREAM DATA - Holidays, payroll targets, employee master
// =============================================================================

// Holiday is a client-level holiday date. Holidays take precedence over
// weekly-off checks: a date is holiday OR weekly-off, never both.
type Holiday struct {
	ID       string
	ClientID ClientID
	Date     time.Time // Day granularity, UTC
	Name     string
}

// PayrollTarget is one row of the upstream payroll computation: the objective
// the solver must satisfy. Read-only input.
type PayrollTarget struct {
	EmployeeID    EmployeeID // Empty when the payroll row is unmapped
	EmployeeCode  string
	Name          string
	PayDays       decimal.Decimal // Non-negative, typically 0.5 increments
	TargetOTHours decimal.Decimal
}

// Employee is the master record slice the engine needs.
type Employee struct {
	ID       EmployeeID
	ClientID ClientID
	Code     string
	Name     string
	Gender   string
}

// =============================================================================
// EMPLOYEE CONTEXT - Derived per generation run, in-memory only
// =============================================================================

type EmployeeContext struct {
	Employee Employee
	Target   PayrollTarget

	ClientID ClientID
	Month    time.Month
	Year     int

	Shift     ShiftCode
	WeeklyOff time.Weekday

	// Seed is the base seed derived from (client, employee, month, year).
	// Attempt seeds are derived independently with purpose tags.
	Seed uint64
}

// SeedFor derives the seed for a tagged purpose ("attempt-3", "fallback-1").
func (ec EmployeeContext) SeedFor(tag string) uint64 {
	return HashSeed(SeedKey(ec.ClientID, ec.Employee.ID, ec.Month, ec.Year, tag))
}

// =============================================================================
// ATTENDANCE RECORD - Persisted per employee per calendar date
// =============================================================================

// AttendanceRecord is one generated day. Invariants:
//   - InTime and OutTime are both set or both nil
//   - they are set iff Status.IsWorking()
//   - non-working statuses carry zero hours and zero break
type AttendanceRecord struct {
	EmployeeID EmployeeID
	Date       time.Time // Day granularity, UTC
	Status     DayStatus

	InTime       *ClockTime
	OutTime      *ClockTime
	BreakMinutes int

	WorkHours decimal.Decimal
	OTHours   decimal.Decimal

	Month time.Month
	Year  int

	// SeedTag records which solve pass produced the row ("attempt-4",
	// "fallback-1") so fallback months are distinguishable downstream.
	SeedTag string
}

// TotalCredits sums the status credits of a record set.
func TotalCredits(records []AttendanceRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Status.Credit())
	}
	return total
}
