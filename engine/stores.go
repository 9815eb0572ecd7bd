/*
stores.go - Collaborator interfaces

PURPOSE:
  The engine consumes configuration, holidays, payroll targets, and the
  employee master through narrow store interfaces, and writes results
  through an upsert-style attendance store. Implementations:

  - store/sqlite: production SQLite store
  - engine/store: in-memory store for tests and demos

UPSERT CONTRACT:
  UpsertMonth replaces all rows for the given employee's month atomically -
  either the whole month commits or none of it. Keyed on (employee, date),
  so regeneration overwrites instead of duplicating.
*/
package engine

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ConfigStore serves per-client shift configuration.
type ConfigStore interface {
	// GetConfig returns the client's config, or nil when none exists.
	GetConfig(ctx context.Context, clientID ClientID) (*AttendanceConfig, error)
}

// HolidayStore serves the per-client holiday calendar.
type HolidayStore interface {
	ListHolidays(ctx context.Context, clientID ClientID, year int) ([]Holiday, error)
}

// PayrollStore serves the upstream payroll targets. Read-only input.
type PayrollStore interface {
	ListTargets(ctx context.Context, clientID ClientID, month time.Month, year int) ([]PayrollTarget, error)
}

// EmployeeStore serves the employee master records.
type EmployeeStore interface {
	ListEmployees(ctx context.Context, clientID ClientID) ([]Employee, error)
}

// AttendanceStore persists generated records and serves read-side views.
type AttendanceStore interface {
	// UpsertMonth atomically writes one employee's month, overwriting any
	// previous rows on the same (employee, date) pairs.
	UpsertMonth(ctx context.Context, clientID ClientID, records []AttendanceRecord) error

	// ListMonth returns one employee's rows for a month in date order.
	ListMonth(ctx context.Context, clientID ClientID, employeeID EmployeeID, month time.Month, year int) ([]AttendanceRecord, error)

	// MonthlySummary aggregates per-employee counts and OT totals.
	MonthlySummary(ctx context.Context, clientID ClientID, month time.Month, year int) ([]MonthlySummary, error)
}

// RunStore records generation-run history for auditability.
type RunStore interface {
	SaveRun(ctx context.Context, run GenerationRun) error
	ListRuns(ctx context.Context, clientID ClientID) ([]GenerationRun, error)
}

// MonthlySummary is the read-side aggregation consumed by reporting/export.
type MonthlySummary struct {
	EmployeeID   EmployeeID
	EmployeeCode string
	Name         string

	Present    int
	Absent     int
	HalfDays   int
	WeeklyOffs int
	PaidLeaves int

	TotalCredits decimal.Decimal
	TotalOTHours decimal.Decimal
}

// GenerationRun is one audit row per generator invocation.
type GenerationRun struct {
	ID             string
	ClientID       ClientID
	Month          time.Month
	Year           int
	TotalEmployees int
	Succeeded      int
	Failed         int
	FallbackUsed   bool
	RecordsWritten int
	CreatedAt      time.Time
}

// Stores bundles every collaborator the generator needs.
type Stores struct {
	Config     ConfigStore
	Holidays   HolidayStore
	Payroll    PayrollStore
	Employees  EmployeeStore
	Attendance AttendanceStore
	Runs       RunStore // Optional; nil disables run history
}
