/*
errors.go - Centralized error types for the attendance engine

ERROR CATEGORIES:
  1. Configuration errors - fatal for the whole run, nothing is written
  2. Infeasibility - per-employee, recovered locally (skip + report)
  3. Validation errors - generated record set violates an invariant

USAGE:
  Callers classify with the helpers:

    if engine.IsConfigError(err) { ... fail the run ... }
    if engine.IsInfeasible(err)  { ... record, continue ... }
*/
package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoShiftEnabled is returned when a client has zero enabled shifts.
	ErrNoShiftEnabled = errors.New("no shift enabled for client")

	// ErrConfigMissing is returned when no attendance config exists for the client.
	ErrConfigMissing = errors.New("attendance config missing")

	// ErrInvalidConfig is returned for malformed configuration.
	ErrInvalidConfig = errors.New("invalid attendance config")

	// ErrNoEmployees is returned when no payroll row maps to any employee.
	ErrNoEmployees = errors.New("no payroll-mapped employees")

	// ErrInfeasible is the base of all per-employee solve failures.
	ErrInfeasible = errors.New("attendance target infeasible")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// InfeasibleError reports why one employee's month could not be solved.
type InfeasibleError struct {
	EmployeeID EmployeeID
	Reason     string
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("infeasible for employee %s: %s", e.EmployeeID, e.Reason)
}

func (e *InfeasibleError) Unwrap() error { return ErrInfeasible }

func infeasible(employeeID EmployeeID, format string, args ...any) *InfeasibleError {
	return &InfeasibleError{EmployeeID: employeeID, Reason: fmt.Sprintf(format, args...)}
}

// ValidationError reports the first invariant violated by a generated set.
type ValidationError struct {
	EmployeeID EmployeeID
	Code       string // "time_fields", "nonworking_hours", "credit_mismatch"
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation %s for employee %s: %s", e.Code, e.EmployeeID, e.Message)
}

// CreditMismatchError is the credit-reconciliation failure case.
type CreditMismatchError struct {
	EmployeeID EmployeeID
	Want       decimal.Decimal
	Got        decimal.Decimal
}

func (e *CreditMismatchError) Error() string {
	return fmt.Sprintf("credit mismatch for employee %s: want %s, got %s",
		e.EmployeeID, e.Want, e.Got)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConfigError reports whether the error is fatal for the whole run.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNoShiftEnabled) ||
		errors.Is(err, ErrConfigMissing) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrNoEmployees)
}

// IsInfeasible reports whether the error is a per-employee solve failure.
func IsInfeasible(err error) bool {
	return errors.Is(err, ErrInfeasible)
}
