/*
context.go - Per-employee context derivation

PURPOSE:
  Resolves each payroll target row against the employee master and derives
  the solve context: assigned shift, weekly-off weekday, and base seed.
  Defaulting rules (a per-client table, see types.go) are applied first;
  otherwise shift and weekly-off are seeded uniform picks so assignment is
  stable across regenerations.

MAPPING FAILURES:
  Payroll rows without an employee reference, or referencing an employee
  missing from the master, are collected as warnings and excluded. A few bad
  rows must never fail the run.
*/
package engine

import (
	"fmt"
	"time"
)

// DeriveContexts maps payroll targets to solve contexts.
// Returns contexts for solvable employees and warnings for excluded rows.
func DeriveContexts(cfg *AttendanceConfig, targets []PayrollTarget, employees []Employee, month time.Month, year int) ([]EmployeeContext, []string) {
	index := make(map[EmployeeID]Employee, len(employees))
	for _, emp := range employees {
		index[emp.ID] = emp
	}

	var contexts []EmployeeContext
	var warnings []string

	for _, target := range targets {
		if target.EmployeeID == "" {
			warnings = append(warnings,
				fmt.Sprintf("payroll row %q (%s) is not mapped to any employee", target.EmployeeCode, target.Name))
			continue
		}
		emp, ok := index[target.EmployeeID]
		if !ok {
			warnings = append(warnings,
				fmt.Sprintf("employee %s (%s) from payroll is missing from the employee master", target.EmployeeID, target.EmployeeCode))
			continue
		}

		contexts = append(contexts, deriveContext(cfg, emp, target, month, year))
	}

	return contexts, warnings
}

func deriveContext(cfg *AttendanceConfig, emp Employee, target PayrollTarget, month time.Month, year int) EmployeeContext {
	ec := EmployeeContext{
		Employee: emp,
		Target:   target,
		ClientID: cfg.ClientID,
		Month:    month,
		Year:     year,
		Seed:     HashSeed(SeedKey(cfg.ClientID, emp.ID, month, year, "context")),
	}

	var rule *DefaultingRule
	rules := cfg.Rules()
	for i := range rules {
		if rules[i].Matches(emp) {
			rule = &rules[i]
			break
		}
	}

	ec.Shift = deriveShift(cfg, emp, rule, month, year)
	ec.WeeklyOff = deriveWeeklyOff(cfg, emp, rule, ec.Shift, month, year)
	return ec
}

func deriveShift(cfg *AttendanceConfig, emp Employee, rule *DefaultingRule, month time.Month, year int) ShiftCode {
	if rule != nil && rule.ForceShift != "" {
		return rule.ForceShift
	}
	r := NewRand(HashSeed(SeedKey(cfg.ClientID, emp.ID, month, year, "shift")))
	return cfg.EnabledShifts[r.Intn(len(cfg.EnabledShifts))].Code
}

func deriveWeeklyOff(cfg *AttendanceConfig, emp Employee, rule *DefaultingRule, shift ShiftCode, month time.Month, year int) time.Weekday {
	if rule != nil && rule.ForceWeeklyOff != nil {
		return *rule.ForceWeeklyOff
	}
	// General shift fixes the weekly off to Sunday.
	if shift == ShiftGeneral {
		return time.Sunday
	}
	if cfg.WeeklyOff.Mode == WeeklyOffFixed {
		return cfg.WeeklyOff.FixedDay
	}
	r := NewRand(HashSeed(SeedKey(cfg.ClientID, emp.ID, month, year, "weekly-off")))
	return time.Weekday(r.Intn(7))
}
