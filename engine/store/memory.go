// Package store provides an in-memory implementation of the engine's store
// interfaces, for tests and demos.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shiftline/inout-engine/engine"
	"github.com/shopspring/decimal"
)

// =============================================================================
// MEMORY STORE - Implements every engine store interface
// =============================================================================

type Memory struct {
	mu sync.RWMutex

	configs   map[engine.ClientID]*engine.AttendanceConfig
	holidays  map[engine.ClientID][]engine.Holiday
	targets   map[payrollKey][]engine.PayrollTarget
	employees map[engine.ClientID][]engine.Employee

	// attendance[client][employee][dateKey] - map keys give upsert semantics.
	attendance map[engine.ClientID]map[engine.EmployeeID]map[string]engine.AttendanceRecord

	runs []engine.GenerationRun
}

type payrollKey struct {
	ClientID engine.ClientID
	Month    time.Month
	Year     int
}

func NewMemory() *Memory {
	return &Memory{
		configs:    make(map[engine.ClientID]*engine.AttendanceConfig),
		holidays:   make(map[engine.ClientID][]engine.Holiday),
		targets:    make(map[payrollKey][]engine.PayrollTarget),
		employees:  make(map[engine.ClientID][]engine.Employee),
		attendance: make(map[engine.ClientID]map[engine.EmployeeID]map[string]engine.AttendanceRecord),
	}
}

// =============================================================================
// FIXTURE SETTERS
// =============================================================================

func (m *Memory) PutConfig(cfg engine.AttendanceConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs[cfg.ClientID] = &cfg
}

func (m *Memory) AddHoliday(h engine.Holiday) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holidays[h.ClientID] = append(m.holidays[h.ClientID], h)
}

func (m *Memory) PutTargets(clientID engine.ClientID, month time.Month, year int, targets []engine.PayrollTarget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.targets[payrollKey{clientID, month, year}] = append([]engine.PayrollTarget(nil), targets...)
}

func (m *Memory) AddEmployee(emp engine.Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[emp.ClientID] = append(m.employees[emp.ClientID], emp)
}

// =============================================================================
// READ-SIDE INTERFACES
// =============================================================================

func (m *Memory) GetConfig(_ context.Context, clientID engine.ClientID) (*engine.AttendanceConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.configs[clientID]
	if !ok {
		return nil, nil
	}
	cp := *cfg
	return &cp, nil
}

func (m *Memory) ListHolidays(_ context.Context, clientID engine.ClientID, year int) ([]engine.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.Holiday
	for _, h := range m.holidays[clientID] {
		if h.Date.Year() == year {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *Memory) ListTargets(_ context.Context, clientID engine.ClientID, month time.Month, year int) ([]engine.PayrollTarget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]engine.PayrollTarget(nil), m.targets[payrollKey{clientID, month, year}]...), nil
}

func (m *Memory) ListEmployees(_ context.Context, clientID engine.ClientID) ([]engine.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]engine.Employee(nil), m.employees[clientID]...), nil
}

// =============================================================================
// ATTENDANCE STORE
// =============================================================================

func (m *Memory) UpsertMonth(_ context.Context, clientID engine.ClientID, records []engine.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byEmployee := m.attendance[clientID]
	if byEmployee == nil {
		byEmployee = make(map[engine.EmployeeID]map[string]engine.AttendanceRecord)
		m.attendance[clientID] = byEmployee
	}
	for _, rec := range records {
		days := byEmployee[rec.EmployeeID]
		if days == nil {
			days = make(map[string]engine.AttendanceRecord)
			byEmployee[rec.EmployeeID] = days
		}
		days[engine.DateKey(rec.Date)] = rec
	}
	return nil
}

func (m *Memory) ListMonth(_ context.Context, clientID engine.ClientID, employeeID engine.EmployeeID, month time.Month, year int) ([]engine.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.AttendanceRecord
	for _, rec := range m.attendance[clientID][employeeID] {
		if rec.Month == month && rec.Year == year {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Memory) MonthlySummary(_ context.Context, clientID engine.ClientID, month time.Month, year int) ([]engine.MonthlySummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	empIndex := make(map[engine.EmployeeID]engine.Employee)
	for _, emp := range m.employees[clientID] {
		empIndex[emp.ID] = emp
	}

	var out []engine.MonthlySummary
	for employeeID, days := range m.attendance[clientID] {
		summary := engine.MonthlySummary{
			EmployeeID:   employeeID,
			TotalCredits: decimal.Zero,
			TotalOTHours: decimal.Zero,
		}
		if emp, ok := empIndex[employeeID]; ok {
			summary.EmployeeCode = emp.Code
			summary.Name = emp.Name
		}
		matched := false
		for _, rec := range days {
			if rec.Month != month || rec.Year != year {
				continue
			}
			matched = true
			switch rec.Status {
			case engine.StatusPresent:
				summary.Present++
			case engine.StatusAbsent:
				summary.Absent++
			case engine.StatusHalfDay:
				summary.HalfDays++
			case engine.StatusWeeklyOff:
				summary.WeeklyOffs++
			case engine.StatusPaidLeave:
				summary.PaidLeaves++
			}
			summary.TotalCredits = summary.TotalCredits.Add(rec.Status.Credit())
			summary.TotalOTHours = summary.TotalOTHours.Add(rec.OTHours)
		}
		if matched {
			out = append(out, summary)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

// =============================================================================
// RUN STORE
// =============================================================================

func (m *Memory) SaveRun(_ context.Context, run engine.GenerationRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *Memory) ListRuns(_ context.Context, clientID engine.ClientID) ([]engine.GenerationRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.GenerationRun
	for _, run := range m.runs {
		if run.ClientID == clientID {
			out = append(out, run)
		}
	}
	return out, nil
}

// Stores bundles the memory store into an engine.Stores value.
func (m *Memory) Stores() engine.Stores {
	return engine.Stores{
		Config:     m,
		Holidays:   m,
		Payroll:    m,
		Employees:  m,
		Attendance: m,
		Runs:       m,
	}
}
