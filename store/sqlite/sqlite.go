/*
Package sqlite provides a SQLite-backed implementation of the engine's
storage interfaces.

PURPOSE:
  Implements ConfigStore, HolidayStore, PayrollStore, EmployeeStore,
  AttendanceStore, and RunStore using SQLite. In production the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  attendance_configs: Per-client shift/weekly-off config (JSON payload)
  holidays:           Per-client holiday calendar
  employees:          Employee master slice the engine needs
  payroll_targets:    Upstream pay-day targets, replaced per month
  attendance:         Generated rows, UNIQUE(employee_id, date)
  generation_runs:    One audit row per generator invocation

IDEMPOTENT UPSERT:
  attendance writes go through INSERT ... ON CONFLICT(employee_id, date)
  DO UPDATE inside one transaction per employee-month: regeneration
  overwrites prior rows rather than duplicating them, and a month commits
  entirely or not at all.

CONCURRENCY:
  sync.RWMutex for thread-safety; SQLite runs in WAL mode for better
  read concurrency and crash recovery.

SEE ALSO:
  - engine/stores.go: Interface definitions
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shiftline/inout-engine/engine"
	"github.com/shopspring/decimal"
)

// Store implements all engine storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Per-client attendance configuration (shifts, weekly-off, rules)
	CREATE TABLE IF NOT EXISTS attendance_configs (
		client_id TEXT PRIMARY KEY,
		config_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Holiday calendar
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_client_date
		ON holidays(client_id, date);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON holidays(client_id, date, name);

	-- Employee master (the slice the engine needs)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		gender TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_client
		ON employees(client_id);

	-- Upstream payroll targets, replaced wholesale per (client, month, year)
	CREATE TABLE IF NOT EXISTS payroll_targets (
		client_id TEXT NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		employee_id TEXT NOT NULL DEFAULT '',
		employee_code TEXT NOT NULL,
		name TEXT NOT NULL,
		pay_days TEXT NOT NULL,
		target_ot_hours TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_payroll_targets_unique
		ON payroll_targets(client_id, month, year, employee_code);

	-- Generated attendance rows
	CREATE TABLE IF NOT EXISTS attendance (
		client_id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		status TEXT NOT NULL,
		in_time TEXT,
		out_time TEXT,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		work_hours TEXT NOT NULL,
		ot_hours TEXT NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		seed_tag TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- CRITICAL: regeneration upserts against this key
	CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_employee_date
		ON attendance(employee_id, date);
	CREATE INDEX IF NOT EXISTS idx_attendance_client_month
		ON attendance(client_id, year, month);

	-- Generation-run audit trail
	CREATE TABLE IF NOT EXISTS generation_runs (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		total_employees INTEGER NOT NULL,
		succeeded INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		fallback_used BOOLEAN NOT NULL DEFAULT FALSE,
		records_written INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_generation_runs_client
		ON generation_runs(client_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Stores bundles this store into an engine.Stores value.
func (s *Store) Stores() engine.Stores {
	return engine.Stores{
		Config:     s,
		Holidays:   s,
		Payroll:    s,
		Employees:  s,
		Attendance: s,
		Runs:       s,
	}
}

// =============================================================================
// CONFIG STORE (engine.ConfigStore interface)
// =============================================================================

// configJSON is the stored shape of an AttendanceConfig.
type configJSON struct {
	EnabledShifts []shiftJSON `json:"enabled_shifts"`
	WeeklyOffMode string      `json:"weekly_off_mode"`
	WeeklyOffDay  int         `json:"weekly_off_day"`
	Rules         []ruleJSON  `json:"defaulting_rules,omitempty"`
}

type shiftJSON struct {
	Code  string `json:"code"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type ruleJSON struct {
	MatchGender    string `json:"match_gender"`
	ForceShift     string `json:"force_shift,omitempty"`
	ForceWeeklyOff *int   `json:"force_weekly_off,omitempty"`
}

// SaveConfig stores or replaces a client's attendance configuration.
func (s *Store) SaveConfig(ctx context.Context, cfg engine.AttendanceConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := configJSON{
		WeeklyOffMode: string(cfg.WeeklyOff.Mode),
		WeeklyOffDay:  int(cfg.WeeklyOff.FixedDay),
	}
	for _, sw := range cfg.EnabledShifts {
		payload.EnabledShifts = append(payload.EnabledShifts, shiftJSON{
			Code:  string(sw.Code),
			Start: sw.Start.String(),
			End:   sw.End.String(),
		})
	}
	for _, rule := range cfg.DefaultingRules {
		rj := ruleJSON{MatchGender: rule.MatchGender, ForceShift: string(rule.ForceShift)}
		if rule.ForceWeeklyOff != nil {
			d := int(*rule.ForceWeeklyOff)
			rj.ForceWeeklyOff = &d
		}
		payload.Rules = append(payload.Rules, rj)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	query := `
		INSERT INTO attendance_configs (client_id, config_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET
			config_json = excluded.config_json,
			updated_at = excluded.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		cfg.ClientID, string(raw), time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetConfig returns a client's config, or nil when none exists.
func (s *Store) GetConfig(ctx context.Context, clientID engine.ClientID) (*engine.AttendanceConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT config_json FROM attendance_configs WHERE client_id = ?", clientID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var payload configJSON
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode config for %s: %w", clientID, err)
	}

	cfg := &engine.AttendanceConfig{
		ClientID: clientID,
		WeeklyOff: engine.WeeklyOffPolicy{
			Mode:     engine.WeeklyOffMode(payload.WeeklyOffMode),
			FixedDay: time.Weekday(payload.WeeklyOffDay),
		},
	}
	for _, sj := range payload.EnabledShifts {
		start, err := engine.ParseClockTime(sj.Start)
		if err != nil {
			return nil, err
		}
		end, err := engine.ParseClockTime(sj.End)
		if err != nil {
			return nil, err
		}
		cfg.EnabledShifts = append(cfg.EnabledShifts, engine.ShiftWindow{
			Code:  engine.ShiftCode(sj.Code),
			Start: start,
			End:   end,
		})
	}
	for _, rj := range payload.Rules {
		rule := engine.DefaultingRule{
			MatchGender: rj.MatchGender,
			ForceShift:  engine.ShiftCode(rj.ForceShift),
		}
		if rj.ForceWeeklyOff != nil {
			d := time.Weekday(*rj.ForceWeeklyOff)
			rule.ForceWeeklyOff = &d
		}
		cfg.DefaultingRules = append(cfg.DefaultingRules, rule)
	}
	return cfg, nil
}

// =============================================================================
// HOLIDAY STORE (engine.HolidayStore interface)
// =============================================================================

// SaveHoliday stores a holiday.
func (s *Store) SaveHoliday(ctx context.Context, h engine.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, client_id, date, name, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(client_id, date, name) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		h.ID, h.ClientID, h.Date.Format("2006-01-02"), h.Name,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// DeleteHoliday removes a holiday by id.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	return err
}

// ListHolidays returns a client's holidays for a year.
func (s *Store) ListHolidays(ctx context.Context, clientID engine.ClientID, year int) ([]engine.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, client_id, date, name
		FROM holidays
		WHERE client_id = ? AND strftime('%Y', date) = ?
		ORDER BY date ASC
	`
	rows, err := s.db.QueryContext(ctx, query, clientID, fmt.Sprintf("%04d", year))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []engine.Holiday
	for rows.Next() {
		var h engine.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &h.ClientID, &dateStr, &h.Name); err != nil {
			return nil, err
		}
		h.Date, _ = time.Parse("2006-01-02", dateStr)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// =============================================================================
// EMPLOYEE STORE (engine.EmployeeStore interface)
// =============================================================================

// SaveEmployee stores or updates an employee master record.
func (s *Store) SaveEmployee(ctx context.Context, emp engine.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (id, client_id, code, name, gender, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			code = excluded.code,
			name = excluded.name,
			gender = excluded.gender
	`
	_, err := s.db.ExecContext(ctx, query,
		emp.ID, emp.ClientID, emp.Code, emp.Name, emp.Gender,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// ListEmployees returns all employees of a client.
func (s *Store) ListEmployees(ctx context.Context, clientID engine.ClientID) ([]engine.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, client_id, code, name, gender FROM employees WHERE client_id = ? ORDER BY code",
		clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []engine.Employee
	for rows.Next() {
		var emp engine.Employee
		var gender sql.NullString
		if err := rows.Scan(&emp.ID, &emp.ClientID, &emp.Code, &emp.Name, &gender); err != nil {
			return nil, err
		}
		emp.Gender = gender.String
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// =============================================================================
// PAYROLL STORE (engine.PayrollStore interface)
// =============================================================================

// ReplaceTargets replaces a client-month's payroll targets wholesale,
// mirroring the upstream payroll step that produces them.
func (s *Store) ReplaceTargets(ctx context.Context, clientID engine.ClientID, month time.Month, year int, targets []engine.PayrollTarget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM payroll_targets WHERE client_id = ? AND month = ? AND year = ?",
		clientID, int(month), year); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, target := range targets {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO payroll_targets
			(client_id, month, year, employee_id, employee_code, name, pay_days, target_ot_hours, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			clientID, int(month), year,
			target.EmployeeID, target.EmployeeCode, target.Name,
			target.PayDays.String(), target.TargetOTHours.String(), now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListTargets returns the payroll targets for a client-month.
func (s *Store) ListTargets(ctx context.Context, clientID engine.ClientID, month time.Month, year int) ([]engine.PayrollTarget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT employee_id, employee_code, name, pay_days, target_ot_hours
		FROM payroll_targets
		WHERE client_id = ? AND month = ? AND year = ?
		ORDER BY employee_code
	`
	rows, err := s.db.QueryContext(ctx, query, clientID, int(month), year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []engine.PayrollTarget
	for rows.Next() {
		var target engine.PayrollTarget
		var payDays, otHours string
		if err := rows.Scan(&target.EmployeeID, &target.EmployeeCode, &target.Name, &payDays, &otHours); err != nil {
			return nil, err
		}
		target.PayDays = mustDecimal(payDays)
		target.TargetOTHours = mustDecimal(otHours)
		targets = append(targets, target)
	}
	return targets, rows.Err()
}

// =============================================================================
// ATTENDANCE STORE (engine.AttendanceStore interface)
// =============================================================================

// UpsertMonth writes one employee's month atomically. Keyed on
// (employee_id, date): rerunning generation overwrites, never duplicates.
func (s *Store) UpsertMonth(ctx context.Context, clientID engine.ClientID, records []engine.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO attendance
		(client_id, employee_id, date, status, in_time, out_time, break_minutes,
		 work_hours, ot_hours, month, year, seed_tag, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			client_id = excluded.client_id,
			status = excluded.status,
			in_time = excluded.in_time,
			out_time = excluded.out_time,
			break_minutes = excluded.break_minutes,
			work_hours = excluded.work_hours,
			ot_hours = excluded.ot_hours,
			month = excluded.month,
			year = excluded.year,
			seed_tag = excluded.seed_tag,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, query,
			clientID, rec.EmployeeID, rec.Date.Format("2006-01-02"), rec.Status,
			clockString(rec.InTime), clockString(rec.OutTime), rec.BreakMinutes,
			rec.WorkHours.String(), rec.OTHours.String(),
			int(rec.Month), rec.Year, rec.SeedTag, now,
		); err != nil {
			return fmt.Errorf("failed to upsert attendance row: %w", err)
		}
	}
	return tx.Commit()
}

// ListMonth returns one employee's rows for a month in date order.
func (s *Store) ListMonth(ctx context.Context, clientID engine.ClientID, employeeID engine.EmployeeID, month time.Month, year int) ([]engine.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT employee_id, date, status, in_time, out_time, break_minutes,
		       work_hours, ot_hours, month, year, seed_tag
		FROM attendance
		WHERE client_id = ? AND employee_id = ? AND month = ? AND year = ?
		ORDER BY date ASC
	`
	rows, err := s.db.QueryContext(ctx, query, clientID, employeeID, int(month), year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []engine.AttendanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (engine.AttendanceRecord, error) {
	var (
		rec             engine.AttendanceRecord
		dateStr         string
		inTime, outTime sql.NullString
		workStr, otStr  string
		monthInt        int
	)

	err := rows.Scan(
		&rec.EmployeeID, &dateStr, &rec.Status, &inTime, &outTime,
		&rec.BreakMinutes, &workStr, &otStr, &monthInt, &rec.Year, &rec.SeedTag,
	)
	if err != nil {
		return rec, fmt.Errorf("failed to scan attendance row: %w", err)
	}

	rec.Date, _ = time.Parse("2006-01-02", dateStr)
	rec.Month = time.Month(monthInt)
	rec.WorkHours = mustDecimal(workStr)
	rec.OTHours = mustDecimal(otStr)
	if inTime.Valid {
		if ct, err := engine.ParseClockTime(inTime.String); err == nil {
			rec.InTime = &ct
		}
	}
	if outTime.Valid {
		if ct, err := engine.ParseClockTime(outTime.String); err == nil {
			rec.OutTime = &ct
		}
	}
	return rec, nil
}

// MonthlySummary aggregates per-employee status counts and OT totals.
// Decimal columns are stored as TEXT, so totals are summed in Go to keep
// them exact.
func (s *Store) MonthlySummary(ctx context.Context, clientID engine.ClientID, month time.Month, year int) ([]engine.MonthlySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT a.employee_id, COALESCE(e.code, ''), COALESCE(e.name, ''), a.status, a.ot_hours
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.client_id = ? AND a.month = ? AND a.year = ?
		ORDER BY a.employee_id, a.date
	`
	rows, err := s.db.QueryContext(ctx, query, clientID, int(month), year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byEmployee := make(map[engine.EmployeeID]*engine.MonthlySummary)
	var order []engine.EmployeeID

	for rows.Next() {
		var (
			employeeID engine.EmployeeID
			code, name string
			status     engine.DayStatus
			otStr      string
		)
		if err := rows.Scan(&employeeID, &code, &name, &status, &otStr); err != nil {
			return nil, err
		}

		summary := byEmployee[employeeID]
		if summary == nil {
			summary = &engine.MonthlySummary{
				EmployeeID:   employeeID,
				EmployeeCode: code,
				Name:         name,
				TotalCredits: decimal.Zero,
				TotalOTHours: decimal.Zero,
			}
			byEmployee[employeeID] = summary
			order = append(order, employeeID)
		}

		switch status {
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
		summary.TotalCredits = summary.TotalCredits.Add(status.Credit())
		summary.TotalOTHours = summary.TotalOTHours.Add(mustDecimal(otStr))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summaries := make([]engine.MonthlySummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, *byEmployee[id])
	}
	return summaries, nil
}

// =============================================================================
// RUN STORE (engine.RunStore interface)
// =============================================================================

// SaveRun records one generation-run audit row.
func (s *Store) SaveRun(ctx context.Context, run engine.GenerationRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO generation_runs
		(id, client_id, month, year, total_employees, succeeded, failed,
		 fallback_used, records_written, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.ClientID, int(run.Month), run.Year,
		run.TotalEmployees, run.Succeeded, run.Failed,
		run.FallbackUsed, run.RecordsWritten,
		run.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

// ListRuns returns a client's generation runs, newest first.
func (s *Store) ListRuns(ctx context.Context, clientID engine.ClientID) ([]engine.GenerationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, client_id, month, year, total_employees, succeeded, failed,
		       fallback_used, records_written, created_at
		FROM generation_runs
		WHERE client_id = ?
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []engine.GenerationRun
	for rows.Next() {
		var run engine.GenerationRun
		var monthInt int
		var createdAt string
		if err := rows.Scan(
			&run.ID, &run.ClientID, &monthInt, &run.Year,
			&run.TotalEmployees, &run.Succeeded, &run.Failed,
			&run.FallbackUsed, &run.RecordsWritten, &createdAt,
		); err != nil {
			return nil, err
		}
		run.Month = time.Month(monthInt)
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func clockString(c *engine.ClockTime) sql.NullString {
	if c == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: c.String(), Valid: true}
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
