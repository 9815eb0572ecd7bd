/*
generator.go - Orchestration: retry, fallback, persistence, reporting

FLOW (one client, one month, one year):
  1. Load config, holidays, payroll targets, employee master.
  2. Derive per-employee contexts; collect mapping warnings.
  3. Per employee: up to MaxAttempts randomized solves with reseeded
     attempt tags; on exhaustion, the deterministic fallback with a few
     reseeded passes of its own. Every candidate set is validated before
     acceptance.
  4. Persist accepted months via atomic per-employee upsert.
  5. Aggregate everything into a GenerationReport.

STATE MACHINE (per employee):
  Pending -> Solving (attempts 1..N) -> Solved | FallbackSolved | Failed
  Terminal Solved/FallbackSolved months are written; Failed months are not,
  and surface in the report. One employee's failure never aborts the run.

FATAL ERRORS:
  Only configuration-level problems fail the whole run: missing config, no
  enabled shift, no payroll-mapped employees at all. Nothing is written in
  those cases.
*/
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxAttempts bounds the randomized solve loop per employee.
	DefaultMaxAttempts = 20

	// DefaultFallbackRetries bounds the reseeded fallback passes.
	DefaultFallbackRetries = 3
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// SolveState is the terminal state of one employee's solve.
type SolveState string

const (
	StateSolved         SolveState = "solved"
	StateFallbackSolved SolveState = "fallback_solved"
	StateFailed         SolveState = "failed"
)

// EmployeeResult is the per-employee outcome in the report.
type EmployeeResult struct {
	EmployeeID   EmployeeID
	EmployeeCode string
	Name         string

	State    SolveState
	Attempts int    // Randomized attempts consumed
	SeedTag  string // Tag of the accepted pass, empty when failed
	Reason   string // Failure reason, empty on success

	Quality QualityReport
}

// GenerationReport is the single return value of a run: partial success is
// a first-class outcome, never an error.
type GenerationReport struct {
	RunID    string
	ClientID ClientID
	Month    time.Month
	Year     int

	TotalEmployees int
	Succeeded      int
	Failed         int
	FallbackUsed   bool
	RecordsWritten int

	Warnings []string
	Results  []EmployeeResult

	StartedAt  time.Time
	FinishedAt time.Time
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator runs attendance generation against a set of stores.
type Generator struct {
	Stores Stores
	Log    logrus.FieldLogger

	// MaxAttempts and FallbackRetries default when zero.
	MaxAttempts     int
	FallbackRetries int
}

// NewGenerator wires a generator with default bounds.
func NewGenerator(stores Stores, log logrus.FieldLogger) *Generator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{
		Stores:          stores,
		Log:             log,
		MaxAttempts:     DefaultMaxAttempts,
		FallbackRetries: DefaultFallbackRetries,
	}
}

func (g *Generator) maxAttempts() int {
	if g.MaxAttempts > 0 {
		return g.MaxAttempts
	}
	return DefaultMaxAttempts
}

func (g *Generator) fallbackRetries() int {
	if g.FallbackRetries > 0 {
		return g.FallbackRetries
	}
	return DefaultFallbackRetries
}

// Generate runs attendance generation for one client/month/year.
// Returns a report on success or partial success; an error only for
// configuration-level failures (IsConfigError) or store failures while
// loading inputs.
func (g *Generator) Generate(ctx context.Context, clientID ClientID, month time.Month, year int) (*GenerationReport, error) {
	log := g.Log.WithFields(logrus.Fields{
		"client": clientID,
		"month":  int(month),
		"year":   year,
	})

	cfg, err := g.Stores.Config.GetConfig(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("client %s: %w", clientID, ErrConfigMissing)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("client %s: %w", clientID, err)
	}

	holidays, err := g.Stores.Holidays.ListHolidays(ctx, clientID, year)
	if err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}
	holidayDates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		holidayDates = append(holidayDates, h.Date)
	}

	targets, err := g.Stores.Payroll.ListTargets(ctx, clientID, month, year)
	if err != nil {
		return nil, fmt.Errorf("load payroll targets: %w", err)
	}
	employees, err := g.Stores.Employees.ListEmployees(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	contexts, warnings := DeriveContexts(cfg, targets, employees, month, year)
	if len(contexts) == 0 {
		return nil, fmt.Errorf("client %s %04d-%02d: %w", clientID, year, int(month), ErrNoEmployees)
	}

	report := &GenerationReport{
		RunID:          uuid.NewString(),
		ClientID:       clientID,
		Month:          month,
		Year:           year,
		TotalEmployees: len(contexts),
		Warnings:       warnings,
		StartedAt:      time.Now().UTC(),
	}
	for _, w := range warnings {
		log.Warn(w)
	}

	for _, ec := range contexts {
		result, records := g.solveEmployee(ec, holidayDates)

		if result.State != StateFailed {
			if err := g.Stores.Attendance.UpsertMonth(ctx, clientID, records); err != nil {
				result.State = StateFailed
				result.Reason = fmt.Sprintf("persist: %v", err)
			} else {
				report.RecordsWritten += len(records)
			}
		}

		switch result.State {
		case StateSolved:
			report.Succeeded++
		case StateFallbackSolved:
			report.Succeeded++
			report.FallbackUsed = true
		default:
			report.Failed++
			log.WithFields(logrus.Fields{
				"employee": ec.Employee.ID,
				"reason":   result.Reason,
			}).Warn("employee month not generated")
		}
		report.Results = append(report.Results, result)
	}

	report.FinishedAt = time.Now().UTC()
	log.WithFields(logrus.Fields{
		"run":       report.RunID,
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
		"records":   report.RecordsWritten,
		"fallback":  report.FallbackUsed,
	}).Info("attendance generation finished")

	g.saveRun(ctx, report)
	return report, nil
}

// solveEmployee walks the per-employee state machine to a terminal state.
func (g *Generator) solveEmployee(ec EmployeeContext, holidays []time.Time) (EmployeeResult, []AttendanceRecord) {
	result := EmployeeResult{
		EmployeeID:   ec.Employee.ID,
		EmployeeCode: ec.Employee.Code,
		Name:         ec.Employee.Name,
	}
	in := SolveInput{Context: ec, Holidays: holidays}

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts(); attempt++ {
		result.Attempts = attempt
		tag := fmt.Sprintf("attempt-%d", attempt)
		records, err := SolveMonth(in, ec.SeedFor(tag), tag)
		if err != nil {
			lastErr = err
			continue
		}
		if err := ValidateRecords(records, ec.Target.PayDays); err != nil {
			lastErr = err
			continue
		}
		result.State = StateSolved
		result.SeedTag = tag
		result.Quality = AssessQuality(records)
		return result, records
	}

	for pass := 1; pass <= g.fallbackRetries(); pass++ {
		tag := fmt.Sprintf("fallback-%d", pass)
		records, err := SolveFallback(in, ec.SeedFor(tag), tag)
		if err != nil {
			// Fallback statuses are deterministic; an infeasible layout
			// stays infeasible under reseeding.
			lastErr = err
			break
		}
		if err := ValidateRecords(records, ec.Target.PayDays); err != nil {
			lastErr = err
			continue
		}
		result.State = StateFallbackSolved
		result.SeedTag = tag
		result.Quality = AssessQuality(records)
		return result, records
	}

	result.State = StateFailed
	if lastErr != nil {
		result.Reason = lastErr.Error()
	} else {
		result.Reason = "exhausted solve attempts"
	}
	return result, nil
}

func (g *Generator) saveRun(ctx context.Context, report *GenerationReport) {
	if g.Stores.Runs == nil {
		return
	}
	run := GenerationRun{
		ID:             report.RunID,
		ClientID:       report.ClientID,
		Month:          report.Month,
		Year:           report.Year,
		TotalEmployees: report.TotalEmployees,
		Succeeded:      report.Succeeded,
		Failed:         report.Failed,
		FallbackUsed:   report.FallbackUsed,
		RecordsWritten: report.RecordsWritten,
		CreatedAt:      report.FinishedAt,
	}
	if err := g.Stores.Runs.SaveRun(ctx, run); err != nil {
		g.Log.WithError(err).Warn("failed to record generation run")
	}
}
