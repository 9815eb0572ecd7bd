/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Generation endpoint (success, config errors, partial failure)
- Configuration round trip
- Read-side endpoints (summary, employee month)
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/shiftline/inout-engine/engine"
	"github.com/shiftline/inout-engine/store/sqlite"
)

func newTestServer(t *testing.T) (*sqlite.Store, http.Handler) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	return store, NewRouter(NewHandler(store, log))
}

// seedClient loads a valid config, one holiday, and two employees with
// feasible June 2025 targets.
func seedClient(t *testing.T, store *sqlite.Store) {
	t.Helper()
	ctx := context.Background()

	cfg := engine.AttendanceConfig{
		ClientID: "acme",
		EnabledShifts: []engine.ShiftWindow{
			{Code: engine.ShiftGeneral, Start: engine.NewClockTime(9, 30), End: engine.NewClockTime(18, 30)},
		},
		WeeklyOff: engine.WeeklyOffPolicy{Mode: engine.WeeklyOffFixed, FixedDay: time.Sunday},
	}
	if err := store.SaveConfig(ctx, cfg); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if err := store.SaveHoliday(ctx, engine.Holiday{
		ID: "h1", ClientID: "acme", Date: engine.Date(2025, time.June, 6), Name: "Eid",
	}); err != nil {
		t.Fatalf("Failed to save holiday: %v", err)
	}

	for _, emp := range []engine.Employee{
		{ID: "emp-1", ClientID: "acme", Code: "E001", Name: "Asha Verma", Gender: "female"},
		{ID: "emp-2", ClientID: "acme", Code: "E002", Name: "Binod Rao", Gender: "male"},
	} {
		if err := store.SaveEmployee(ctx, emp); err != nil {
			t.Fatalf("Failed to save employee: %v", err)
		}
	}
	targets := []engine.PayrollTarget{
		{EmployeeID: "emp-1", EmployeeCode: "E001", Name: "Asha Verma", PayDays: decimal.NewFromFloat(20.5), TargetOTHours: decimal.Zero},
		{EmployeeID: "emp-2", EmployeeCode: "E002", Name: "Binod Rao", PayDays: decimal.NewFromInt(22), TargetOTHours: decimal.Zero},
	}
	if err := store.ReplaceTargets(ctx, "acme", time.June, 2025, targets); err != nil {
		t.Fatalf("Failed to save targets: %v", err)
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGenerate_Success(t *testing.T) {
	// GIVEN: A fully seeded client
	// WHEN: POSTing a generation request
	// THEN: 200 with a report showing both employees solved

	store, router := newTestServer(t)
	seedClient(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/clients/acme/attendance/generate",
		GenerateRequest{Month: 6, Year: 2025})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report ReportDTO
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if report.Succeeded != 2 || report.Failed != 0 {
		t.Errorf("expected 2/0, got %d/%d", report.Succeeded, report.Failed)
	}
	if report.RecordsWritten != 60 {
		t.Errorf("expected 60 records written, got %d", report.RecordsWritten)
	}
	if report.RunID == "" {
		t.Error("expected a run id")
	}
}

func TestGenerate_MissingConfigIs422(t *testing.T) {
	// GIVEN: A client with no configuration
	// WHEN: POSTing a generation request
	// THEN: 422

	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/clients/ghost/attendance/generate",
		GenerateRequest{Month: 6, Year: 2025})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGenerate_BadMonthIs400(t *testing.T) {
	store, router := newTestServer(t)
	seedClient(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/clients/acme/attendance/generate",
		GenerateRequest{Month: 13, Year: 2025})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGenerate_PartialFailureIs200(t *testing.T) {
	// GIVEN: One feasible and one impossible target
	// WHEN: Generating
	// THEN: Still 200; the report carries the failure

	store, router := newTestServer(t)
	seedClient(t, store)

	targets := []engine.PayrollTarget{
		{EmployeeID: "emp-1", EmployeeCode: "E001", Name: "Asha Verma", PayDays: decimal.NewFromInt(20), TargetOTHours: decimal.Zero},
		{EmployeeID: "emp-2", EmployeeCode: "E002", Name: "Binod Rao", PayDays: decimal.NewFromInt(40), TargetOTHours: decimal.Zero},
	}
	if err := store.ReplaceTargets(context.Background(), "acme", time.June, 2025, targets); err != nil {
		t.Fatalf("Failed to save targets: %v", err)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/clients/acme/attendance/generate",
		GenerateRequest{Month: 6, Year: 2025})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for partial failure, got %d: %s", rec.Code, rec.Body.String())
	}

	var report ReportDTO
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if report.Succeeded != 1 || report.Failed != 1 {
		t.Errorf("expected 1/1, got %d/%d", report.Succeeded, report.Failed)
	}
}

func TestSummaryAndEmployeeMonth(t *testing.T) {
	// GIVEN: A generated month
	// WHEN: Fetching the summary and one employee's calendar
	// THEN: Aggregates and day rows come back consistent

	store, router := newTestServer(t)
	seedClient(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/clients/acme/attendance/generate",
		GenerateRequest{Month: 6, Year: 2025})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/clients/acme/attendance/summary?month=6&year=2025", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: %d: %s", rec.Code, rec.Body.String())
	}
	var summaries []SummaryDTO
	if err := json.NewDecoder(rec.Body).Decode(&summaries); err != nil {
		t.Fatalf("Failed to decode summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.EmployeeCode == "E001" && s.TotalCredits != 20.5 {
			t.Errorf("E001: expected credits 20.5, got %v", s.TotalCredits)
		}
	}

	rec = doJSON(t, router, http.MethodGet, "/api/clients/acme/attendance/emp-1?month=6&year=2025", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("employee month: %d: %s", rec.Code, rec.Body.String())
	}
	var days []RecordDTO
	if err := json.NewDecoder(rec.Body).Decode(&days); err != nil {
		t.Fatalf("Failed to decode days: %v", err)
	}
	if len(days) != 30 {
		t.Fatalf("expected 30 day rows, got %d", len(days))
	}
	for _, d := range days {
		working := d.Status == "P" || d.Status == "H"
		if working && (d.InTime == nil || d.OutTime == nil) {
			t.Errorf("%s: working day missing clock times", d.Date)
		}
		if !working && d.InTime != nil {
			t.Errorf("%s: off day carries clock times", d.Date)
		}
	}
}

func TestEmployeeMonth_NotGeneratedIs404(t *testing.T) {
	store, router := newTestServer(t)
	seedClient(t, store)

	rec := doJSON(t, router, http.MethodGet, "/api/clients/acme/attendance/emp-1?month=6&year=2025", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestConfig_PutGetRoundTrip(t *testing.T) {
	// GIVEN: A config payload
	// WHEN: PUT then GET
	// THEN: The stored config matches

	_, router := newTestServer(t)

	payload := ConfigDTO{
		EnabledShifts: []ShiftDTO{
			{Code: "GEN", Start: "09:30", End: "18:30"},
			{Code: "B", Start: "16:00", End: "01:00"},
		},
		WeeklyOffMode: "fixed",
		WeeklyOffDay:  0,
	}
	rec := doJSON(t, router, http.MethodPut, "/api/clients/acme/config", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("put config: %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/clients/acme/config", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get config: %d", rec.Code)
	}
	var got ConfigDTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode config: %v", err)
	}
	if len(got.EnabledShifts) != 2 || got.EnabledShifts[1].Start != "16:00" {
		t.Errorf("unexpected shifts: %+v", got.EnabledShifts)
	}
	if got.WeeklyOffMode != "fixed" {
		t.Errorf("expected fixed mode, got %q", got.WeeklyOffMode)
	}
}

func TestConfig_NoShiftsRejected(t *testing.T) {
	_, router := newTestServer(t)

	payload := ConfigDTO{WeeklyOffMode: "fixed"}
	rec := doJSON(t, router, http.MethodPut, "/api/clients/acme/config", payload)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for zero shifts, got %d", rec.Code)
	}
}

func TestConfig_MissingIs404(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/clients/nobody/config", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHolidays_CreateListDelete(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/clients/acme/holidays",
		CreateHolidayRequest{Date: "2025-06-06", Name: "Eid"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create holiday: %d: %s", rec.Code, rec.Body.String())
	}
	var created HolidayDTO
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode holiday: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated holiday id")
	}

	rec = doJSON(t, router, http.MethodGet, "/api/clients/acme/holidays?year=2025", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list holidays: %d", rec.Code)
	}
	var holidays []HolidayDTO
	if err := json.NewDecoder(rec.Body).Decode(&holidays); err != nil {
		t.Fatalf("Failed to decode holidays: %v", err)
	}
	if len(holidays) != 1 {
		t.Fatalf("expected 1 holiday, got %d", len(holidays))
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/holidays/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete holiday: %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/clients/acme/holidays?year=2025", nil)
	var after []HolidayDTO
	json.NewDecoder(rec.Body).Decode(&after)
	if len(after) != 0 {
		t.Errorf("expected no holidays after delete, got %d", len(after))
	}
}

func TestHolidays_BadDateIs400(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/clients/acme/holidays",
		CreateHolidayRequest{Date: "06/06/2025", Name: "Eid"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRuns_ListAfterGeneration(t *testing.T) {
	store, router := newTestServer(t)
	seedClient(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/clients/acme/attendance/generate",
		GenerateRequest{Month: 6, Year: 2025})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/runs?client_id=acme", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list runs: %d: %s", rec.Code, rec.Body.String())
	}
	var runs []RunDTO
	if err := json.NewDecoder(rec.Body).Decode(&runs); err != nil {
		t.Fatalf("Failed to decode runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Succeeded != 2 || runs[0].RecordsWritten != 60 {
		t.Errorf("unexpected run totals: %+v", runs[0])
	}
}

func TestRuns_MissingClientIs400(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/runs", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
