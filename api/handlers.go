/*
handlers.go - HTTP API handlers for the attendance generation engine

PURPOSE:
  Exposes the attendance engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Generation:
    POST   /api/clients/{clientID}/attendance/generate  Run generation for a month
    GET    /api/clients/{clientID}/attendance/summary   Monthly per-employee summary
    GET    /api/clients/{clientID}/attendance/{employeeID}  Day rows for one employee

  Configuration:
    GET    /api/clients/{clientID}/config       Get shift configuration
    PUT    /api/clients/{clientID}/config       Replace shift configuration

  Upstream data:
    GET    /api/clients/{clientID}/holidays     List holidays for a year
    POST   /api/clients/{clientID}/holidays     Create holiday
    DELETE /api/holidays/{id}                   Delete holiday
    GET    /api/clients/{clientID}/employees    List employees
    POST   /api/clients/{clientID}/employees    Create employee
    GET    /api/clients/{clientID}/targets      List payroll targets for a month
    PUT    /api/clients/{clientID}/targets      Replace payroll targets for a month

  Audit:
    GET    /api/runs?client_id=                 Generation-run history

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 422: Configuration errors (no shift enabled, missing config, no employees)
  - 500: Internal errors

  A generation run where some employees failed is NOT an error: the report
  comes back with 200 and the per-employee states inside it.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/shiftline/inout-engine/engine"
	"github.com/shiftline/inout-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Generator *engine.Generator
	Log       logrus.FieldLogger
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Store:     store,
		Generator: engine.NewGenerator(store.Stores(), log),
		Log:       log,
	}
}

// =============================================================================
// GENERATION HANDLERS
// =============================================================================

// Generate runs attendance generation for one client and month.
// POST /api/clients/{clientID}/attendance/generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	clientID := engine.ClientID(chi.URLParam(r, "clientID"))

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Month < 1 || req.Month > 12 {
		writeError(w, http.StatusBadRequest, "Month must be 1-12", nil)
		return
	}
	if req.Year < 2000 || req.Year > 2100 {
		writeError(w, http.StatusBadRequest, "Year out of range", nil)
		return
	}

	report, err := h.Generator.Generate(r.Context(), clientID, time.Month(req.Month), req.Year)
	if err != nil {
		if engine.IsConfigError(err) {
			writeError(w, http.StatusUnprocessableEntity, "Generation precondition failed", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Generation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toReportDTO(report))
}

// GetSummary returns the per-employee monthly aggregation.
// GET /api/clients/{clientID}/attendance/summary?month=&year=
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	clientID := engine.ClientID(chi.URLParam(r, "clientID"))
	month, year, ok := monthYearParams(w, r)
	if !ok {
		return
	}

	summaries, err := h.Store.MonthlySummary(r.Context(), clientID, month, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load summary", err)
		return
	}

	dtos := make([]SummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		dtos = append(dtos, toSummaryDTO(s))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployeeMonth returns one employee's generated calendar.
// GET /api/clients/{clientID}/attendance/{employeeID}?month=&year=
func (h *Handler) GetEmployeeMonth(w http.ResponseWriter, r *http.Request) {
	clientID := engine.ClientID(chi.URLParam(r, "clientID"))
	employeeID := engine.EmployeeID(chi.URLParam(r, "employeeID"))
	month, year, ok := monthYearParams(w, r)
	if !ok {
		return
	}

	records, err := h.Store.ListMonth(r.Context(), clientID, employeeID, month, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load attendance", err)
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusNotFound, "No attendance generated for this employee and month", nil)
		return
	}

	dtos := make([]RecordDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toRecordDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// CONFIGURATION HANDLERS
// =============================================================================

// GetConfig returns the client's shift configuration.
// GET /api/clients/{clientID}/config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	clientID := engine.ClientID(chi.URLParam(r, "clientID"))

	cfg, err := h.Store.GetConfig(r.Context(), clientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load config", err)
		return
	}
	if cfg == nil {
		writeError(w, http.StatusNotFound, "No configuration for this client", nil)
		return
	}
	writeJSON(w, http.StatusOK, toConfigDTO(cfg))
}

// PutConfig replaces the client's shift configuration.
// PUT /api/clients/{clientID}/config
func (h *Handler) PutConfig(w http.ResponseWriter, r *http.Request) {
	clientID := engine.ClientID(chi.URLParam(r, "clientID"))

	var dto ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg, err := fromConfigDTO(clientID, dto)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift time", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid configuration", err)
		return
	}

	if err := h.Store.SaveConfig(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save config", err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigDTO(&cfg))
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the client's holidays for a year.
// GET /api/clients/{clientID}/holidays?year=
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	clientID := engine.ClientID(chi.URLParam(r, "clientID"))
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing year parameter", err)
		return
	}

	holidays, err := h.Store.ListHolidays(r.Context(), clientID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, HolidayDTO{
			ID:   hol.ID,
			Date: hol.Date.Format("2006-01-02"),
			Name: hol.Name,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday adds a holiday to the client's calendar.
// POST /api/clients/{clientID}/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	clientID := engine.ClientID(chi.URLParam(r, "clientID"))

	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Holiday name is required", nil)
		return
	}

	holiday := engine.Holiday{
		ID:       uuid.NewString(),
		ClientID: clientID,
		Date:     date,
		Name:     req.Name,
	}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, HolidayDTO{
		ID:   holiday.ID,
		Date: holiday.Date.Format("2006-01-02"),
		Name: holiday.Name,
	})
}

// DeleteHoliday removes a holiday.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns the client's employee master.
// GET /api/clients/{clientID}/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	clientID := engine.ClientID(chi.URLParam(r, "clientID"))

	employees, err := h.Store.ListEmployees(r.Context(), clientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, emp := range employees {
		dtos = append(dtos, EmployeeDTO{
			ID:     string(emp.ID),
			Code:   emp.Code,
			Name:   emp.Name,
			Gender: emp.Gender,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee adds an employee master record.
// POST /api/clients/{clientID}/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	clientID := engine.ClientID(chi.URLParam(r, "clientID"))

	var dto EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if dto.Code == "" || dto.Name == "" {
		writeError(w, http.StatusBadRequest, "Employee code and name are required", nil)
		return
	}
	if dto.ID == "" {
		dto.ID = uuid.NewString()
	}

	emp := engine.Employee{
		ID:       engine.EmployeeID(dto.ID),
		ClientID: clientID,
		Code:     dto.Code,
		Name:     dto.Name,
		Gender:   dto.Gender,
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// =============================================================================
// PAYROLL TARGET HANDLERS
// =============================================================================

// ListTargets returns the payroll targets for a month.
// GET /api/clients/{clientID}/targets?month=&year=
func (h *Handler) ListTargets(w http.ResponseWriter, r *http.Request) {
	clientID := engine.ClientID(chi.URLParam(r, "clientID"))
	month, year, ok := monthYearParams(w, r)
	if !ok {
		return
	}

	targets, err := h.Store.ListTargets(r.Context(), clientID, month, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list targets", err)
		return
	}

	dtos := make([]TargetDTO, 0, len(targets))
	for _, t := range targets {
		payDays, _ := t.PayDays.Float64()
		targetOT, _ := t.TargetOTHours.Float64()
		dtos = append(dtos, TargetDTO{
			EmployeeID:   string(t.EmployeeID),
			EmployeeCode: t.EmployeeCode,
			Name:         t.Name,
			PayDays:      payDays,
			TargetOT:     targetOT,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// PutTargets replaces the payroll targets for a month.
// PUT /api/clients/{clientID}/targets?month=&year=
func (h *Handler) PutTargets(w http.ResponseWriter, r *http.Request) {
	clientID := engine.ClientID(chi.URLParam(r, "clientID"))
	month, year, ok := monthYearParams(w, r)
	if !ok {
		return
	}

	var dtos []TargetDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	targets := make([]engine.PayrollTarget, 0, len(dtos))
	for _, dto := range dtos {
		if dto.EmployeeCode == "" {
			writeError(w, http.StatusBadRequest, "Every target needs an employee_code", nil)
			return
		}
		if dto.PayDays < 0 {
			writeError(w, http.StatusBadRequest, "pay_days must be non-negative", nil)
			return
		}
		targets = append(targets, engine.PayrollTarget{
			EmployeeID:    engine.EmployeeID(dto.EmployeeID),
			EmployeeCode:  dto.EmployeeCode,
			Name:          dto.Name,
			PayDays:       decimal.NewFromFloat(dto.PayDays),
			TargetOTHours: decimal.NewFromFloat(dto.TargetOT),
		})
	}

	if err := h.Store.ReplaceTargets(r.Context(), clientID, month, year, targets); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save targets", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": len(targets)})
}

// =============================================================================
// RUN HISTORY HANDLERS
// =============================================================================

// ListRuns returns generation-run history for a client.
// GET /api/runs?client_id=
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	clientID := engine.ClientID(r.URL.Query().Get("client_id"))
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "client_id parameter is required", nil)
		return
	}

	runs, err := h.Store.ListRuns(r.Context(), clientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	dtos := make([]RunDTO, 0, len(runs))
	for _, run := range runs {
		dtos = append(dtos, RunDTO{
			ID:             run.ID,
			Month:          int(run.Month),
			Year:           run.Year,
			TotalEmployees: run.TotalEmployees,
			Succeeded:      run.Succeeded,
			Failed:         run.Failed,
			FallbackUsed:   run.FallbackUsed,
			RecordsWritten: run.RecordsWritten,
			CreatedAt:      run.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

// monthYearParams parses the month/year query params, writing a 400 on failure.
func monthYearParams(w http.ResponseWriter, r *http.Request) (time.Month, int, bool) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid or missing month parameter", err)
		return 0, 0, false
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing year parameter", err)
		return 0, 0, false
	}
	return time.Month(month), year, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
