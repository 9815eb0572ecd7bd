/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the internal domain
  model from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.
*/
package api

import (
	"time"

	"github.com/shiftline/inout-engine/engine"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// GenerateRequest triggers attendance generation for one month.
type GenerateRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// ReportDTO is the generation report returned to the caller.
type ReportDTO struct {
	RunID          string              `json:"run_id"`
	ClientID       string              `json:"client_id"`
	Month          int                 `json:"month"`
	Year           int                 `json:"year"`
	TotalEmployees int                 `json:"total_employees"`
	Succeeded      int                 `json:"succeeded"`
	Failed         int                 `json:"failed"`
	FallbackUsed   bool                `json:"fallback_used"`
	RecordsWritten int                 `json:"records_written"`
	Warnings       []string            `json:"warnings,omitempty"`
	Results        []EmployeeResultDTO `json:"results"`
}

// EmployeeResultDTO is one employee's outcome within a report.
type EmployeeResultDTO struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	State        string `json:"state"`
	Attempts     int    `json:"attempts"`
	SeedTag      string `json:"seed_tag,omitempty"`
	Reason       string `json:"reason,omitempty"`

	LongestAbsenceRun int    `json:"longest_absence_run"`
	PresenceByThird   [3]int `json:"presence_by_third"`
}

// RecordDTO is one generated attendance day.
type RecordDTO struct {
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	InTime       *string `json:"in_time"`
	OutTime      *string `json:"out_time"`
	BreakMinutes int     `json:"break_minutes"`
	WorkHours    float64 `json:"work_hours"`
	OTHours      float64 `json:"ot_hours"`
	SeedTag      string  `json:"seed_tag"`
}

// SummaryDTO is the per-employee monthly aggregation.
type SummaryDTO struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	Name         string  `json:"name"`
	Present      int     `json:"present"`
	Absent       int     `json:"absent"`
	HalfDays     int     `json:"half_days"`
	WeeklyOffs   int     `json:"weekly_offs"`
	PaidLeaves   int     `json:"paid_leaves"`
	TotalCredits float64 `json:"total_credits"`
	TotalOTHours float64 `json:"total_ot_hours"`
}

// ShiftDTO is a configured shift window.
type ShiftDTO struct {
	Code  string `json:"code"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// RuleDTO is a defaulting rule entry.
type RuleDTO struct {
	MatchGender    string `json:"match_gender"`
	ForceShift     string `json:"force_shift,omitempty"`
	ForceWeeklyOff *int   `json:"force_weekly_off,omitempty"`
}

// ConfigDTO is the per-client attendance configuration.
type ConfigDTO struct {
	ClientID      string     `json:"client_id"`
	EnabledShifts []ShiftDTO `json:"enabled_shifts"`
	WeeklyOffMode string     `json:"weekly_off_mode"`
	WeeklyOffDay  int        `json:"weekly_off_day"`
	Rules         []RuleDTO  `json:"defaulting_rules,omitempty"`
}

// HolidayDTO represents a holiday.
type HolidayDTO struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

// CreateHolidayRequest creates a holiday.
type CreateHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// EmployeeDTO represents an employee master record.
type EmployeeDTO struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Gender string `json:"gender,omitempty"`
}

// TargetDTO is one payroll target row.
type TargetDTO struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	Name         string  `json:"name"`
	PayDays      float64 `json:"pay_days"`
	TargetOT     float64 `json:"target_ot_hours"`
}

// RunDTO is one generation-run audit row.
type RunDTO struct {
	ID             string `json:"id"`
	Month          int    `json:"month"`
	Year           int    `json:"year"`
	TotalEmployees int    `json:"total_employees"`
	Succeeded      int    `json:"succeeded"`
	Failed         int    `json:"failed"`
	FallbackUsed   bool   `json:"fallback_used"`
	RecordsWritten int    `json:"records_written"`
	CreatedAt      string `json:"created_at"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toReportDTO(report *engine.GenerationReport) ReportDTO {
	dto := ReportDTO{
		RunID:          report.RunID,
		ClientID:       string(report.ClientID),
		Month:          int(report.Month),
		Year:           report.Year,
		TotalEmployees: report.TotalEmployees,
		Succeeded:      report.Succeeded,
		Failed:         report.Failed,
		FallbackUsed:   report.FallbackUsed,
		RecordsWritten: report.RecordsWritten,
		Warnings:       report.Warnings,
		Results:        make([]EmployeeResultDTO, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		dto.Results = append(dto.Results, EmployeeResultDTO{
			EmployeeID:        string(res.EmployeeID),
			EmployeeCode:      res.EmployeeCode,
			Name:              res.Name,
			State:             string(res.State),
			Attempts:          res.Attempts,
			SeedTag:           res.SeedTag,
			Reason:            res.Reason,
			LongestAbsenceRun: res.Quality.LongestAbsenceRun,
			PresenceByThird:   res.Quality.PresenceByThird,
		})
	}
	return dto
}

func toRecordDTO(rec engine.AttendanceRecord) RecordDTO {
	work, _ := rec.WorkHours.Float64()
	ot, _ := rec.OTHours.Float64()
	dto := RecordDTO{
		Date:         rec.Date.Format("2006-01-02"),
		Status:       string(rec.Status),
		BreakMinutes: rec.BreakMinutes,
		WorkHours:    work,
		OTHours:      ot,
		SeedTag:      rec.SeedTag,
	}
	if rec.InTime != nil {
		s := rec.InTime.String()
		dto.InTime = &s
	}
	if rec.OutTime != nil {
		s := rec.OutTime.String()
		dto.OutTime = &s
	}
	return dto
}

func toSummaryDTO(s engine.MonthlySummary) SummaryDTO {
	credits, _ := s.TotalCredits.Float64()
	otHours, _ := s.TotalOTHours.Float64()
	return SummaryDTO{
		EmployeeID:   string(s.EmployeeID),
		EmployeeCode: s.EmployeeCode,
		Name:         s.Name,
		Present:      s.Present,
		Absent:       s.Absent,
		HalfDays:     s.HalfDays,
		WeeklyOffs:   s.WeeklyOffs,
		PaidLeaves:   s.PaidLeaves,
		TotalCredits: credits,
		TotalOTHours: otHours,
	}
}

func toConfigDTO(cfg *engine.AttendanceConfig) ConfigDTO {
	dto := ConfigDTO{
		ClientID:      string(cfg.ClientID),
		WeeklyOffMode: string(cfg.WeeklyOff.Mode),
		WeeklyOffDay:  int(cfg.WeeklyOff.FixedDay),
	}
	for _, sw := range cfg.EnabledShifts {
		dto.EnabledShifts = append(dto.EnabledShifts, ShiftDTO{
			Code:  string(sw.Code),
			Start: sw.Start.String(),
			End:   sw.End.String(),
		})
	}
	for _, rule := range cfg.DefaultingRules {
		rd := RuleDTO{MatchGender: rule.MatchGender, ForceShift: string(rule.ForceShift)}
		if rule.ForceWeeklyOff != nil {
			d := int(*rule.ForceWeeklyOff)
			rd.ForceWeeklyOff = &d
		}
		dto.Rules = append(dto.Rules, rd)
	}
	return dto
}

func fromConfigDTO(clientID engine.ClientID, dto ConfigDTO) (engine.AttendanceConfig, error) {
	cfg := engine.AttendanceConfig{
		ClientID: clientID,
		WeeklyOff: engine.WeeklyOffPolicy{
			Mode:     engine.WeeklyOffMode(dto.WeeklyOffMode),
			FixedDay: time.Weekday(dto.WeeklyOffDay),
		},
	}
	for _, sd := range dto.EnabledShifts {
		start, err := engine.ParseClockTime(sd.Start)
		if err != nil {
			return cfg, err
		}
		end, err := engine.ParseClockTime(sd.End)
		if err != nil {
			return cfg, err
		}
		cfg.EnabledShifts = append(cfg.EnabledShifts, engine.ShiftWindow{
			Code:  engine.ShiftCode(sd.Code),
			Start: start,
			End:   end,
		})
	}
	for _, rd := range dto.Rules {
		rule := engine.DefaultingRule{
			MatchGender: rd.MatchGender,
			ForceShift:  engine.ShiftCode(rd.ForceShift),
		}
		if rd.ForceWeeklyOff != nil {
			d := time.Weekday(*rd.ForceWeeklyOff)
			rule.ForceWeeklyOff = &d
		}
		cfg.DefaultingRules = append(cfg.DefaultingRules, rule)
	}
	return cfg, nil
}
