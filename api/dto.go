/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the engine's domain
  model from the external contract. DTOs are pure data carriers; validation
  happens in handlers.

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients

SEE ALSO:
  - handlers.go: converts between DTOs and rotation types
*/
package api

import (
	"time"

	"github.com/MizanFlowDEV/mizanflow/rotation"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

type GenerateScheduleRequest struct {
	ID              string `json:"id"`
	Anchor          string `json:"anchor"` // "2006-01-02"
	DurationMonths  int    `json:"duration_months"`
	VacationBalance int    `json:"vacation_balance"`
}

type InterruptionRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Type  string `json:"type"`

	// PreferredReturnWeekday: 0 = Sunday .. 6 = Saturday, omitted = none.
	PreferredReturnWeekday *int `json:"preferred_return_weekday,omitempty"`
}

type ApplySuggestionRequest struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Type     string `json:"type"`
	WorkDays int    `json:"work_days"`
	OffDays  int    `json:"off_days"`
}

type OverrideRequest struct {
	Date string `json:"date"`
	Type string `json:"type"`
	Note string `json:"note,omitempty"`
}

type HoursRequest struct {
	OvertimeHours float64 `json:"overtime_hours"`
	ADLHours      float64 `json:"adl_hours"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

type ScheduleDTO struct {
	ID              string           `json:"id"`
	Anchor          string           `json:"anchor"`
	State           string           `json:"state"`
	VacationBalance int              `json:"vacation_balance"`
	Interrupted     bool             `json:"interrupted"`
	Interruption    *InterruptionDTO `json:"interruption,omitempty"`
	Days            []DayDTO         `json:"days"`
}

type DayDTO struct {
	Date          string   `json:"date"`
	Type          string   `json:"type"`
	Holiday       bool     `json:"holiday"`
	HolidayKind   string   `json:"holiday_kind,omitempty"`
	Override      bool     `json:"override"`
	Note          string   `json:"note,omitempty"`
	OvertimeHours float64  `json:"overtime_hours"`
	ADLHours      float64  `json:"adl_hours"`
	InHitch       bool     `json:"in_hitch"`
	Markers       []string `json:"markers,omitempty"`
}

type InterruptionDTO struct {
	Start                  string `json:"start"`
	End                    string `json:"end"`
	Type                   string `json:"type"`
	PreferredReturnWeekday *int   `json:"preferred_return_weekday,omitempty"`
	VacationDaysUsed       int    `json:"vacation_days_used"`
	Realigned              bool   `json:"realigned"`
}

type InterruptionResultDTO struct {
	WorkedDays       int               `json:"worked_days"`
	EarnedDays       int               `json:"earned_days"`
	VacationDaysUsed int               `json:"vacation_days_used"`
	Alerts           []AlertDTO        `json:"alerts"`
	Suggestion       *SuggestResultDTO `json:"suggestion,omitempty"`
	AutoApplied      bool              `json:"auto_applied"`
}

type AlertDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Date    string `json:"date,omitempty"`
}

type SuggestionDTO struct {
	WorkDays         int        `json:"work_days"`
	OffDays          int        `json:"off_days"`
	ReturnDate       string     `json:"return_date"`
	BlockEnd         string     `json:"block_end"`
	Score            float64    `json:"score"`
	SalaryImpactDays int        `json:"salary_impact_days"`
	Alerts           []AlertDTO `json:"alerts"`
}

type SuggestResultDTO struct {
	Primary          *SuggestionDTO  `json:"primary,omitempty"`
	Alternatives     []SuggestionDTO `json:"alternatives"`
	Alerts           []AlertDTO      `json:"alerts"`
	RequiresApproval bool            `json:"requires_approval"`
}

type PaySummaryDTO struct {
	Year              int    `json:"year"`
	Month             int    `json:"month"`
	WorkedDays        int    `json:"worked_days"`
	HolidayWorkedDays int    `json:"holiday_worked_days"`
	BaseHours         string `json:"base_hours"`
	OvertimeHours     string `json:"overtime_hours"`
	ADLHours          string `json:"adl_hours"`
	BasePay           string `json:"base_pay"`
	OvertimePay       string `json:"overtime_pay"`
	ADLPay            string `json:"adl_pay"`
	HolidayPremiumPay string `json:"holiday_premium_pay"`
	Total             string `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
	NoOp  bool   `json:"no_op,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toScheduleDTO(s *rotation.Schedule) ScheduleDTO {
	dto := ScheduleDTO{
		ID:              s.ID,
		Anchor:          s.Anchor.String(),
		State:           string(s.State),
		VacationBalance: s.VacationBalance,
		Interrupted:     s.IsInterrupted(),
		Days:            make([]DayDTO, 0, len(s.Days)),
	}
	if in := s.Interruption; in != nil {
		idto := &InterruptionDTO{
			Start:            in.Start.String(),
			End:              in.End.String(),
			Type:             string(in.Type),
			VacationDaysUsed: in.VacationDaysUsed,
			Realigned:        in.Realigned,
		}
		if in.PreferredReturnWeekday != nil {
			wd := int(*in.PreferredReturnWeekday)
			idto.PreferredReturnWeekday = &wd
		}
		dto.Interruption = idto
	}
	for _, d := range s.Days {
		dto.Days = append(dto.Days, toDayDTO(d))
	}
	return dto
}

func toDayDTO(d rotation.ScheduleDay) DayDTO {
	return DayDTO{
		Date:          d.Date.String(),
		Type:          string(d.Type),
		Holiday:       d.Holiday,
		HolidayKind:   string(d.HolidayKind),
		Override:      d.Override,
		Note:          d.Note,
		OvertimeHours: d.OvertimeHours,
		ADLHours:      d.ADLHours,
		InHitch:       d.InHitch,
		Markers:       d.Markers,
	}
}

func toAlertDTOs(alerts []rotation.Alert) []AlertDTO {
	out := make([]AlertDTO, 0, len(alerts))
	for _, a := range alerts {
		dto := AlertDTO{Code: string(a.Code), Message: a.Message}
		if !a.Date.IsZero() {
			dto.Date = a.Date.String()
		}
		out = append(out, dto)
	}
	return out
}

func toSuggestionDTO(sg rotation.Suggestion) SuggestionDTO {
	return SuggestionDTO{
		WorkDays:         sg.WorkDays,
		OffDays:          sg.OffDays,
		ReturnDate:       sg.ReturnDate.String(),
		BlockEnd:         sg.BlockEnd.String(),
		Score:            sg.Score,
		SalaryImpactDays: sg.SalaryImpactDays,
		Alerts:           toAlertDTOs(sg.Alerts),
	}
}

func toSuggestResultDTO(res *rotation.SuggestResult) *SuggestResultDTO {
	if res == nil {
		return nil
	}
	dto := &SuggestResultDTO{
		Alternatives:     make([]SuggestionDTO, 0, len(res.Alternatives)),
		Alerts:           toAlertDTOs(res.Alerts),
		RequiresApproval: res.RequiresApproval,
	}
	if res.Primary != nil {
		p := toSuggestionDTO(*res.Primary)
		dto.Primary = &p
	}
	for _, alt := range res.Alternatives {
		dto.Alternatives = append(dto.Alternatives, toSuggestionDTO(alt))
	}
	return dto
}

func parseWeekday(v *int) *time.Weekday {
	if v == nil {
		return nil
	}
	wd := time.Weekday(((*v % 7) + 7) % 7)
	return &wd
}
