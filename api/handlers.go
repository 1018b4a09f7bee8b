/*
handlers.go - HTTP handlers for the rotation engine

PURPOSE:
  Thin transport over the schedule engine: decode, validate dates, load the
  schedule snapshot, run exactly one engine operation, save, respond. The
  engine's error taxonomy maps onto HTTP directly:

    precondition violation  -> 400
    unknown schedule        -> 404
    no-op with reason       -> 409 (body carries the reason and no_op flag)
    soft alerts             -> 200, surfaced in the response payload

SEE ALSO:
  - server.go: route wiring
  - rotation/errors.go: the taxonomy mapped here
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/MizanFlowDEV/mizanflow/pay"
	"github.com/MizanFlowDEV/mizanflow/rotation"
)

type Handler struct {
	Store  rotation.SnapshotStore
	Engine *rotation.Engine
	Log    *logrus.Logger

	// Rates feeds the pay summary endpoint.
	Rates pay.Rates
}

func NewHandler(store rotation.SnapshotStore, engine *rotation.Engine, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{Store: store, Engine: engine, Log: log, Rates: pay.DefaultRates(25)}
}

// =============================================================================
// SCHEDULE LIFECYCLE
// =============================================================================

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req GenerateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid JSON body")
		return
	}
	anchor, err := rotation.ParseDate(req.Anchor)
	if err != nil {
		h.badRequest(w, "invalid anchor date, want YYYY-MM-DD")
		return
	}
	if req.ID == "" || req.DurationMonths <= 0 {
		h.badRequest(w, "id and positive duration_months are required")
		return
	}

	s := h.Engine.GenerateSchedule(req.ID, anchor, req.DurationMonths)
	s.VacationBalance = req.VacationBalance
	if err := h.Store.Save(r.Context(), s); err != nil {
		h.internalError(w, err)
		return
	}
	h.Log.WithFields(logrus.Fields{"schedule": s.ID, "anchor": anchor}).Info("schedule created")
	h.writeJSON(w, http.StatusCreated, toScheduleDTO(s))
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, toScheduleDTO(s))
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Store.List(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"schedules": ids})
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}
	date, err := rotation.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.badRequest(w, "invalid date, want YYYY-MM-DD")
		return
	}
	day, err := h.Engine.DayInfo(s, date)
	if err != nil {
		h.engineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDayDTO(day))
}

// =============================================================================
// INTERRUPTIONS
// =============================================================================

func (h *Handler) HandleInterruption(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}
	var req InterruptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid JSON body")
		return
	}
	start, end, err := parseRange(req.Start, req.End)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	res, err := h.Engine.HandleInterruption(s, start, end, rotation.InterruptionType(req.Type), parseWeekday(req.PreferredReturnWeekday))
	if err != nil {
		h.engineError(w, err)
		return
	}
	if err := h.Store.Save(r.Context(), s); err != nil {
		h.internalError(w, err)
		return
	}

	h.Log.WithFields(logrus.Fields{
		"schedule": s.ID, "type": req.Type,
		"vacation_used": res.VacationDaysUsed, "auto_applied": res.AutoApplied,
	}).Info("interruption handled")

	h.writeJSON(w, http.StatusOK, InterruptionResultDTO{
		WorkedDays:       res.WorkedDays,
		EarnedDays:       res.EarnedDays,
		VacationDaysUsed: res.VacationDaysUsed,
		Alerts:           toAlertDTOs(res.Alerts),
		Suggestion:       toSuggestResultDTO(res.Suggestion),
		AutoApplied:      res.AutoApplied,
	})
}

func (h *Handler) RemoveInterruption(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}
	if err := h.Engine.RemoveInterruption(s); err != nil {
		h.engineError(w, err)
		return
	}
	if err := h.Store.Save(r.Context(), s); err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toScheduleDTO(s))
}

// =============================================================================
// SUGGEST MODE
// =============================================================================

func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}
	var req InterruptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid JSON body")
		return
	}
	start, end, err := parseRange(req.Start, req.End)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	res, err := h.Engine.Suggest(s, start, end, rotation.InterruptionType(req.Type), parseWeekday(req.PreferredReturnWeekday))
	if err != nil {
		h.engineError(w, err)
		return
	}
	// Suggest never mutates; nothing to save.
	h.writeJSON(w, http.StatusOK, toSuggestResultDTO(res))
}

func (h *Handler) ApplySuggestion(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}
	var req ApplySuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid JSON body")
		return
	}
	start, end, err := parseRange(req.Start, req.End)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	if req.WorkDays <= 0 || req.OffDays <= 0 {
		h.badRequest(w, "work_days and off_days must be positive")
		return
	}

	sug := &rotation.Suggestion{
		WorkDays:   req.WorkDays,
		OffDays:    req.OffDays,
		ReturnDate: end.AddDays(1),
		BlockEnd:   end.AddDays(req.WorkDays + req.OffDays),
	}
	if err := h.Engine.ApplySuggestion(s, sug, start, end, rotation.InterruptionType(req.Type)); err != nil {
		h.engineError(w, err)
		return
	}
	if err := h.Store.Save(r.Context(), s); err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toScheduleDTO(s))
}

// =============================================================================
// OVERRIDES AND HOURS
// =============================================================================

func (h *Handler) ApplyOverride(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}
	var req OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid JSON body")
		return
	}
	date, err := rotation.ParseDate(req.Date)
	if err != nil {
		h.badRequest(w, "invalid date, want YYYY-MM-DD")
		return
	}
	if err := h.Engine.ApplyManualOverride(s, date, rotation.DayType(req.Type), req.Note); err != nil {
		h.engineError(w, err)
		return
	}
	if err := h.Store.Save(r.Context(), s); err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toScheduleDTO(s))
}

func (h *Handler) ResetOverrides(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}
	h.Engine.ResetManualAdjustments(s)
	if err := h.Store.Save(r.Context(), s); err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toScheduleDTO(s))
}

func (h *Handler) SetHours(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}
	date, err := rotation.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.badRequest(w, "invalid date, want YYYY-MM-DD")
		return
	}
	var req HoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid JSON body")
		return
	}
	if err := h.Engine.SetDayHours(s, date, req.OvertimeHours, req.ADLHours); err != nil {
		h.engineError(w, err)
		return
	}
	if err := h.Store.Save(r.Context(), s); err != nil {
		h.internalError(w, err)
		return
	}
	day, _ := h.Engine.DayInfo(s, date)
	h.writeJSON(w, http.StatusOK, toDayDTO(day))
}

// =============================================================================
// PAY
// =============================================================================

func (h *Handler) PaySummary(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSchedule(w, r)
	if !ok {
		return
	}
	year, err1 := strconv.Atoi(chi.URLParam(r, "year"))
	month, err2 := strconv.Atoi(chi.URLParam(r, "month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		h.badRequest(w, "invalid year/month")
		return
	}

	sum := pay.Monthly(s, year, time.Month(month), h.Rates)
	h.writeJSON(w, http.StatusOK, PaySummaryDTO{
		Year:              sum.Year,
		Month:             int(sum.Month),
		WorkedDays:        sum.WorkedDays,
		HolidayWorkedDays: sum.HolidayWorkedDays,
		BaseHours:         sum.BaseHours.String(),
		OvertimeHours:     sum.OvertimeHours.String(),
		ADLHours:          sum.ADLHours.String(),
		BasePay:           sum.BasePay.String(),
		OvertimePay:       sum.OvertimePay.String(),
		ADLPay:            sum.ADLPay.String(),
		HolidayPremiumPay: sum.HolidayPremiumPay.String(),
		Total:             sum.Total.String(),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) loadSchedule(w http.ResponseWriter, r *http.Request) (*rotation.Schedule, bool) {
	id := chi.URLParam(r, "id")
	s, err := h.Store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, rotation.ErrScheduleNotFound) {
			h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "schedule not found"})
		} else {
			h.internalError(w, err)
		}
		return nil, false
	}
	return s, true
}

func parseRange(startStr, endStr string) (rotation.Date, rotation.Date, error) {
	start, err := rotation.ParseDate(startStr)
	if err != nil {
		return rotation.Date{}, rotation.Date{}, errors.New("invalid start date, want YYYY-MM-DD")
	}
	end, err := rotation.ParseDate(endStr)
	if err != nil {
		return rotation.Date{}, rotation.Date{}, errors.New("invalid end date, want YYYY-MM-DD")
	}
	return start, end, nil
}

func (h *Handler) engineError(w http.ResponseWriter, err error) {
	switch {
	case rotation.IsPrecondition(err):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case rotation.IsNoOp(err):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), NoOp: true})
	default:
		h.internalError(w, err)
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.Log.WithError(err).Error("internal error")
	h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.WithError(err).Error("failed to encode response")
	}
}
