/*
handlers_test.go - HTTP contract tests

PURPOSE:
  End-to-end tests through the real router against the in-memory snapshot
  store: status codes, error taxonomy mapping, and the shape of the main
  flows (create, interrupt, remove, override, hours, pay).
*/
package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MizanFlowDEV/mizanflow/api"
	"github.com/MizanFlowDEV/mizanflow/rotation"
	"github.com/MizanFlowDEV/mizanflow/rotation/store"
)

func newTestRouter() http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	engine := rotation.NewEngine(rotation.NoHolidays{})
	h := api.NewHandler(store.NewMemory(), engine, log)
	return api.NewRouter(h)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// createSchedule provisions a 3-month schedule anchored Mon 2025-01-06.
func createSchedule(t *testing.T, router http.Handler, id string) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/schedules", api.GenerateScheduleRequest{
		ID:              id,
		Anchor:          "2025-01-06",
		DurationMonths:  3,
		VacationBalance: 20,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestCreateAndGetSchedule(t *testing.T) {
	router := newTestRouter()
	createSchedule(t, router, "worker-1")

	rec := doJSON(t, router, http.MethodGet, "/api/schedules/worker-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	s := decode[api.ScheduleDTO](t, rec)
	assert.Equal(t, "worker-1", s.ID)
	assert.Equal(t, "2025-01-06", s.Anchor)
	assert.Equal(t, "normal", s.State)
	assert.Equal(t, 20, s.VacationBalance)
	require.NotEmpty(t, s.Days)
	assert.Equal(t, "workday", s.Days[0].Type)
	assert.Equal(t, "earned_off", s.Days[14].Type)
}

func TestCreateSchedule_Validation(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/schedules", api.GenerateScheduleRequest{
		ID: "worker-1", Anchor: "06/01/2025", DurationMonths: 3,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/schedules", api.GenerateScheduleRequest{
		Anchor: "2025-01-06", DurationMonths: 3,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSchedule_NotFound(t *testing.T) {
	router := newTestRouter()
	rec := doJSON(t, router, http.MethodGet, "/api/schedules/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSchedule(t *testing.T) {
	router := newTestRouter()
	createSchedule(t, router, "worker-1")

	rec := doJSON(t, router, http.MethodDelete, "/api/schedules/worker-1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/schedules/worker-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSchedules(t *testing.T) {
	router := newTestRouter()
	createSchedule(t, router, "b")
	createSchedule(t, router, "a")

	rec := doJSON(t, router, http.MethodGet, "/api/schedules", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string][]string](t, rec)
	assert.Equal(t, []string{"a", "b"}, body["schedules"])
}

// =============================================================================
// INTERRUPTIONS
// =============================================================================

func TestInterruptionFlow(t *testing.T) {
	router := newTestRouter()
	createSchedule(t, router, "worker-1")

	// 7-day vacation after 3 worked days: 4 vacation days consumed.
	rec := doJSON(t, router, http.MethodPost, "/api/schedules/worker-1/interruption", api.InterruptionRequest{
		Start: "2025-01-09", End: "2025-01-15", Type: "vacation",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[api.InterruptionResultDTO](t, rec)
	assert.Equal(t, 3, res.WorkedDays)
	assert.Equal(t, 3, res.EarnedDays)
	assert.Equal(t, 4, res.VacationDaysUsed)
	assert.False(t, res.AutoApplied)
	assert.Nil(t, res.Suggestion)

	// The mutation is persisted.
	rec = doJSON(t, router, http.MethodGet, "/api/schedules/worker-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	s := decode[api.ScheduleDTO](t, rec)
	assert.Equal(t, "interrupted", s.State)
	assert.Equal(t, 16, s.VacationBalance)
	require.NotNil(t, s.Interruption)
	assert.Equal(t, "vacation", s.Interruption.Type)

	// Removal restores the balance and the rotation.
	rec = doJSON(t, router, http.MethodDelete, "/api/schedules/worker-1/interruption", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	s = decode[api.ScheduleDTO](t, rec)
	assert.Equal(t, "normal", s.State)
	assert.Equal(t, 20, s.VacationBalance)
	assert.Nil(t, s.Interruption)
}

func TestRemoveInterruption_WithoutActiveOneIsConflict(t *testing.T) {
	router := newTestRouter()
	createSchedule(t, router, "worker-1")

	rec := doJSON(t, router, http.MethodDelete, "/api/schedules/worker-1/interruption", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error string `json:"error"`
		NoOp  bool   `json:"no_op"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.NoOp)
	assert.NotEmpty(t, body.Error)
}

func TestHandleInterruption_BadDates(t *testing.T) {
	router := newTestRouter()
	createSchedule(t, router, "worker-1")

	rec := doJSON(t, router, http.MethodPost, "/api/schedules/worker-1/interruption", api.InterruptionRequest{
		Start: "not-a-date", End: "2025-01-15", Type: "vacation",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// End before start is a precondition violation, not a no-op.
	rec = doJSON(t, router, http.MethodPost, "/api/schedules/worker-1/interruption", api.InterruptionRequest{
		Start: "2025-01-15", End: "2025-01-09", Type: "vacation",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggest_ReturnsPlanWithoutPersisting(t *testing.T) {
	router := newTestRouter()
	createSchedule(t, router, "worker-1")

	monday := 1
	rec := doJSON(t, router, http.MethodPost, "/api/schedules/worker-1/suggest", api.InterruptionRequest{
		Start: "2025-01-20", End: "2025-01-26", Type: "vacation",
		PreferredReturnWeekday: &monday,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[api.SuggestResultDTO](t, rec)
	require.NotNil(t, res.Primary)
	assert.Equal(t, 14, res.Primary.WorkDays)
	assert.Equal(t, 7, res.Primary.OffDays)
	assert.False(t, res.RequiresApproval)

	// Suggest mode never touches the stored schedule.
	rec = doJSON(t, router, http.MethodGet, "/api/schedules/worker-1", nil)
	s := decode[api.ScheduleDTO](t, rec)
	assert.Equal(t, "normal", s.State)
	assert.Nil(t, s.Interruption)
}

func TestApplySuggestion_RejectsBadCounts(t *testing.T) {
	router := newTestRouter()
	createSchedule(t, router, "worker-1")

	// Raw client integers never reach the calendar unvalidated.
	rec := doJSON(t, router, http.MethodPost, "/api/schedules/worker-1/suggestion", api.ApplySuggestionRequest{
		Start: "2025-01-20", End: "2025-01-26", Type: "vacation", WorkDays: -10, OffDays: 7,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/schedules/worker-1/suggestion", api.ApplySuggestionRequest{
		Start: "2025-01-20", End: "2025-01-26", Type: "vacation", WorkDays: 30, OffDays: 7,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/schedules/worker-1/suggestion", api.ApplySuggestionRequest{
		Start: "2025-01-20", End: "2025-01-26", Type: "vacation", WorkDays: 14, OffDays: 7,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

// =============================================================================
// OVERRIDES, HOURS, PAY
// =============================================================================

func TestOverrideAndReset(t *testing.T) {
	router := newTestRouter()
	createSchedule(t, router, "worker-1")

	rec := doJSON(t, router, http.MethodPost, "/api/schedules/worker-1/overrides", api.OverrideRequest{
		Date: "2025-01-08", Type: "company_off", Note: "plant shutdown",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	s := decode[api.ScheduleDTO](t, rec)
	assert.Equal(t, "manually_overridden", s.State)
	assert.Equal(t, "company_off", s.Days[2].Type)
	assert.True(t, s.Days[2].Override)

	rec = doJSON(t, router, http.MethodDelete, "/api/schedules/worker-1/overrides", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	s = decode[api.ScheduleDTO](t, rec)
	assert.Equal(t, "normal", s.State)
	assert.Equal(t, "workday", s.Days[2].Type)
	assert.False(t, s.Days[2].Override)
}

func TestSetHours(t *testing.T) {
	router := newTestRouter()
	createSchedule(t, router, "worker-1")

	rec := doJSON(t, router, http.MethodPut, "/api/schedules/worker-1/days/2025-01-07/hours", api.HoursRequest{
		OvertimeHours: 2.5, ADLHours: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	day := decode[api.DayDTO](t, rec)
	assert.Equal(t, 2.5, day.OvertimeHours)
	assert.Equal(t, 1.0, day.ADLHours)

	// An off day never carries hours.
	rec = doJSON(t, router, http.MethodPut, "/api/schedules/worker-1/days/2025-01-21/hours", api.HoursRequest{
		OvertimeHours: 2,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/schedules/worker-1/days/2025-01-07/hours", api.HoursRequest{
		OvertimeHours: -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDay(t *testing.T) {
	router := newTestRouter()
	createSchedule(t, router, "worker-1")

	rec := doJSON(t, router, http.MethodGet, "/api/schedules/worker-1/days/2025-01-20", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	day := decode[api.DayDTO](t, rec)
	assert.Equal(t, "earned_off", day.Type)
	assert.False(t, day.InHitch)

	rec = doJSON(t, router, http.MethodGet, "/api/schedules/worker-1/days/2030-01-01", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPaySummary(t *testing.T) {
	router := newTestRouter()
	createSchedule(t, router, "worker-1")

	rec := doJSON(t, router, http.MethodGet, "/api/schedules/worker-1/pay/2025/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode[api.PaySummaryDTO](t, rec)
	assert.Equal(t, 2025, sum.Year)
	assert.Equal(t, 1, sum.Month)
	assert.Equal(t, 19, sum.WorkedDays) // Jan 6-19 and Jan 27-31

	rec = doJSON(t, router, http.MethodGet, "/api/schedules/worker-1/pay/2025/13", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
