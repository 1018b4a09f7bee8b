/*
engine.go - The schedule engine (orchestrator)

PURPOSE:
  The Engine is the ONLY component with mutation authority over a Schedule.
  It composes the generator, ledger, planner and conflict detector, and
  enforces the per-schedule state machine:

      Normal -> Interrupted            on HandleInterruption
      Interrupted -> Normal            on RemoveInterruption
      any -> ManuallyOverridden        on ApplyManualOverride (sticky)
      ManuallyOverridden -> Normal     on ResetManualAdjustments

  While ManuallyOverridden, interruption handling still records ledger
  effects but only flat-marks days; automatic realignment is disabled for
  the remainder of the hitch.

CONCURRENCY:
  Every operation is synchronous, bounded, in-memory computation. The
  engine assumes a single writer per Schedule; serialization across
  goroutines is the caller's responsibility.

SEE ALSO:
  - planner.go: suggestion search (never mutates; the engine applies)
  - ledger.go: balance bookkeeping invoked from here
*/
package rotation

import "time"

type Engine struct {
	Gen     Generator
	Ledger  Ledger
	Planner Planner
}

func NewEngine(oracle HolidayOracle) *Engine {
	return &Engine{Gen: NewGenerator(oracle)}
}

// =============================================================================
// GENERATION
// =============================================================================

// GenerateSchedule creates a schedule of durationMonths anchored at anchor.
func (e *Engine) GenerateSchedule(id string, anchor Date, durationMonths int) *Schedule {
	return &Schedule{
		ID:     id,
		Anchor: anchor,
		Days:   e.Gen.Generate(anchor, durationMonths),
		State:  StateNormal,
	}
}

// SetAnchor moves the hitch anchor and regenerates the entire day sequence
// over the same span. Identity, vacation balance and override-flagged days
// are carried over explicitly; everything else is recomputed.
func (e *Engine) SetAnchor(s *Schedule, anchor Date) {
	span := s.Span()
	s.Anchor = anchor
	s.invalidateCounts()
	if len(s.Days) == 0 {
		return
	}

	old := s.Days
	s.Days = e.Gen.GenerateRange(anchor, span)
	for i := range s.Days {
		if old[i].Override {
			s.Days[i] = old[i]
			continue
		}
		s.Days[i].Markers = old[i].Markers
		s.Days[i].Note = old[i].Note
		if s.Days[i].Type.CountsAsWorked() {
			s.Days[i].OvertimeHours = old[i].OvertimeHours
			s.Days[i].ADLHours = old[i].ADLHours
		}
	}
}

// =============================================================================
// INTERRUPTION HANDLING
// =============================================================================

// InterruptionResult reports the ledger effects of handling an interruption
// plus the planner outcome, when one was consulted.
type InterruptionResult struct {
	WorkedDays       int
	EarnedDays       int
	VacationDaysUsed int
	Alerts           []Alert

	// Suggestion is set when a preferred return weekday was supplied and
	// the planner ran. AutoApplied is true when the primary suggestion
	// needed no approval and was written into the schedule.
	Suggestion  *SuggestResult
	AutoApplied bool
}

// HandleInterruption records an interruption over [start, end], charges the
// ledger, flat-marks the range, and - unless the schedule is manually
// overridden - consults the planner when a preferred return weekday is
// given, auto-applying an approval-free primary suggestion.
func (e *Engine) HandleInterruption(s *Schedule, start, end Date, t InterruptionType, preferredReturnWeekday *time.Weekday) (*InterruptionResult, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	span := s.Span()
	if len(s.Days) == 0 || !span.Contains(start) || !span.Contains(end) {
		return nil, ErrOutOfScheduleRange
	}
	if s.Interruption != nil {
		return nil, ErrInterruptionActive
	}

	worked, earned := e.Ledger.PrecedingCounts(s, start)

	// The planner runs before the range is marked: its conflict validation
	// compares the interruption against the day types it would displace, so
	// it must see the calendar as it stands.
	var suggestion *SuggestResult
	if preferredReturnWeekday != nil && s.State != StateManuallyOverridden {
		var err error
		suggestion, err = e.Planner.Suggest(s, start, end, t, preferredReturnWeekday)
		if err != nil {
			return nil, err
		}
	}

	used, alerts := e.Ledger.ConsumeForInterruption(s, start, end, t, earned)

	s.Interruption = &Interruption{
		Start:                  start,
		End:                    end,
		Type:                   t,
		PreferredReturnWeekday: preferredReturnWeekday,
		VacationDaysUsed:       used,
	}
	e.markRange(s, DateRange{Start: start, End: end}, t.DayType())
	if s.State != StateManuallyOverridden {
		s.State = StateInterrupted
	}

	res := &InterruptionResult{
		WorkedDays:       worked,
		EarnedDays:       earned,
		VacationDaysUsed: used,
		Alerts:           alerts,
	}

	if suggestion != nil {
		res.Suggestion = suggestion
		if suggestion.Primary != nil && !suggestion.RequiresApproval {
			if err := e.ApplySuggestion(s, suggestion.Primary, start, end, t); err != nil {
				return nil, err
			}
			res.AutoApplied = true
		}
	}
	return res, nil
}

// RemoveInterruption clears the active interruption, restores exactly the
// vacation days it consumed, and regenerates the affected range back to
// holiday-overlaid rotation. Override-flagged days survive.
func (e *Engine) RemoveInterruption(s *Schedule) error {
	if s.Interruption == nil {
		return ErrNoActiveInterruption
	}
	in := s.Interruption

	e.Ledger.Restore(s, in.VacationDaysUsed)

	affected := DateRange{Start: in.Start, End: in.End}
	if in.Realigned {
		// A suggestion rewrote the rotation past the interruption; the
		// whole tail must return to anchor-based rotation.
		affected.End = s.Span().End
	}
	e.regenerateRange(s, affected, s.Anchor)

	s.Interruption = nil
	s.invalidateCounts()
	if s.State == StateInterrupted {
		s.State = StateNormal
	}
	return nil
}

// =============================================================================
// SUGGESTION APPLICATION
// =============================================================================

// Suggest runs the planner for a prospective interruption without mutating
// the schedule.
func (e *Engine) Suggest(s *Schedule, start, end Date, t InterruptionType, targetReturnWeekday *time.Weekday) (*SuggestResult, error) {
	return e.Planner.Suggest(s, start, end, t, targetReturnWeekday)
}

// ApplySuggestion writes the interruption block, then the transitional
// work/off block immediately after it, then resumes standard rotation with
// the transition's end as a new local reference point. The stored anchor is
// not changed retroactively. Transitional counts outside the planner's
// search bounds are rejected with ErrInvalidRange before anything is
// written, so a caller-supplied suggestion cannot corrupt the calendar.
func (e *Engine) ApplySuggestion(s *Schedule, sug *Suggestion, start, end Date, t InterruptionType) error {
	if sug == nil {
		return ErrNoSuggestion
	}
	if end.Before(start) {
		return ErrInvalidRange
	}
	if sug.WorkDays < MinTransitionWorkDays || sug.WorkDays > MaxTransitionWorkDays ||
		sug.OffDays < MinTransitionOffDays || sug.OffDays > MaxTransitionOffDays {
		return ErrInvalidRange
	}
	if cycle := sug.WorkDays + sug.OffDays; cycle < MinTransitionCycleDays || cycle > MaxTransitionCycleDays {
		return ErrInvalidRange
	}
	span := s.Span()
	if len(s.Days) == 0 || !span.Contains(start) || !span.Contains(end) {
		return ErrOutOfScheduleRange
	}

	// 1. Interruption block.
	e.markRange(s, DateRange{Start: start, End: end}, t.DayType())

	// 2. Transitional block: WorkDays of auto-rescheduled worked time, then
	// OffDays of earned off.
	resume := end.AddDays(1)
	for i := 0; i < sug.WorkDays; i++ {
		e.setTransitionDay(s, resume.AddDays(i), DayAutoRescheduled, true)
	}
	for i := 0; i < sug.OffDays; i++ {
		e.setTransitionDay(s, resume.AddDays(sug.WorkDays+i), DayEarnedOff, false)
	}

	// 3. Standard rotation from the new local reference point.
	localRef := resume.AddDays(sug.WorkDays + sug.OffDays)
	if localRef.BeforeOrEqual(span.End) {
		e.regenerateRange(s, DateRange{Start: localRef, End: span.End}, localRef)
	}

	if s.Interruption != nil && s.Interruption.Start.Equal(start) && s.Interruption.End.Equal(end) {
		s.Interruption.Realigned = true
	}
	s.invalidateCounts()
	return nil
}

// =============================================================================
// MANUAL OVERRIDES
// =============================================================================

// ApplyManualOverride sets a day's type and override flag directly and
// switches the schedule into the sticky manually-overridden mode.
func (e *Engine) ApplyManualOverride(s *Schedule, date Date, newType DayType, note string) error {
	i, ok := s.indexOf(date)
	if !ok {
		return ErrOutOfScheduleRange
	}
	day := &s.Days[i]
	day.Type = newType
	day.Override = true
	day.Note = note
	day.InHitch = newType.CountsAsWorked()
	if !newType.CountsAsWorked() {
		day.OvertimeHours = 0
		day.ADLHours = 0
	}
	s.State = StateManuallyOverridden
	s.invalidateCounts()
	return nil
}

// ResetManualAdjustments clears the manually-overridden mode and reverts
// every override-flagged day to what rotation plus the current interruption
// range implies for its date.
func (e *Engine) ResetManualAdjustments(s *Schedule) {
	for i := range s.Days {
		if !s.Days[i].Override {
			continue
		}
		d := s.Days[i].Date
		markers := s.Days[i].Markers
		if in := s.Interruption; in != nil && in.Range().Contains(d) {
			day := e.Gen.Day(s.Anchor, d)
			day.Type = in.Type.DayType()
			day.InHitch = false
			s.Days[i] = day
		} else {
			s.Days[i] = e.Gen.Day(s.Anchor, d)
		}
		s.Days[i].Markers = markers
	}
	if s.State == StateManuallyOverridden {
		if s.Interruption != nil {
			s.State = StateInterrupted
		} else {
			s.State = StateNormal
		}
	}
	s.invalidateCounts()
}

// =============================================================================
// QUERY ACCESSORS AND HOUR VALUES
// =============================================================================

// DayInfo returns a copy of the schedule day at date.
func (e *Engine) DayInfo(s *Schedule, date Date) (ScheduleDay, error) {
	day, ok := s.DayAt(date)
	if !ok {
		return ScheduleDay{}, ErrOutOfScheduleRange
	}
	return *day, nil
}

// PrecedingCounts exposes the ledger's worked/earned counts for a date.
func (e *Engine) PrecedingCounts(s *Schedule, interruptionStart Date) (worked, earned int) {
	return e.Ledger.PrecedingCounts(s, interruptionStart)
}

// SetDayHours records overtime and ADL hours for a worked day. Hours are
// rejected on days whose type does not count as worked time - interruption
// days never carry overtime.
func (e *Engine) SetDayHours(s *Schedule, date Date, overtime, adl float64) error {
	if overtime < 0 || adl < 0 {
		return ErrNegativeHours
	}
	i, ok := s.indexOf(date)
	if !ok {
		return ErrOutOfScheduleRange
	}
	if !s.Days[i].Type.CountsAsWorked() {
		return ErrNotWorkedDay
	}
	s.Days[i].OvertimeHours = overtime
	s.Days[i].ADLHours = adl
	return nil
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

// markRange flat-marks every day in r with the given type, zeroing hour
// values. Override-flagged days keep their manual assignment (manual
// override outranks interruption marking).
func (e *Engine) markRange(s *Schedule, r DateRange, t DayType) {
	for d := r.Start; d.BeforeOrEqual(r.End); d = d.AddDays(1) {
		i, ok := s.indexOf(d)
		if !ok {
			continue
		}
		day := &s.Days[i]
		if day.Override {
			continue
		}
		day.Type = t
		day.InHitch = false
		day.OvertimeHours = 0
		day.ADLHours = 0
	}
}

// setTransitionDay writes one day of the transitional block, keeping the
// holiday flag (pay-relevant) and skipping override-flagged days.
func (e *Engine) setTransitionDay(s *Schedule, d Date, t DayType, inHitch bool) {
	i, ok := s.indexOf(d)
	if !ok {
		return
	}
	day := &s.Days[i]
	if day.Override {
		return
	}
	day.Type = t
	day.InHitch = inHitch
	day.OvertimeHours = 0
	day.ADLHours = 0
}

// regenerateRange rewrites r as pure rotation measured against ref,
// preserving override-flagged days, markers and notes.
func (e *Engine) regenerateRange(s *Schedule, r DateRange, ref Date) {
	for d := r.Start; d.BeforeOrEqual(r.End); d = d.AddDays(1) {
		i, ok := s.indexOf(d)
		if !ok {
			continue
		}
		if s.Days[i].Override {
			continue
		}
		markers := s.Days[i].Markers
		note := s.Days[i].Note
		s.Days[i] = e.Gen.Day(ref, d)
		s.Days[i].Markers = markers
		s.Days[i].Note = note
	}
}
