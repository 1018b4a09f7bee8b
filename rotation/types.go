/*
Package rotation implements the hitch rotation and interruption scheduling
engine.

PURPOSE:
  Workers on a fixed 14-days-on / 7-days-off cycle ("hitch") need a
  day-by-day calendar derived from an anchor date, with holidays and manual
  overrides layered on top, and with real-world interruptions (vacation,
  training, short leave, company-mandated days off) accounted against
  earned off-days and banked vacation. After an interruption the engine can
  propose and validate realignment plans so the worker returns to a
  predictable cadence, optionally landing back on a preferred weekday.

KEY CONCEPTS IN THIS FILE (types.go):
  - DayType: closed set of calendar day classifications
  - InterruptionType: why the rotation was suspended
  - ScheduleDay: one calendar day with its classification and hour values
  - Schedule: the aggregate owning the day sequence and interruption state
  - ScheduleState: Normal | Interrupted | ManuallyOverridden

DESIGN PRINCIPLES:
  1. Purity: generation and planning are deterministic, side-effect-free
  2. Single writer: only the Engine mutates a Schedule, one operation at a
     time; cross-goroutine serialization is the caller's responsibility
  3. Explicit state: the sticky manual-override mode is an enum state, not
     a loose boolean, so transitions are exhaustively checked
  4. Soft warnings: policy violations surface as Alert values, never errors

SEE ALSO:
  - generator.go: rotation generation from the anchor date
  - ledger.go: earned-day and vacation-balance bookkeeping
  - planner.go: realignment suggestion search
  - engine.go: the orchestrator with mutation authority
*/
package rotation

import "time"

// =============================================================================
// DAY TYPE - Closed variant set, exactly one per day
// =============================================================================

type DayType string

const (
	DayWorkday         DayType = "workday"
	DayEarnedOff       DayType = "earned_off"
	DayVacation        DayType = "vacation"
	DayTraining        DayType = "training"
	DayEidHoliday      DayType = "eid_holiday"
	DayNationalDay     DayType = "national_day"
	DayFoundingDay     DayType = "founding_day"
	DayAutoRescheduled DayType = "auto_rescheduled"
	DayCompanyOff      DayType = "company_off"
	DayManualOverride  DayType = "manual_override"
	DayRamadan         DayType = "ramadan"
)

// CountsAsWorked returns true for day types that represent worked time and
// may therefore carry overtime/ADL hours.
func (t DayType) CountsAsWorked() bool {
	return t == DayWorkday || t == DayAutoRescheduled
}

// IsOff returns true for rotation-derived off types. Training scheduled on
// such a day is a conflict: training requires the worker to be available.
func (t DayType) IsOff() bool {
	return t == DayEarnedOff || t == DayCompanyOff
}

// =============================================================================
// INTERRUPTION TYPE
// =============================================================================

type InterruptionType string

const (
	InterruptionVacation   InterruptionType = "vacation"
	InterruptionTraining   InterruptionType = "training"
	InterruptionShortLeave InterruptionType = "short_leave"
	InterruptionCompanyOff InterruptionType = "company_off"
)

// ConsumesVacation reports whether days of this interruption beyond the
// earned off-day allowance are charged to the vacation balance.
func (t InterruptionType) ConsumesVacation() bool {
	return t == InterruptionVacation || t == InterruptionShortLeave
}

// DayType returns the calendar day type used to mark days of this
// interruption. Short leave is charged and rendered as vacation.
func (t InterruptionType) DayType() DayType {
	switch t {
	case InterruptionTraining:
		return DayTraining
	case InterruptionCompanyOff:
		return DayCompanyOff
	default:
		return DayVacation
	}
}

// =============================================================================
// SCHEDULE DAY
// =============================================================================

// ScheduleDay is one calendar day of a schedule.
//
// The holiday flag is independent of Type: a day can be a Workday and still
// fall on a public holiday, which pays holiday rates. Overtime and ADL
// hours are only meaningful on worked day types and are forced to zero
// everywhere else.
type ScheduleDay struct {
	Date        Date
	Type        DayType
	Holiday     bool
	HolidayKind HolidayKind // set only when Holiday is true
	Override    bool
	Note        string

	// Hour values for pay aggregation. Non-negative; zero on any day whose
	// type does not count as worked.
	OvertimeHours float64
	ADLHours      float64

	// InHitch marks dates inside the worker's active 14-day work block.
	InHitch bool

	// Markers are opaque UI annotation flags; the engine carries them
	// through regeneration untouched but never interprets them.
	Markers []string
}

// =============================================================================
// SCHEDULE STATE - Explicit mode enum (see DESIGN PRINCIPLES above)
// =============================================================================

type ScheduleState string

const (
	StateNormal             ScheduleState = "normal"
	StateInterrupted        ScheduleState = "interrupted"
	StateManuallyOverridden ScheduleState = "manually_overridden"
)

// =============================================================================
// INTERRUPTION - At most one active per schedule, embedded in the aggregate
// =============================================================================

type Interruption struct {
	Start Date
	End   Date
	Type  InterruptionType

	// PreferredReturnWeekday, when set, asks the planner for a realignment
	// that resumes work on this weekday.
	PreferredReturnWeekday *time.Weekday

	// VacationDaysUsed is retained so removal restores exactly what was
	// consumed.
	VacationDaysUsed int

	// Realigned is set once a suggestion rewrote the rotation past End;
	// removal must then regenerate through the end of the schedule.
	Realigned bool
}

// Range returns the inclusive interruption span.
func (i Interruption) Range() DateRange { return DateRange{Start: i.Start, End: i.End} }

// Span returns the inclusive interruption length in days.
func (i Interruption) Span() int { return i.Range().NumDays() }

// =============================================================================
// SCHEDULE - The aggregate
// =============================================================================

// Schedule owns an ordered, date-unique day sequence spanning [Span().Start,
// Span().End], anchored at Anchor. Days are stored consecutively, so lookup
// is an offset computation rather than a search.
type Schedule struct {
	ID     string
	Anchor Date
	Days   []ScheduleDay

	State           ScheduleState
	Interruption    *Interruption
	VacationBalance int // days; may go negative (deficit spending, warned not blocked)

	// counts memoizes the worked/earned figures computed as of the active
	// interruption's start, keyed on (anchor, interruption start) so a
	// change to either invalidates it.
	counts *hitchCounts
}

type hitchCounts struct {
	anchor            Date
	interruptionStart Date
	worked            int
	earned            int
}

// Span returns the inclusive date range covered by the day sequence.
// The zero range is returned for an empty schedule.
func (s *Schedule) Span() DateRange {
	if len(s.Days) == 0 {
		return DateRange{}
	}
	return DateRange{Start: s.Days[0].Date, End: s.Days[len(s.Days)-1].Date}
}

// IsInterrupted reports whether an interruption is currently active.
func (s *Schedule) IsInterrupted() bool { return s.Interruption != nil }

// DayAt returns the schedule day for a date, if the date is in range.
func (s *Schedule) DayAt(d Date) (*ScheduleDay, bool) {
	i, ok := s.indexOf(d)
	if !ok {
		return nil, false
	}
	return &s.Days[i], true
}

func (s *Schedule) indexOf(d Date) (int, bool) {
	if len(s.Days) == 0 {
		return 0, false
	}
	i := DaysBetween(s.Days[0].Date, d)
	if i < 0 || i >= len(s.Days) {
		return 0, false
	}
	return i, true
}

// Clone returns a deep copy of the schedule. Stores hand out clones so no
// caller can mutate a persisted snapshot in place.
func (s *Schedule) Clone() *Schedule {
	out := &Schedule{
		ID:              s.ID,
		Anchor:          s.Anchor,
		State:           s.State,
		VacationBalance: s.VacationBalance,
	}
	out.Days = make([]ScheduleDay, len(s.Days))
	copy(out.Days, s.Days)
	for i := range out.Days {
		if len(s.Days[i].Markers) > 0 {
			out.Days[i].Markers = append([]string(nil), s.Days[i].Markers...)
		}
	}
	if s.Interruption != nil {
		in := *s.Interruption
		if s.Interruption.PreferredReturnWeekday != nil {
			wd := *s.Interruption.PreferredReturnWeekday
			in.PreferredReturnWeekday = &wd
		}
		out.Interruption = &in
	}
	return out
}

func (s *Schedule) invalidateCounts() { s.counts = nil }

// =============================================================================
// ALERTS - Soft warnings, surfaced as data and never dropped
// =============================================================================

type AlertCode string

const (
	AlertNegativeBalance  AlertCode = "negative_vacation_balance"
	AlertZeroEarnedDays   AlertCode = "zero_accrued_off_days"
	AlertSpanTooLong      AlertCode = "span_too_long"
	AlertLongWorkBlock    AlertCode = "long_work_block"
	AlertVacationDeficit  AlertCode = "vacation_deficit"
	AlertTrainingConflict AlertCode = "training_conflict"
	AlertWeekdayDrift     AlertCode = "weekday_drift"
)

// Alert is a non-fatal warning. Operations never block on alerts; callers
// decide whether to display or gate on them.
type Alert struct {
	Code    AlertCode
	Message string
	Date    Date // zero when the alert is not tied to a single date
}

func (a Alert) String() string {
	if a.Date.IsZero() {
		return string(a.Code) + ": " + a.Message
	}
	return string(a.Code) + " at " + a.Date.String() + ": " + a.Message
}
