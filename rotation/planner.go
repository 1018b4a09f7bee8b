/*
planner.go - Realignment planning ("suggest mode")

PURPOSE:
  After an interruption ends, the natural rotation resumes at whatever
  cycle position it held before the break. When the worker wants to resume
  work on a specific weekday instead, the planner searches transitional
  work/off splits that bridge the gap and let the schedule re-converge to
  the standard 14/7 cadence afterward.

SEARCH:
  Candidates are enumerated over an explicit, bounded neighborhood around
  the canonical 14/7 split (the constants below). Each candidate is scored
  by a weighted combination of ratio deviation, target-weekday landing,
  salary-impact magnitude, and validation warnings. The best candidate is
  the primary suggestion; the next-best distinct (work, off) pairs are the
  alternatives.

WARNINGS:
  All findings are soft: overlong combined spans, fatigue-risk work blocks,
  vacation deficits, training/off-day collisions, and projected weekday
  drift are attached as alerts, never used to fail the search.

  The planner NEVER mutates the schedule. Application is the engine's job,
  gated on RequiresApproval by the caller.

SEE ALSO:
  - conflicts.go: the training conflict check used during validation
  - engine.go: auto-applies a primary suggestion only when approval-free
*/
package rotation

import (
	"fmt"
	"sort"
	"time"
)

// =============================================================================
// SEARCH BOUNDS AND SCORING WEIGHTS
// =============================================================================
// The candidate neighborhood is deliberately explicit and bounded so the
// search stays deterministic and its complexity analyzable.

const (
	MinTransitionWorkDays = 10
	MaxTransitionWorkDays = 18
	MinTransitionOffDays  = 4
	MaxTransitionOffDays  = 10

	// MinTransitionCycleDays/MaxTransitionCycleDays keep a candidate's
	// total length within a realistic cycle.
	MinTransitionCycleDays = 16
	MaxTransitionCycleDays = 28

	// MaxCombinedSpanDays bounds interruption + transition together.
	MaxCombinedSpanDays = 42

	// FatigueWorkDays is the transitional work-block length considered an
	// operational fatigue risk.
	FatigueWorkDays = 16

	// SimulationCycles is how many cycles past the transition the planner
	// projects when checking for weekday drift.
	SimulationCycles = 6

	// MaxAlternatives caps the alternatives list.
	MaxAlternatives = 3
)

const (
	scoreBase      = 100.0
	ratioWeight    = 4.0  // per day of deviation from the 14/7 split
	weekdayBonus   = 50.0 // landing on the target weekday is a hard preference
	salaryWeight   = 2.0  // per worked-day delta vs the canonical block
	warningPenalty = 10.0 // per validation/simulation alert
)

// =============================================================================
// SUGGESTION
// =============================================================================

// Suggestion is one transitional work/off split: WorkDays of work starting
// the day after the interruption ends, then OffDays off, after which the
// standard 14/7 rotation resumes from a new local reference point.
type Suggestion struct {
	WorkDays int
	OffDays  int

	// ReturnDate is the first transitional work day (interruption end + 1).
	ReturnDate Date

	// BlockEnd is the last day of the transitional block; work resumes on
	// the following day.
	BlockEnd Date

	// TargetWeekday echoes the requested return weekday, if any.
	TargetWeekday *time.Weekday

	// SalaryImpactDays is the worked-day delta against the canonical block,
	// as a magnitude.
	SalaryImpactDays int

	Score  float64
	Alerts []Alert
}

// NextWorkStart is the day standard rotation resumes after the transition.
func (sg Suggestion) NextWorkStart() Date {
	return sg.ReturnDate.AddDays(sg.WorkDays + sg.OffDays)
}

// IsCanonical reports whether the suggestion is the unmodified 14/7 split.
func (sg Suggestion) IsCanonical() bool {
	return sg.WorkDays == WorkBlockDays && sg.OffDays == OffBlockDays
}

// SuggestResult is the planner's full answer.
type SuggestResult struct {
	Primary      *Suggestion
	Alternatives []Suggestion

	// Alerts are findings about the request itself, independent of any
	// one candidate (e.g. zero accrued off-days).
	Alerts []Alert

	// RequiresApproval is true whenever the primary suggestion carries any
	// warning or the schedule is in the manually-overridden mode; callers
	// must not auto-apply in that case.
	RequiresApproval bool
}

// =============================================================================
// PLANNER
// =============================================================================

type Planner struct {
	Ledger Ledger
}

// Suggest searches realignment plans for an interruption over [start, end].
// targetReturnWeekday may be nil, in which case candidates are ranked on
// ratio and salary impact alone. The schedule is never mutated.
func (p Planner) Suggest(s *Schedule, start, end Date, t InterruptionType, targetReturnWeekday *time.Weekday) (*SuggestResult, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	span := s.Span()
	if len(s.Days) == 0 || !span.Contains(start) || !span.Contains(end) {
		return nil, ErrOutOfScheduleRange
	}

	_, earned := p.Ledger.PrecedingCounts(s, start)
	interruptionSpan := DaysBetween(start, end) + 1
	resume := end.AddDays(1)

	var candidates []Suggestion
	for w := MinTransitionWorkDays; w <= MaxTransitionWorkDays; w++ {
		for o := MinTransitionOffDays; o <= MaxTransitionOffDays; o++ {
			if w+o < MinTransitionCycleDays || w+o > MaxTransitionCycleDays {
				continue
			}
			candidates = append(candidates, p.evaluate(s, start, end, t, resume, w, o, interruptionSpan, earned, targetReturnWeekday))
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		// Deterministic tie-break: closest to canonical, then shortest.
		di := ratioDeviation(candidates[i].WorkDays, candidates[i].OffDays)
		dj := ratioDeviation(candidates[j].WorkDays, candidates[j].OffDays)
		if di != dj {
			return di < dj
		}
		return candidates[i].WorkDays < candidates[j].WorkDays
	})

	result := &SuggestResult{}
	if len(candidates) > 0 {
		primary := candidates[0]
		result.Primary = &primary
		result.Alternatives = dedupeAlternatives(candidates[1:], primary)
	}

	if earned == 0 && !t.ConsumesVacation() {
		result.Alerts = append(result.Alerts, Alert{
			Code:    AlertZeroEarnedDays,
			Message: "no accrued off-days precede this interruption",
		})
		result.RequiresApproval = true
	}

	if result.Primary != nil && len(result.Primary.Alerts) > 0 {
		result.RequiresApproval = true
	}
	if s.State == StateManuallyOverridden {
		result.RequiresApproval = true
	}
	return result, nil
}

func (p Planner) evaluate(s *Schedule, start, end Date, t InterruptionType, resume Date, w, o, interruptionSpan, earned int, target *time.Weekday) Suggestion {
	sg := Suggestion{
		WorkDays:         w,
		OffDays:          o,
		ReturnDate:       resume,
		BlockEnd:         resume.AddDays(w + o - 1),
		TargetWeekday:    target,
		SalaryImpactDays: abs(w - WorkBlockDays),
	}

	sg.Alerts = p.validate(s, start, end, t, interruptionSpan, earned, w, o)
	if drift := simulateDrift(resume, w, o, target); drift != nil {
		sg.Alerts = append(sg.Alerts, *drift)
	}

	score := scoreBase
	score -= ratioWeight * float64(ratioDeviation(w, o))
	score -= salaryWeight * float64(sg.SalaryImpactDays)
	score -= warningPenalty * float64(len(sg.Alerts))
	if target != nil && sg.NextWorkStart().Weekday() == *target {
		score += weekdayBonus
	}
	sg.Score = score
	return sg
}

// validate attaches per-candidate soft warnings.
func (p Planner) validate(s *Schedule, start, end Date, t InterruptionType, interruptionSpan, earned, w, o int) []Alert {
	var alerts []Alert

	if combined := interruptionSpan + w + o; combined > MaxCombinedSpanDays {
		alerts = append(alerts, Alert{
			Code:    AlertSpanTooLong,
			Message: fmt.Sprintf("interruption plus transition spans %d days (limit %d)", combined, MaxCombinedSpanDays),
		})
	}
	if w >= FatigueWorkDays {
		alerts = append(alerts, Alert{
			Code:    AlertLongWorkBlock,
			Message: fmt.Sprintf("transitional work block of %d days is a fatigue risk", w),
		})
	}
	if t.ConsumesVacation() && interruptionSpan > earned {
		alerts = append(alerts, Alert{
			Code:    AlertVacationDeficit,
			Message: fmt.Sprintf("%d interruption days exceed %d earned off-days", interruptionSpan, earned),
		})
	}
	if t == InterruptionTraining {
		if conflicts := DetectConflicts(s, start, end); len(conflicts) > 0 {
			alerts = append(alerts, Alert{
				Code:    AlertTrainingConflict,
				Message: fmt.Sprintf("training overlaps %d off day(s)", len(conflicts)),
				Date:    conflicts[0].Date,
			})
		}
	}
	return alerts
}

// simulateDrift projects work-block starts forward SimulationCycles cycles
// assuming the candidate pattern is adopted, and flags a plan whose
// weekday-of-work-start moves monotonically away from the target rather
// than stabilizing. A candidate whose cycle length is a multiple of seven
// can never drift.
func simulateDrift(resume Date, w, o int, target *time.Weekday) *Alert {
	if target == nil {
		return nil
	}
	cycle := w + o
	if cycle%7 == 0 {
		return nil
	}

	// Track the signed weekday offset of each projected work start from the
	// target. A pattern that shifts one weekday per cycle walks the offset
	// monotonically through 1..6 (or 6..1) without ever realigning; faster
	// shifts wrap around and are treated as oscillation, not drift.
	offsets := make([]int, 0, SimulationCycles)
	for k := 1; k <= SimulationCycles; k++ {
		wd := resume.AddDays(k * cycle).Weekday()
		offsets = append(offsets, int(wd-*target+7)%7)
	}
	increasing, decreasing := true, true
	for i := 1; i < len(offsets); i++ {
		if offsets[i] == 0 {
			return nil // realigns within the horizon
		}
		if offsets[i] <= offsets[i-1] {
			increasing = false
		}
		if offsets[i] >= offsets[i-1] {
			decreasing = false
		}
	}
	if !increasing && !decreasing {
		return nil
	}
	return &Alert{
		Code:    AlertWeekdayDrift,
		Message: fmt.Sprintf("%d/%d pattern drifts away from %s over %d cycles", w, o, target.String(), SimulationCycles),
	}
}

func ratioDeviation(w, o int) int {
	return abs(w-WorkBlockDays) + abs(o-OffBlockDays)
}

func dedupeAlternatives(rest []Suggestion, primary Suggestion) []Suggestion {
	seen := map[[2]int]bool{{primary.WorkDays, primary.OffDays}: true}
	var alts []Suggestion
	for _, c := range rest {
		key := [2]int{c.WorkDays, c.OffDays}
		if seen[key] {
			continue
		}
		seen[key] = true
		alts = append(alts, c)
		if len(alts) == MaxAlternatives {
			break
		}
	}
	return alts
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
