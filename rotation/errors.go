/*
errors.go - Centralized error types for the rotation engine

PURPOSE:
  All error values in one place for consistency and discoverability.

ERROR CATEGORIES:
  1. Precondition violations - invalid ranges, negative hours. The caller
     should not have invoked the operation; nothing was mutated.
  2. Inconsistent-state no-ops - removing an absent interruption, touching
     dates outside the schedule span. Reported as an error so the caller
     can surface the reason, but the schedule is untouched.

  Soft policy findings (negative balance, fatigue risk, weekday drift) are
  NOT errors; they travel as Alert values in result structures. The engine
  deals in calendars and counters, not I/O, so there is no fatal class.

USAGE:
    if errors.Is(err, rotation.ErrNoActiveInterruption) { ... }
*/
package rotation

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRange is returned when an operation receives a range whose
	// end precedes its start, or a non-positive duration.
	ErrInvalidRange = errors.New("invalid range: end before start")

	// ErrOutOfScheduleRange is returned when referenced dates fall outside
	// the schedule's day sequence.
	ErrOutOfScheduleRange = errors.New("date outside schedule range")

	// ErrNoActiveInterruption is returned when interruption removal is
	// requested but no interruption is active.
	ErrNoActiveInterruption = errors.New("no active interruption")

	// ErrInterruptionActive is returned when a new interruption is handled
	// while another is still active. Remove the active one first.
	ErrInterruptionActive = errors.New("an interruption is already active")

	// ErrNotWorkedDay is returned when overtime/ADL hours are set on a day
	// whose type does not count as worked time.
	ErrNotWorkedDay = errors.New("day type does not carry worked hours")

	// ErrNegativeHours is returned for negative overtime/ADL values.
	ErrNegativeHours = errors.New("hours must be non-negative")

	// ErrScheduleNotFound is returned by snapshot stores for unknown IDs.
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrNoSuggestion is returned when a nil suggestion is applied.
	ErrNoSuggestion = errors.New("no suggestion to apply")
)

// IsPrecondition reports whether the error is a precondition violation the
// caller should have prevented.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrInvalidRange) || errors.Is(err, ErrNegativeHours)
}

// IsNoOp reports whether the error describes an inconsistent-state no-op:
// the operation did nothing and the schedule is unchanged.
func IsNoOp(err error) bool {
	return errors.Is(err, ErrNoActiveInterruption) ||
		errors.Is(err, ErrInterruptionActive) ||
		errors.Is(err, ErrOutOfScheduleRange) ||
		errors.Is(err, ErrNotWorkedDay) ||
		errors.Is(err, ErrNoSuggestion)
}
