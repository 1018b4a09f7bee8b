/*
ledger.go - Interruption bookkeeping

PURPOSE:
  Answers two questions when an interruption lands on a schedule:

  1. How many days had the worker worked in the current hitch before the
     interruption, and how many off-days were earned by them?
  2. How many days of the interruption must be charged to the banked
     vacation balance once earned off-days are spent?

CURRENT-HITCH SEMANTICS:
  "Worked days before the interruption" is path-dependent: manual overrides
  can desynchronize the calendar from pure cycle arithmetic, so the count is
  an explicit backward scan over the day sequence from the interruption
  start to the last off-to-work transition, not a cycle-position formula.

EARN RATE:
  One off-day earned per worked day, capped at the 14-day block. The earned
  count offsets an interruption before the vacation balance is touched.

BALANCE POLICY:
  The balance may go negative (deficit spending against future accrual).
  That is a warning, never an error.

SEE ALSO:
  - engine.go: the only caller that mutates balances through this ledger
*/
package rotation

import "fmt"

// Ledger performs worked/earned-day counting and vacation-balance
// bookkeeping. It is stateless; all state lives on the Schedule.
type Ledger struct{}

// PrecedingCounts returns the worked-day and earned-off-day counts for the
// current hitch, strictly before interruptionStart. Results are memoized on
// the schedule, keyed on (anchor, interruptionStart); a change to either
// recomputes.
func (Ledger) PrecedingCounts(s *Schedule, interruptionStart Date) (worked, earned int) {
	if c := s.counts; c != nil && c.anchor.Equal(s.Anchor) && c.interruptionStart.Equal(interruptionStart) {
		return c.worked, c.earned
	}

	worked = scanWorkedDays(s, interruptionStart)
	earned = worked // 1 off-day per worked day, cap applied by the scan

	s.counts = &hitchCounts{
		anchor:            s.Anchor,
		interruptionStart: interruptionStart,
		worked:            worked,
		earned:            earned,
	}
	return worked, earned
}

// scanWorkedDays walks backward from the day before interruptionStart until
// it crosses the last off-to-work transition, counting worked days. The
// scan stops at the first rotation off-type day; holidays inside the work
// block neither count as worked nor end the hitch.
func scanWorkedDays(s *Schedule, interruptionStart Date) int {
	i, ok := s.indexOf(interruptionStart)
	if !ok {
		if span := s.Span(); len(s.Days) > 0 && interruptionStart.After(span.End) {
			i = len(s.Days)
		} else {
			return 0
		}
	}

	worked := 0
	for j := i - 1; j >= 0; j-- {
		day := s.Days[j]
		if day.Type.IsOff() {
			break
		}
		if day.Type.CountsAsWorked() {
			worked++
			if worked == WorkBlockDays {
				break
			}
		}
	}
	return worked
}

// ConsumeForInterruption charges an interruption against earned off-days
// first and the vacation balance second, mutating the schedule's balance.
// Only vacation and short leave touch the balance; training and company-off
// days cost nothing. Returns the vacation days consumed plus any soft
// alerts raised.
func (Ledger) ConsumeForInterruption(s *Schedule, start, end Date, t InterruptionType, earnedDays int) (vacationDaysUsed int, alerts []Alert) {
	if !t.ConsumesVacation() {
		return 0, nil
	}

	span := DaysBetween(start, end) + 1
	vacationDaysUsed = span - earnedDays
	if vacationDaysUsed < 0 {
		vacationDaysUsed = 0
	}

	s.VacationBalance -= vacationDaysUsed
	if s.VacationBalance < 0 {
		alerts = append(alerts, Alert{
			Code: AlertNegativeBalance,
			Message: fmt.Sprintf("vacation balance is %d days after consuming %d",
				s.VacationBalance, vacationDaysUsed),
		})
	}
	return vacationDaysUsed, alerts
}

// Restore returns previously consumed vacation days to the balance. Called
// on interruption removal with the amount retained on the interruption.
func (Ledger) Restore(s *Schedule, vacationDaysUsed int) {
	s.VacationBalance += vacationDaysUsed
}
