/*
generator.go - Rotation generation from the anchor date

PURPOSE:
  Produces the ordered day-by-day rotation for a date range: positions 0..13
  of the 21-day cycle are the work block, 14..20 the off block. The holiday
  oracle is consulted per date; a holiday upgrades the day type and sets the
  holiday flag regardless of cycle position (a holiday inside a work block
  still pays holiday rates - intentional).

GUARANTEES:
  - Deterministic: same anchor + range = identical sequence
  - Total: no error conditions; degenerate ranges yield an empty sequence
  - Pure: no state, no mutation of existing schedules

SEE ALSO:
  - time.go: CyclePosition and the cycle constants
  - engine.go: uses Generate for whole schedules and RegenerateRange for
    interruption removal / override resets
*/
package rotation

// Generator produces rotation day sequences. Zero value is not usable;
// construct with an oracle (use NoHolidays{} when holiday data is absent).
type Generator struct {
	Oracle HolidayOracle
}

func NewGenerator(oracle HolidayOracle) Generator {
	if oracle == nil {
		oracle = NoHolidays{}
	}
	return Generator{Oracle: oracle}
}

// Generate returns the day sequence for durationMonths starting at anchor.
// Non-positive durations yield an empty sequence.
func (g Generator) Generate(anchor Date, durationMonths int) []ScheduleDay {
	if durationMonths <= 0 {
		return nil
	}
	end := anchor.AddMonths(durationMonths).AddDays(-1)
	return g.GenerateRange(anchor, DateRange{Start: anchor, End: end})
}

// GenerateRange returns the pure rotation (holiday-overlaid) days for an
// arbitrary range measured against anchor. The range may lie anywhere
// relative to the anchor, including entirely before it.
func (g Generator) GenerateRange(anchor Date, r DateRange) []ScheduleDay {
	if r.NumDays() <= 0 {
		return nil
	}
	days := make([]ScheduleDay, 0, r.NumDays())
	for d := r.Start; d.BeforeOrEqual(r.End); d = d.AddDays(1) {
		days = append(days, g.Day(anchor, d))
	}
	return days
}

// Day computes the rotation day for a single date.
func (g Generator) Day(anchor, d Date) ScheduleDay {
	day := ScheduleDay{Date: d}
	if InWorkBlock(anchor, d) {
		day.InHitch = true
		day.Type = DayWorkday
	} else {
		day.Type = DayEarnedOff
	}
	if kind, ok := g.Oracle.Kind(d); ok {
		day.Holiday = true
		day.HolidayKind = kind
		day.Type = kind.DayType()
	} else if g.Oracle.IsHoliday(d) {
		// Oracle knows the date is a holiday but not its kind.
		day.Holiday = true
		day.HolidayKind = HolidayCompany
		day.Type = DayCompanyOff
	}
	return day
}
