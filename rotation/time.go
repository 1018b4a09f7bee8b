package rotation

import "time"

// =============================================================================
// DATE - Day-granularity time abstraction (the engine only deals in days)
// =============================================================================

// Date is a calendar date, normalized to midnight UTC.
// The engine performs all arithmetic at day granularity; wall-clock time
// never enters the rotation math.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary time to a Date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now().UTC())
}

// ParseDate parses a date in ISO "2006-01-02" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Time() time.Time       { return d.t }

func (d Date) String() string { return d.t.Format("2006-01-02") }

// DaysBetween returns to - from in whole days. Negative when to is before from.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// =============================================================================
// DATE RANGE
// =============================================================================

// DateRange is an inclusive [Start, End] span of dates.
type DateRange struct {
	Start Date
	End   Date
}

// Contains returns true if d falls within [Start, End].
func (r DateRange) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// NumDays returns the inclusive length of the range in days.
// Zero or negative means the range is degenerate.
func (r DateRange) NumDays() int {
	return DaysBetween(r.Start, r.End) + 1
}

// Days returns every date in the range, in order.
func (r DateRange) Days() []Date {
	var days []Date
	for d := r.Start; d.BeforeOrEqual(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}

// =============================================================================
// CYCLE MATH - The 14-on / 7-off hitch
// =============================================================================

const (
	// CycleDays is the full hitch cycle length: 14 work days + 7 off days.
	CycleDays = 21

	// WorkBlockDays is the length of the work block within a cycle.
	WorkBlockDays = 14

	// OffBlockDays is the length of the off block within a cycle.
	OffBlockDays = 7
)

// CyclePosition returns the position of d within the 21-day hitch cycle
// anchored at anchor: 0..13 inside the work block, 14..20 inside the off
// block. The double mod normalizes negative offsets for dates before the
// anchor.
func CyclePosition(anchor, d Date) int {
	return ((DaysBetween(anchor, d) % CycleDays) + CycleDays) % CycleDays
}

// InWorkBlock returns true when d falls inside the 14-day work block of the
// cycle anchored at anchor.
func InWorkBlock(anchor, d Date) bool {
	return CyclePosition(anchor, d) < WorkBlockDays
}
