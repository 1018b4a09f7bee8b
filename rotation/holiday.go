package rotation

// =============================================================================
// HOLIDAY ORACLE - External collaborator, consumed but never implemented here
// =============================================================================

// HolidayKind identifies the class of a public or company holiday.
type HolidayKind string

const (
	HolidayEid      HolidayKind = "eid"
	HolidayNational HolidayKind = "national_day"
	HolidayFounding HolidayKind = "founding_day"
	HolidayRamadan  HolidayKind = "ramadan"
	HolidayCompany  HolidayKind = "company"
)

// DayType maps a holiday kind to the day type it stamps onto the calendar.
func (k HolidayKind) DayType() DayType {
	switch k {
	case HolidayEid:
		return DayEidHoliday
	case HolidayNational:
		return DayNationalDay
	case HolidayFounding:
		return DayFoundingDay
	case HolidayRamadan:
		return DayRamadan
	case HolidayCompany:
		return DayCompanyOff
	default:
		return DayCompanyOff
	}
}

// HolidayOracle answers whether a date is a public/company holiday and of
// what kind. Implementations are expected to be pure queries, cheap or
// cached; the engine consults the oracle once per generated day.
type HolidayOracle interface {
	IsHoliday(d Date) bool
	Kind(d Date) (HolidayKind, bool)
}

// NoHolidays is the no-op oracle used when holiday data is unavailable.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(Date) bool           { return false }
func (NoHolidays) Kind(Date) (HolidayKind, bool) { return "", false }

// StaticOracle is a map-backed oracle for callers that source their holiday
// dates ahead of time (and for tests).
type StaticOracle struct {
	kinds map[Date]HolidayKind
}

func NewStaticOracle() *StaticOracle {
	return &StaticOracle{kinds: make(map[Date]HolidayKind)}
}

func (o *StaticOracle) Add(d Date, kind HolidayKind) *StaticOracle {
	o.kinds[d] = kind
	return o
}

func (o *StaticOracle) IsHoliday(d Date) bool {
	_, ok := o.kinds[d]
	return ok
}

func (o *StaticOracle) Kind(d Date) (HolidayKind, bool) {
	k, ok := o.kinds[d]
	return k, ok
}
