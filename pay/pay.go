/*
Package pay computes monthly pay figures from the hour totals the rotation
engine emits.

PURPOSE:
  Once the engine has classified every day and collected overtime/ADL hour
  values, pay is straight multiplication of aggregated hours by fixed
  rates. There is deliberately no branching here beyond the day-type and
  holiday-flag reads: scheduling complexity lives in the rotation package.

PRECISION:
  Uses decimal.Decimal throughout so rate multiplication never accumulates
  floating-point error across a month of entries.
*/
package pay

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MizanFlowDEV/mizanflow/rotation"
)

// =============================================================================
// RATES - Fixed per-hour constants supplied by the pay rate source
// =============================================================================

type Rates struct {
	// BaseHourly is the straight-time hourly rate.
	BaseHourly decimal.Decimal

	// BaseHoursPerDay is the scheduled shift length of a worked day.
	BaseHoursPerDay decimal.Decimal

	// OvertimeMultiplier scales BaseHourly for overtime hours.
	OvertimeMultiplier decimal.Decimal

	// ADLHourly is the rate for additional-straight-time (ADL) hours.
	ADLHourly decimal.Decimal

	// HolidayPremium is the extra fraction of base day pay for a worked day
	// flagged as falling on a public holiday.
	HolidayPremium decimal.Decimal
}

// DefaultRates mirrors the standard rate card: 12-hour shifts, overtime at
// time-and-a-half, ADL at straight time, 50% holiday premium.
func DefaultRates(baseHourly float64) Rates {
	base := decimal.NewFromFloat(baseHourly)
	return Rates{
		BaseHourly:         base,
		BaseHoursPerDay:    decimal.NewFromInt(12),
		OvertimeMultiplier: decimal.NewFromFloat(1.5),
		ADLHourly:          base,
		HolidayPremium:     decimal.NewFromFloat(0.5),
	}
}

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

// MonthlySummary aggregates one calendar month of a schedule.
type MonthlySummary struct {
	Year  int
	Month time.Month

	WorkedDays        int
	HolidayWorkedDays int

	BaseHours     decimal.Decimal
	OvertimeHours decimal.Decimal
	ADLHours      decimal.Decimal

	BasePay           decimal.Decimal
	OvertimePay       decimal.Decimal
	ADLPay            decimal.Decimal
	HolidayPremiumPay decimal.Decimal
	Total             decimal.Decimal
}

// Monthly aggregates the schedule's worked days, hours and pay for one
// calendar month. Days outside the schedule span contribute nothing.
func Monthly(s *rotation.Schedule, year int, month time.Month, rates Rates) MonthlySummary {
	sum := MonthlySummary{
		Year:          year,
		Month:         month,
		BaseHours:     decimal.Zero,
		OvertimeHours: decimal.Zero,
		ADLHours:      decimal.Zero,
	}

	start := rotation.NewDate(year, month, 1)
	end := start.AddMonths(1).AddDays(-1)
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		day, ok := s.DayAt(d)
		if !ok || !day.Type.CountsAsWorked() {
			continue
		}
		sum.WorkedDays++
		if day.Holiday {
			sum.HolidayWorkedDays++
		}
		sum.BaseHours = sum.BaseHours.Add(rates.BaseHoursPerDay)
		sum.OvertimeHours = sum.OvertimeHours.Add(decimal.NewFromFloat(day.OvertimeHours))
		sum.ADLHours = sum.ADLHours.Add(decimal.NewFromFloat(day.ADLHours))
	}

	sum.BasePay = sum.BaseHours.Mul(rates.BaseHourly)
	sum.OvertimePay = sum.OvertimeHours.Mul(rates.BaseHourly).Mul(rates.OvertimeMultiplier)
	sum.ADLPay = sum.ADLHours.Mul(rates.ADLHourly)

	holidayDayPay := rates.BaseHoursPerDay.Mul(rates.BaseHourly)
	sum.HolidayPremiumPay = holidayDayPay.
		Mul(rates.HolidayPremium).
		Mul(decimal.NewFromInt(int64(sum.HolidayWorkedDays)))

	sum.Total = sum.BasePay.Add(sum.OvertimePay).Add(sum.ADLPay).Add(sum.HolidayPremiumPay)
	return sum
}
