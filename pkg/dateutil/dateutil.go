package dateutil

import (
	"github.com/shopspring/decimal"
)

// MonthsPerYear is the number of monthly periods in a projection year.
const MonthsPerYear = 12

// CalendarYear returns the calendar year of a projection index.
func CalendarYear(startingYear, index int) int {
	return startingYear + index
}

// IndexForCalendarYear is the inverse of CalendarYear. ok is false when the
// calendar year falls outside [startingYear, startingYear+years].
func IndexForCalendarYear(startingYear, years, calendarYear int) (int, bool) {
	idx := calendarYear - startingYear
	if idx < 0 || idx > years {
		return 0, false
	}
	return idx, true
}

// ClampMonth forces a month number into 1..12.
func ClampMonth(month int) int {
	if month < 1 {
		return 1
	}
	if month > MonthsPerYear {
		return MonthsPerYear
	}
	return month
}

// MonthFraction is the share of a year elapsed at the end of month.
func MonthFraction(month int) decimal.Decimal {
	return decimal.NewFromInt(int64(ClampMonth(month))).Div(decimal.NewFromInt(MonthsPerYear))
}

// YearsToMonths converts a (possibly fractional) year count to whole months,
// rounding to the nearest month.
func YearsToMonths(years decimal.Decimal) int {
	return int(years.Mul(decimal.NewFromInt(MonthsPerYear)).Round(0).IntPart())
}

// MonthsToYears converts months to fractional years.
func MonthsToYears(months int) decimal.Decimal {
	return decimal.NewFromInt(int64(months)).Div(decimal.NewFromInt(MonthsPerYear))
}
