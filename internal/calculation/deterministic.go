package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// CurrentYear is the calendar year of the time provider.
func CurrentYear() int { return nowFunc().Year() }

var defaultStartingYear int

// SetDefaultStartingYear fixes the starting year given to entities that
// have none. Zero restores the current year.
func SetDefaultStartingYear(year int) { defaultStartingYear = year }

// DefaultStartingYear is the starting year for entities that have none.
func DefaultStartingYear() int {
	if defaultStartingYear != 0 {
		return defaultStartingYear
	}
	return CurrentYear()
}
