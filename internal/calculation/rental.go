package calculation

import (
	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/rpgo/asset-projector/pkg/finmath"
	"github.com/shopspring/decimal"
)

// RentalFigures are one year's rental income and operating expenses.
type RentalFigures struct {
	MonthlyRent               decimal.Decimal
	AnnualRentalIncome        decimal.Decimal
	MaintenanceExpenses       decimal.Decimal
	ListingExpenses           decimal.Decimal
	MonthlyManagementExpenses decimal.Decimal
	TotalRentalExpenses       decimal.Decimal
}

// NetOperatingIncome is income less operating expenses, before debt service.
func (r RentalFigures) NetOperatingIncome() decimal.Decimal {
	return r.AnnualRentalIncome.Sub(r.TotalRentalExpenses)
}

// Prorate scales every figure except the monthly rent by fraction.
func (r RentalFigures) Prorate(fraction decimal.Decimal) RentalFigures {
	return RentalFigures{
		MonthlyRent:               r.MonthlyRent,
		AnnualRentalIncome:        r.AnnualRentalIncome.Mul(fraction),
		MaintenanceExpenses:       r.MaintenanceExpenses.Mul(fraction),
		ListingExpenses:           r.ListingExpenses.Mul(fraction),
		MonthlyManagementExpenses: r.MonthlyManagementExpenses.Mul(fraction),
		TotalRentalExpenses:       r.TotalRentalExpenses.Mul(fraction),
	}
}

// ListingEventsPerYear estimates tenant turnovers per year from the vacancy
// rate. Each turnover leaves the unit empty for one month, so a tenancy cycle
// is occupiedMonths+1 months with occupiedMonths = (1-v)/v.
func ListingEventsPerYear(vacancyPct decimal.Decimal) decimal.Decimal {
	v := finmath.Clamp(finmath.FromPercent(vacancyPct), decimal.Zero, finmath.One)
	if !v.IsPositive() {
		return decimal.Zero
	}
	vacantMonths := finmath.One
	occupiedMonths := finmath.One.Sub(v).Div(v).Mul(vacantMonths)
	return finmath.Twelve.Div(occupiedMonths.Add(vacantMonths))
}

// MonthlyRentForYear grows the entered rent from projection year 1.
func MonthlyRentForYear(in domain.PropertyInputs, year int) decimal.Decimal {
	return in.MonthlyRent.Mul(finmath.GrowthFactor(in.RentGrowthRate, year-1))
}

// RentalForYear computes full-year rental figures. Non-rental properties
// yield all zeros.
func RentalForYear(in domain.PropertyInputs, year int, propertyValue decimal.Decimal) RentalFigures {
	if !in.IsRentalProperty {
		return RentalFigures{}
	}
	rent := MonthlyRentForYear(in, year)
	occupancy := finmath.One.Sub(finmath.Clamp(finmath.FromPercent(in.VacancyRate), decimal.Zero, finmath.One))
	income := rent.Mul(finmath.Twelve).Mul(occupancy)
	maintenance := propertyValue.Mul(finmath.FromPercent(in.MaintenanceRate))

	listing, management := decimal.Zero, decimal.Zero
	if in.PropertyManagementEnabled {
		listing = ListingEventsPerYear(in.VacancyRate).Mul(rent).Mul(finmath.FromPercent(in.ListingFeeRate))
		management = income.Mul(finmath.FromPercent(in.MonthlyManagementFeeRate))
	}
	return RentalFigures{
		MonthlyRent:               rent,
		AnnualRentalIncome:        income,
		MaintenanceExpenses:       maintenance,
		ListingExpenses:           listing,
		MonthlyManagementExpenses: management,
		TotalRentalExpenses:       maintenance.Add(listing).Add(management),
	}
}
