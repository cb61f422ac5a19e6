package calculation

import (
	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/rpgo/asset-projector/pkg/dateutil"
	"github.com/rpgo/asset-projector/pkg/finmath"
	"github.com/shopspring/decimal"
)

// PropertyValue returns the projected market value at projection year.
// The current-value model needs a positive estimate; otherwise the value
// grows from the purchase price.
func PropertyValue(in domain.PropertyInputs, year int) decimal.Decimal {
	if in.PropertyGrowthModel == domain.GrowthFromCurrentValue && in.CurrentEstimatedValue.IsPositive() {
		return in.CurrentEstimatedValue.Mul(finmath.GrowthFactor(in.PropertyGrowthRate, year))
	}
	return in.PurchasePrice.Mul(finmath.GrowthFactor(in.PropertyGrowthRate, in.YearsBought+year))
}

// ProjectProperty runs the year-by-year property projection. sale may be
// nil; a sale only happens when it is planned and falls inside the horizon.
func (ce *CalculationEngine) ProjectProperty(in domain.PropertyInputs, sale *domain.SaleConfig) []domain.PropertyYear {
	years := in.Years
	if years < 0 {
		years = 0
	}
	saleActive := sale != nil && sale.SaleScheduled(years)

	mortgage := NewMortgage(in)
	if in.YearsBought > 0 {
		mortgage.FastForward(in.YearsBought * dateutil.MonthsPerYear)
	}

	value0 := PropertyValue(in, 0)
	results := make([]domain.PropertyYear, 0, years+1)
	results = append(results, initialPropertyYear(in, mortgage, value0))

	prevValue, prevRealValue := value0, value0
	for year := 1; year <= years; year++ {
		calendarYear := dateutil.CalendarYear(in.StartingYear, year)
		if saleActive && year > sale.SaleYear {
			results = append(results, postSaleYear(year, calendarYear))
			continue
		}

		isSaleYear := saleActive && year == sale.SaleYear
		months := dateutil.MonthsPerYear
		fraction := finmath.One
		if isSaleYear {
			months = dateutil.ClampMonth(sale.SaleMonth)
			fraction = dateutil.MonthFraction(months)
		}

		inflation := finmath.GrowthFactor(in.InflationRate, year)
		value := PropertyValue(in, year)
		realValue := finmath.Deflate(value, inflation)

		monthlyPayment := mortgage.CurrentMonthlyPayment()
		piPayment := mortgage.CurrentPI()
		otherFees := mortgage.OtherFeesPayment.Mul(decimal.NewFromInt(int64(months)))
		principal, interest := mortgage.Pay(months)
		payments := principal.Add(interest).Add(otherFees)

		rental := RentalForYear(in, year, value)
		if isSaleYear {
			rental = rental.Prorate(fraction)
		}
		operating := rental.NetOperatingIncome().Sub(payments)

		row := domain.PropertyYear{
			AssetYear: domain.AssetYear{
				Year:             year,
				CalendarYear:     calendarYear,
				Balance:          finmath.Cents(value),
				RealBalance:      finmath.Cents(realValue),
				Contribution:     finmath.Cents(principal),
				RealContribution: finmath.Cents(finmath.Deflate(principal, inflation)),
				YearlyGain:       finmath.Cents(value.Sub(prevValue)),
				RealYearlyGain:   finmath.Cents(realValue.Sub(prevRealValue)),
				TotalGain:        finmath.Cents(value.Sub(value0)),
				RealTotalGain:    finmath.Cents(realValue.Sub(value0)),
			},
			MortgageBalance:           finmath.Cents(mortgage.Balance),
			RealMortgageBalance:       finmath.Cents(finmath.Deflate(mortgage.Balance, inflation)),
			Equity:                    finmath.Cents(value.Sub(mortgage.Balance)),
			RealEquity:                finmath.Cents(finmath.Deflate(value.Sub(mortgage.Balance), inflation)),
			MonthlyPayment:            finmath.Cents(monthlyPayment),
			PrincipalInterestPayment:  finmath.Cents(piPayment),
			OtherFeesPayment:          finmath.Cents(mortgage.OtherFeesPayment),
			AnnualMortgagePayments:    finmath.Cents(payments),
			PrincipalPaid:             finmath.Cents(principal),
			InterestPaid:              finmath.Cents(interest),
			MonthlyRent:               finmath.Cents(rental.MonthlyRent),
			AnnualRentalIncome:        finmath.Cents(rental.AnnualRentalIncome),
			RealAnnualRentalIncome:    finmath.Cents(finmath.Deflate(rental.AnnualRentalIncome, inflation)),
			MaintenanceExpenses:       finmath.Cents(rental.MaintenanceExpenses),
			ListingExpenses:           finmath.Cents(rental.ListingExpenses),
			MonthlyManagementExpenses: finmath.Cents(rental.MonthlyManagementExpenses),
			TotalRentalExpenses:       finmath.Cents(rental.TotalRentalExpenses),
			OperatingCashFlow:         finmath.Cents(operating),
		}

		cashFlow := operating
		if isSaleYear {
			result := ce.CalculateSale(in, *sale, value, mortgage.Balance)
			row.IsSaleYear = true
			row.PreSaleMortgageBalance = result.PreSaleMortgageBalance
			row.SaleProceeds = result.NetSaleProceeds
			row.Sale = &result
			cashFlow = operating.Add(result.NetSaleProceeds)
			ce.Logger.Debugf("property sale in year %d: price=%s net=%s tax=%s",
				year, result.EffectiveSalePrice.StringFixed(2), result.NetSaleProceeds.StringFixed(2), result.TotalTax.StringFixed(2))
		}
		row.AnnualCashFlow = finmath.Cents(cashFlow)
		row.RealAnnualCashFlow = finmath.Cents(finmath.Deflate(cashFlow, inflation))

		if ce.Debug {
			ce.Logger.Debugf("property year %d: value=%s mortgage=%s principal=%s interest=%s cashflow=%s",
				year, row.Balance, row.MortgageBalance, row.PrincipalPaid, row.InterestPaid, row.AnnualCashFlow)
		}
		results = append(results, row)
		prevValue, prevRealValue = value, realValue
	}
	return results
}

// ProjectProperty projects with a default engine.
func ProjectProperty(in domain.PropertyInputs, sale *domain.SaleConfig) []domain.PropertyYear {
	return NewCalculationEngine().ProjectProperty(in, sale)
}

func initialPropertyYear(in domain.PropertyInputs, mortgage *Mortgage, value decimal.Decimal) domain.PropertyYear {
	row := domain.PropertyYear{
		AssetYear: domain.AssetYear{
			Year:         0,
			CalendarYear: dateutil.CalendarYear(in.StartingYear, 0),
			Balance:      finmath.Cents(value),
			RealBalance:  finmath.Cents(value),
		},
		MortgageBalance:          finmath.Cents(mortgage.Balance),
		RealMortgageBalance:      finmath.Cents(mortgage.Balance),
		Equity:                   finmath.Cents(value.Sub(mortgage.Balance)),
		RealEquity:               finmath.Cents(value.Sub(mortgage.Balance)),
		MonthlyPayment:           finmath.Cents(mortgage.CurrentMonthlyPayment()),
		PrincipalInterestPayment: finmath.Cents(mortgage.CurrentPI()),
		OtherFeesPayment:         finmath.Cents(mortgage.OtherFeesPayment),
	}
	if in.IsRentalProperty {
		row.MonthlyRent = finmath.Cents(in.MonthlyRent)
	}
	return row
}

// postSaleYear is a row after the sale: every monetary field stays zero.
func postSaleYear(year, calendarYear int) domain.PropertyYear {
	return domain.PropertyYear{
		AssetYear: domain.AssetYear{
			Year:         year,
			CalendarYear: calendarYear,
		},
		IsPostSale: true,
	}
}
