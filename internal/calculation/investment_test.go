package calculation

import (
	"testing"

	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func investment(initial, rate, inflation, contribution string, years int) domain.InvestmentInputs {
	in := domain.DefaultInvestmentInputs(2025)
	in.InitialAmount = d(initial)
	in.RateOfReturn = d(rate)
	in.InflationRate = d(inflation)
	in.AnnualContribution = d(contribution)
	in.Years = years
	return in
}

func TestInvestmentFirstYear(t *testing.T) {
	years := ProjectInvestment(investment("100000", "7", "2.5", "0", 1), nil)
	require.Len(t, years, 2)

	assert.Equal(t, 0, years[0].Year)
	assert.Equal(t, "100000.00", years[0].Balance.StringFixed(2))
	assert.Equal(t, "107000.00", years[1].Balance.StringFixed(2))
	assert.Equal(t, "104390.24", years[1].RealBalance.StringFixed(2))
	assert.Equal(t, "7000.00", years[1].YearlyGain.StringFixed(2))
	assert.Equal(t, 2026, years[1].CalendarYear)
}

func TestInvestmentContributions(t *testing.T) {
	years := ProjectInvestment(investment("10000", "0", "0", "1000", 3), nil)
	last := years[3]
	assert.Equal(t, "13000.00", last.Balance.StringFixed(2))
	assert.Equal(t, "3000.00", last.TotalContributions.StringFixed(2))
	assert.True(t, last.TotalGain.IsZero())
}

func TestInflationAdjustedContributions(t *testing.T) {
	in := investment("0", "0", "10", "1000", 2)
	in.InflationAdjustedContributions = true
	years := ProjectInvestment(in, nil)
	assert.Equal(t, "1100.00", years[1].Contribution.StringFixed(2))
	assert.Equal(t, "1000.00", years[1].RealContribution.StringFixed(2))
	assert.Equal(t, "1100.00", years[1].Balance.StringFixed(2))
	assert.Equal(t, "1000.00", years[1].RealBalance.StringFixed(2))
	assert.Equal(t, "1210.00", years[2].Contribution.StringFixed(2))
	assert.Equal(t, "1000.00", years[2].RealContribution.StringFixed(2))

	in.InflationAdjustedContributions = false
	years = ProjectInvestment(in, nil)
	assert.Equal(t, "1000.00", years[1].Contribution.StringFixed(2))
	assert.Equal(t, "909.09", years[1].RealContribution.StringFixed(2))
}

func TestLinkedCashFlowsApplyBeforeGrowth(t *testing.T) {
	years := ProjectInvestment(investment("0", "10", "0", "0", 2), []decimal.Decimal{d("1000")})
	assert.Equal(t, "1100.00", years[1].Balance.StringFixed(2))
	assert.Equal(t, "100.00", years[1].YearlyGain.StringFixed(2))
	assert.Equal(t, "1000.00", years[1].CashFlowContributions.StringFixed(2))
	assert.Equal(t, "100.00", years[1].TotalGain.StringFixed(2))
	// Missing entries count as zero.
	assert.Equal(t, "1210.00", years[2].Balance.StringFixed(2))
	assert.True(t, years[2].CashFlow.IsZero())
	assert.Equal(t, "210.00", years[2].TotalGain.StringFixed(2))

	years = ProjectInvestment(investment("5000", "0", "0", "0", 2), []decimal.Decimal{d("-1000"), d("-1000")})
	assert.Equal(t, "3000.00", years[2].Balance.StringFixed(2))
	assert.Equal(t, "2000.00", years[2].CashFlowWithdrawals.StringFixed(2))
	assert.Equal(t, "-2000.00", years[2].NetContributions.StringFixed(2))
	assert.True(t, years[2].TotalGain.IsZero())
}

func TestWithdrawalsCanDeplete(t *testing.T) {
	in := investment("1000", "0", "0", "-600", 2)
	years := ProjectInvestment(in, nil)
	assert.Equal(t, "-200.00", years[2].Balance.StringFixed(2))
	assert.Equal(t, "1200.00", years[2].TotalWithdrawals.StringFixed(2))

	summary := SummarizeInvestment(in, years)
	assert.Equal(t, 2, summary.DepletedYear)
}

func TestEmptyAccountIsNotDepleted(t *testing.T) {
	in := investment("0", "5", "0", "0", 2)
	years := ProjectInvestment(in, []decimal.Decimal{d("0"), d("1000")})
	summary := SummarizeInvestment(in, years)
	assert.Zero(t, summary.DepletedYear)
	assert.Equal(t, "1050.00", summary.FinalBalance.StringFixed(2))

	proj := NewCalculationEngine().ProjectInvestmentEntity(domain.Investment{ID: "inv", Inputs: in}, nil)
	for _, msg := range proj.ValidationErrors {
		assert.NotContains(t, msg, "depleted")
	}

	// A funded account drawn to exactly zero is depleted.
	in = investment("1000", "0", "0", "0", 2)
	years = ProjectInvestment(in, []decimal.Decimal{d("-1000")})
	assert.Equal(t, 1, SummarizeInvestment(in, years).DepletedYear)
}

func TestZeroInflationRealEqualsNominal(t *testing.T) {
	in := investment("50000", "6", "0", "2000", 5)
	in.InflationAdjustedContributions = true
	flows := []decimal.Decimal{d("500"), d("-300"), d("1000")}

	for _, y := range ProjectInvestment(in, flows) {
		assert.True(t, y.RealBalance.Equal(y.Balance), "year %d balance", y.Year)
		assert.True(t, y.RealContribution.Equal(y.Contribution), "year %d contribution", y.Year)
		assert.True(t, y.RealYearlyGain.Equal(y.YearlyGain), "year %d yearly gain", y.Year)
		assert.True(t, y.RealTotalGain.Equal(y.TotalGain), "year %d total gain", y.Year)
		assert.True(t, y.RealCashFlow.Equal(y.CashFlow), "year %d cash flow", y.Year)
	}
}

func TestNegativeRealGrowth(t *testing.T) {
	years := ProjectInvestment(investment("10000", "2", "5", "0", 5), nil)
	for i := 1; i < len(years); i++ {
		assert.True(t, years[i].RealBalance.LessThan(years[i-1].RealBalance), "year %d", i)
		assert.True(t, years[i].RealBalance.LessThan(years[i].Balance), "year %d", i)
		assert.True(t, years[i].Balance.GreaterThan(years[i-1].Balance), "year %d", i)
	}
}

func TestInvestmentZeroYears(t *testing.T) {
	years := ProjectInvestment(investment("100", "5", "2", "0", 0), nil)
	require.Len(t, years, 1)
	years = ProjectInvestment(investment("100", "5", "2", "0", -3), nil)
	require.Len(t, years, 1)
}

func TestSummarizeInvestment(t *testing.T) {
	in := investment("10000", "10", "0", "0", 1)
	s := SummarizeInvestment(in, ProjectInvestment(in, nil))
	assert.Equal(t, "11000.00", s.FinalBalance.StringFixed(2))
	assert.Equal(t, "1000.00", s.TotalEarnings.StringFixed(2))
	assert.Equal(t, "10.00", s.TotalReturnPercent.StringFixed(2))
	assert.Zero(t, s.DepletedYear)

	assert.Equal(t, domain.InvestmentSummary{}, SummarizeInvestment(in, nil))
}

func TestSummarizeProperty(t *testing.T) {
	in := rentalProperty()
	years := ProjectProperty(in, plannedSale(5, 12))
	s := SummarizeProperty(in, years)

	assert.Equal(t, "100000.00", s.InitialCashInvested.StringFixed(2))
	assert.True(t, s.Sold)
	assert.Equal(t, 2030, s.SaleCalendarYear)
	assert.True(t, s.FinalValue.IsZero())
	assert.True(t, s.FinalEquity.IsZero())
	assert.True(t, s.TotalRentalIncome.IsPositive())
	assert.True(t, s.NetAfterTaxProceeds.Equal(years[5].Sale.NetAfterTaxProceeds))

	kept := SummarizeProperty(in, ProjectProperty(in, nil))
	assert.False(t, kept.Sold)
	assert.InDelta(t, kept.FinalValue.Sub(kept.FinalMortgage).InexactFloat64(), kept.FinalEquity.InexactFloat64(), 0.011)
}
