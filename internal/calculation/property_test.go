package calculation

import (
	"testing"

	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseProperty() domain.PropertyInputs {
	in := domain.DefaultPropertyInputs(2025)
	in.PurchasePrice = d("500000")
	in.DownPaymentPercentage = d("20")
	in.InterestRate = d("7")
	in.LoanTerm = 30
	return in
}

func rentalProperty() domain.PropertyInputs {
	in := baseProperty()
	in.IsRentalProperty = true
	in.MonthlyRent = d("3000")
	in.VacancyRate = d("5")
	in.MaintenanceRate = d("1")
	in.PropertyManagementEnabled = true
	in.ListingFeeRate = d("100")
	in.MonthlyManagementFeeRate = d("8")
	return in
}

func plannedSale(year, month int) *domain.SaleConfig {
	sale := domain.DefaultSaleConfig()
	sale.IsPlannedForSale = true
	sale.SaleYear = year
	sale.SaleMonth = month
	sale.EnableSection121 = false
	return &sale
}

func TestMortgageSetup(t *testing.T) {
	years := ProjectProperty(baseProperty(), nil)
	require.Len(t, years, 11)

	first := years[0]
	assert.Equal(t, "400000.00", first.MortgageBalance.StringFixed(2))
	assert.Equal(t, "2661.21", first.MonthlyPayment.StringFixed(2))
	assert.Equal(t, "2661.21", first.PrincipalInterestPayment.StringFixed(2))
	assert.True(t, first.OtherFeesPayment.IsZero())
	assert.Equal(t, 2025, first.CalendarYear)
	assert.Equal(t, "100000.00", first.Equity.StringFixed(2))
}

func TestMortgageAmortizesToZeroAtTerm(t *testing.T) {
	for _, payment := range []string{"0", "3500"} {
		t.Run("payment "+payment, func(t *testing.T) {
			in := baseProperty()
			in.Years = 35
			in.UserMonthlyPayment = d(payment)
			years := ProjectProperty(in, nil)
			require.Len(t, years, 36)

			for i := 1; i < len(years); i++ {
				assert.False(t, years[i].MortgageBalance.GreaterThan(years[i-1].MortgageBalance),
					"balance rose in year %d", i)
			}
			assert.True(t, years[29].MortgageBalance.IsPositive())
			assert.True(t, years[30].MortgageBalance.IsZero(), "got %s", years[30].MortgageBalance)
			for _, y := range years[31:] {
				assert.True(t, y.MortgageBalance.IsZero())
				assert.True(t, y.InterestPaid.IsZero())
				assert.True(t, y.PrincipalInterestPayment.IsZero())
			}
		})
	}
}

func TestUserPaymentDoesNotAccelerateAmortization(t *testing.T) {
	plain := ProjectProperty(baseProperty(), nil)

	in := baseProperty()
	in.UserMonthlyPayment = d("3000")
	withFees := ProjectProperty(in, nil)

	for i := range plain {
		assert.True(t, plain[i].MortgageBalance.Equal(withFees[i].MortgageBalance), "year %d", i)
	}
	assert.Equal(t, "338.79", withFees[1].OtherFeesPayment.StringFixed(2))
	assert.Equal(t, "3000.00", withFees[1].MonthlyPayment.StringFixed(2))
	// Non-rental: the whole payment is an outflow.
	assert.Equal(t, "-36000.00", withFees[1].AnnualCashFlow.StringFixed(2))
}

func TestFastForwardYearsBought(t *testing.T) {
	in := baseProperty()
	in.YearsBought = 5
	years := ProjectProperty(in, nil)

	fresh := baseProperty()
	fresh.Years = 5
	reference := ProjectProperty(fresh, nil)
	assert.True(t, reference[5].MortgageBalance.Equal(years[0].MortgageBalance))

	in.YearsBought = 40
	paidOff := ProjectProperty(in, nil)
	assert.True(t, paidOff[0].MortgageBalance.IsZero())
	assert.True(t, paidOff[0].PrincipalInterestPayment.IsZero())
	assert.True(t, paidOff[1].AnnualCashFlow.IsZero())
}

func TestZeroLoanAndZeroRate(t *testing.T) {
	in := baseProperty()
	in.DownPaymentPercentage = d("100")
	years := ProjectProperty(in, nil)
	assert.True(t, years[0].MortgageBalance.IsZero())
	assert.True(t, years[0].MonthlyPayment.IsZero())

	in = baseProperty()
	in.InterestRate = d("0")
	in.LoanTerm = 10
	years = ProjectProperty(in, nil)
	assert.Equal(t, "3333.33", years[0].MonthlyPayment.StringFixed(2))
	assert.True(t, years[10].MortgageBalance.IsZero())
	assert.Equal(t, "40000.00", years[1].PrincipalPaid.StringFixed(2))
}

func TestLoanWithoutTermIsHeld(t *testing.T) {
	in := baseProperty()
	in.LoanTerm = 0
	years := ProjectProperty(in, nil)
	for _, y := range years {
		assert.Equal(t, "400000.00", y.MortgageBalance.StringFixed(2), "year %d", y.Year)
		assert.True(t, y.MonthlyPayment.IsZero(), "year %d", y.Year)
	}
	assert.True(t, years[1].PrincipalPaid.IsZero())
	assert.True(t, years[1].InterestPaid.IsZero())
	assert.True(t, years[1].AnnualMortgagePayments.IsZero())
}

func TestPropertyValueGrowthModels(t *testing.T) {
	in := baseProperty()
	in.YearsBought = 2
	assert.Equal(t, "530450.00", PropertyValue(in, 0).StringFixed(2))

	in.PropertyGrowthModel = domain.GrowthFromCurrentValue
	in.CurrentEstimatedValue = d("600000")
	assert.Equal(t, "600000.00", PropertyValue(in, 0).StringFixed(2))
	assert.Equal(t, "618000.00", PropertyValue(in, 1).StringFixed(2))

	// Without an estimate the purchase-price model applies.
	in.CurrentEstimatedValue = decimal.Zero
	assert.Equal(t, "530450.00", PropertyValue(in, 0).StringFixed(2))
}

func TestListingEventsPerYear(t *testing.T) {
	tests := []struct {
		vacancy string
		want    string
	}{
		{"0", "0.00"},
		{"5", "0.60"},
		{"10", "1.20"},
		{"50", "6.00"},
		{"100", "12.00"},
		{"-3", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.vacancy, func(t *testing.T) {
			assert.Equal(t, tt.want, ListingEventsPerYear(d(tt.vacancy)).StringFixed(2))
		})
	}
}

func TestRentalFigures(t *testing.T) {
	in := rentalProperty()
	in.MonthlyRent = d("2000")
	value := PropertyValue(in, 1)

	r := RentalForYear(in, 1, value)
	assert.Equal(t, "2000.00", r.MonthlyRent.StringFixed(2))
	assert.Equal(t, "22800.00", r.AnnualRentalIncome.StringFixed(2))
	assert.Equal(t, "1824.00", r.MonthlyManagementExpenses.StringFixed(2))
	assert.Equal(t, "1200.00", r.ListingExpenses.StringFixed(2))
	assert.Equal(t, "5150.00", r.MaintenanceExpenses.StringFixed(2))
	assert.Equal(t, "8174.00", r.TotalRentalExpenses.StringFixed(2))

	// Rent grows from year 2.
	r2 := RentalForYear(in, 2, value)
	assert.Equal(t, "2060.00", r2.MonthlyRent.StringFixed(2))

	in.PropertyManagementEnabled = false
	r = RentalForYear(in, 1, value)
	assert.True(t, r.ListingExpenses.IsZero())
	assert.True(t, r.MonthlyManagementExpenses.IsZero())

	in.IsRentalProperty = false
	assert.True(t, RentalForYear(in, 1, value).AnnualRentalIncome.IsZero())
}

func TestRentalCashFlow(t *testing.T) {
	years := ProjectProperty(rentalProperty(), nil)
	y := years[1]
	want := y.AnnualRentalIncome.Sub(y.TotalRentalExpenses).Sub(y.AnnualMortgagePayments)
	assert.InDelta(t, want.InexactFloat64(), y.AnnualCashFlow.InexactFloat64(), 0.02)
	assert.True(t, y.OperatingCashFlow.Equal(y.AnnualCashFlow))
}

func TestNonRentalCashFlowNeverPositive(t *testing.T) {
	in := baseProperty()
	in.Years = 40
	for _, y := range ProjectProperty(in, nil) {
		assert.False(t, y.AnnualCashFlow.IsPositive(), "year %d", y.Year)
	}
}

func TestSaleStateMachine(t *testing.T) {
	in := rentalProperty()
	years := ProjectProperty(in, plannedSale(5, 6))
	require.Len(t, years, 11)

	for _, y := range years[1:5] {
		assert.False(t, y.IsSaleYear, "year %d", y.Year)
		assert.False(t, y.IsPostSale, "year %d", y.Year)
		assert.Nil(t, y.Sale)
	}

	sale := years[5]
	assert.True(t, sale.IsSaleYear)
	assert.False(t, sale.IsPostSale)
	require.NotNil(t, sale.Sale)
	assert.True(t, sale.PreSaleMortgageBalance.Equal(sale.MortgageBalance))
	assert.True(t, sale.SaleProceeds.Equal(sale.Sale.NetSaleProceeds))
	assert.InDelta(t, sale.OperatingCashFlow.Add(sale.SaleProceeds).InexactFloat64(), sale.AnnualCashFlow.InexactFloat64(), 0.01)

	for _, y := range years[6:] {
		assert.True(t, y.IsPostSale, "year %d", y.Year)
		assert.False(t, y.IsSaleYear)
		for name, v := range map[string]decimal.Decimal{
			"balance":             y.Balance,
			"mortgageBalance":     y.MortgageBalance,
			"monthlyPayment":      y.MonthlyPayment,
			"principalInterest":   y.PrincipalInterestPayment,
			"annualCashFlow":      y.AnnualCashFlow,
			"annualRentalIncome":  y.AnnualRentalIncome,
			"totalRentalExpenses": y.TotalRentalExpenses,
			"realBalance":         y.RealBalance,
		} {
			assert.True(t, v.IsZero(), "year %d %s = %s", y.Year, name, v)
		}
		assert.Equal(t, 2025+y.Year, y.CalendarYear)
	}
}

func TestSaleYearProration(t *testing.T) {
	in := rentalProperty()
	full := ProjectProperty(in, nil)
	sold := ProjectProperty(in, plannedSale(5, 6))

	half := full[5].AnnualRentalIncome.Div(d("2"))
	assert.InDelta(t, half.InexactFloat64(), sold[5].AnnualRentalIncome.InexactFloat64(), 0.01)
	halfExp := full[5].TotalRentalExpenses.Div(d("2"))
	assert.InDelta(t, halfExp.InexactFloat64(), sold[5].TotalRentalExpenses.InexactFloat64(), 0.01)
	// Six payments in the sale year, so the balance is above the full-year one.
	assert.True(t, sold[5].MortgageBalance.GreaterThan(full[5].MortgageBalance))
	assert.True(t, sold[5].MortgageBalance.LessThan(full[4].MortgageBalance))
}

func TestSaleOutsideHorizonIsIgnored(t *testing.T) {
	in := baseProperty()
	for _, year := range []int{0, 11} {
		years := ProjectProperty(in, plannedSale(year, 12))
		for _, y := range years {
			assert.False(t, y.IsSaleYear)
			assert.False(t, y.IsPostSale)
		}
	}

	notPlanned := plannedSale(3, 12)
	notPlanned.IsPlannedForSale = false
	for _, y := range ProjectProperty(in, notPlanned) {
		assert.False(t, y.IsSaleYear)
	}
}

func TestRealValuesAgainstNominal(t *testing.T) {
	in := rentalProperty()
	for _, y := range ProjectProperty(in, nil)[1:] {
		assert.True(t, y.RealBalance.LessThan(y.Balance), "year %d", y.Year)
		assert.True(t, y.RealAnnualRentalIncome.LessThan(y.AnnualRentalIncome), "year %d", y.Year)
		assert.False(t, y.RealAnnualCashFlow.Abs().GreaterThan(y.AnnualCashFlow.Abs()), "year %d", y.Year)
	}

	in.InflationRate = decimal.Zero
	for _, y := range ProjectProperty(in, plannedSale(7, 3)) {
		assert.True(t, y.RealBalance.Equal(y.Balance), "year %d", y.Year)
		assert.True(t, y.RealEquity.Equal(y.Equity), "year %d", y.Year)
		assert.True(t, y.RealMortgageBalance.Equal(y.MortgageBalance), "year %d", y.Year)
		assert.True(t, y.RealAnnualCashFlow.Equal(y.AnnualCashFlow), "year %d", y.Year)
		assert.True(t, y.RealYearlyGain.Equal(y.YearlyGain), "year %d", y.Year)
		assert.True(t, y.RealTotalGain.Equal(y.TotalGain), "year %d", y.Year)
	}
}

func TestProjectionIsIdempotent(t *testing.T) {
	in := rentalProperty()
	sale := plannedSale(4, 9)
	assert.Equal(t, ProjectProperty(in, sale), ProjectProperty(in, sale))
}
