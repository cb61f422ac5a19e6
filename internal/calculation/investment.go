package calculation

import (
	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/rpgo/asset-projector/pkg/dateutil"
	"github.com/rpgo/asset-projector/pkg/finmath"
	"github.com/shopspring/decimal"
)

// ProjectInvestment runs the year-by-year investment projection.
// linkedCashFlows[y-1] is added to the balance before growth in year y;
// missing entries count as zero.
func (ce *CalculationEngine) ProjectInvestment(in domain.InvestmentInputs, linkedCashFlows []decimal.Decimal) []domain.InvestmentYear {
	years := in.Years
	if years < 0 {
		years = 0
	}
	results := make([]domain.InvestmentYear, 0, years+1)
	initial := in.InitialAmount
	results = append(results, domain.InvestmentYear{
		AssetYear: domain.AssetYear{
			Year:         0,
			CalendarYear: dateutil.CalendarYear(in.StartingYear, 0),
			Balance:      finmath.Cents(initial),
			RealBalance:  finmath.Cents(initial),
		},
	})

	growth := finmath.One.Add(finmath.FromPercent(in.RateOfReturn))
	realGrowth := finmath.RealGrowthFactor(in.RateOfReturn, in.InflationRate)

	balance, realBalance := initial, initial
	var contributed, withdrawn, flowedIn, flowedOut, realNet decimal.Decimal

	for year := 1; year <= years; year++ {
		inflation := finmath.GrowthFactor(in.InflationRate, year)

		contribution := in.AnnualContribution
		realContribution := in.AnnualContribution
		if in.InflationAdjustedContributions {
			contribution = in.AnnualContribution.Mul(inflation)
		} else {
			realContribution = finmath.Deflate(contribution, inflation)
		}

		cashFlow := decimal.Zero
		if year-1 < len(linkedCashFlows) {
			cashFlow = linkedCashFlows[year-1]
		}
		realCashFlow := finmath.Deflate(cashFlow, inflation)

		yearlyGain := balance.Add(cashFlow).Mul(growth.Sub(finmath.One))
		balance = finmath.Bound(balance.Add(cashFlow).Mul(growth).Add(contribution))

		realYearlyGain := realBalance.Add(realCashFlow).Mul(realGrowth.Sub(finmath.One))
		realBalance = finmath.Bound(realBalance.Add(realCashFlow).Mul(realGrowth).Add(realContribution))

		if contribution.IsNegative() {
			withdrawn = withdrawn.Add(contribution.Abs())
		} else {
			contributed = contributed.Add(contribution)
		}
		if cashFlow.IsNegative() {
			flowedOut = flowedOut.Add(cashFlow.Abs())
		} else {
			flowedIn = flowedIn.Add(cashFlow)
		}
		net := contributed.Sub(withdrawn).Add(flowedIn).Sub(flowedOut)
		realNet = realNet.Add(realContribution).Add(realCashFlow)

		results = append(results, domain.InvestmentYear{
			AssetYear: domain.AssetYear{
				Year:             year,
				CalendarYear:     dateutil.CalendarYear(in.StartingYear, year),
				Balance:          finmath.Cents(balance),
				RealBalance:      finmath.Cents(realBalance),
				Contribution:     finmath.Cents(contribution),
				RealContribution: finmath.Cents(realContribution),
				YearlyGain:       finmath.Cents(yearlyGain),
				RealYearlyGain:   finmath.Cents(realYearlyGain),
				TotalGain:        finmath.Cents(balance.Sub(initial).Sub(net)),
				RealTotalGain:    finmath.Cents(realBalance.Sub(initial).Sub(realNet)),
			},
			CashFlow:              finmath.Cents(cashFlow),
			RealCashFlow:          finmath.Cents(realCashFlow),
			TotalContributions:    finmath.Cents(contributed),
			TotalWithdrawals:      finmath.Cents(withdrawn),
			CashFlowContributions: finmath.Cents(flowedIn),
			CashFlowWithdrawals:   finmath.Cents(flowedOut),
			NetContributions:      finmath.Cents(net),
		})
	}
	return results
}

// ProjectInvestment projects with a default engine.
func ProjectInvestment(in domain.InvestmentInputs, linkedCashFlows []decimal.Decimal) []domain.InvestmentYear {
	return NewCalculationEngine().ProjectInvestment(in, linkedCashFlows)
}
