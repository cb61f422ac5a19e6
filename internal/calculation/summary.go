package calculation

import (
	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/rpgo/asset-projector/pkg/finmath"
	"github.com/shopspring/decimal"
)

// SummarizeInvestment derives the aggregate view of an investment projection.
func SummarizeInvestment(in domain.InvestmentInputs, years []domain.InvestmentYear) domain.InvestmentSummary {
	if len(years) == 0 {
		return domain.InvestmentSummary{}
	}
	last := years[len(years)-1]

	// An account that has never held money is waiting for flows, not depleted.
	depleted := 0
	funded := years[0].Balance.IsPositive()
	for _, y := range years[1:] {
		if y.Balance.IsNegative() || (funded && !y.Balance.IsPositive()) {
			depleted = y.Year
			break
		}
		if y.Balance.IsPositive() {
			funded = true
		}
	}

	invested := in.InitialAmount.Add(last.NetContributions)
	returnPct := decimal.Zero
	if invested.IsPositive() {
		returnPct = last.TotalGain.Div(invested).Mul(finmath.Hundred)
	}

	return domain.InvestmentSummary{
		FinalBalance:       last.Balance,
		RealFinalBalance:   last.RealBalance,
		TotalContributions: last.TotalContributions,
		TotalWithdrawals:   last.TotalWithdrawals,
		NetCashFlow:        last.CashFlowContributions.Sub(last.CashFlowWithdrawals),
		NetContributions:   last.NetContributions,
		TotalEarnings:      last.TotalGain,
		RealTotalEarnings:  last.RealTotalGain,
		TotalReturnPercent: finmath.Cents(returnPct),
		DepletedYear:       depleted,
	}
}

// SummarizeProperty derives the aggregate view of a property projection.
// Total return is final equity plus all cash flow (sale proceeds included)
// less sale taxes and the down payment.
func SummarizeProperty(in domain.PropertyInputs, years []domain.PropertyYear) domain.PropertySummary {
	if len(years) == 0 {
		return domain.PropertySummary{}
	}
	s := domain.PropertySummary{
		InitialCashInvested: finmath.Cents(in.DownPayment()),
	}
	saleTax := decimal.Zero
	for _, y := range years[1:] {
		s.TotalRentalIncome = s.TotalRentalIncome.Add(y.AnnualRentalIncome)
		s.TotalRentalExpenses = s.TotalRentalExpenses.Add(y.TotalRentalExpenses)
		s.TotalInterestPaid = s.TotalInterestPaid.Add(y.InterestPaid)
		s.TotalPrincipalPaid = s.TotalPrincipalPaid.Add(y.PrincipalPaid)
		s.TotalCashFlow = s.TotalCashFlow.Add(y.AnnualCashFlow)
		if y.IsSaleYear && y.Sale != nil {
			s.Sold = true
			s.SaleCalendarYear = y.CalendarYear
			s.NetAfterTaxProceeds = y.Sale.NetAfterTaxProceeds
			saleTax = y.Sale.TotalTax
		}
	}

	last := years[len(years)-1]
	s.FinalValue = last.Balance
	s.RealFinalValue = last.RealBalance
	s.FinalEquity = last.Equity
	s.FinalMortgage = last.MortgageBalance
	if last.IsPostSale {
		s.FinalEquity = decimal.Zero
	}

	s.TotalReturn = s.FinalEquity.Add(s.TotalCashFlow).Sub(saleTax).Sub(s.InitialCashInvested)
	if s.InitialCashInvested.IsPositive() {
		s.TotalReturnPercent = finmath.Cents(s.TotalReturn.Div(s.InitialCashInvested).Mul(finmath.Hundred))
	}
	return s
}
