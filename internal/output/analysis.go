package output

import (
	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// PortfolioTotals aggregates the final year of every asset in a projection.
type PortfolioTotals struct {
	InvestmentBalance     decimal.Decimal
	RealInvestmentBalance decimal.Decimal
	PropertyEquity        decimal.Decimal
	RealPropertyEquity    decimal.Decimal
	// Combined is investment balances plus property equity.
	Combined     decimal.Decimal
	RealCombined decimal.Decimal

	PropertiesSold      int
	NetAfterTaxProceeds decimal.Decimal
	SaleTaxes           decimal.Decimal

	// LargestAsset names the asset with the highest final balance or equity.
	LargestAsset       string
	LargestAssetAmount decimal.Decimal
	DepletedAccounts   []string
}

// AnalyzePortfolio totals the final year of each projection.
func AnalyzePortfolio(results *domain.PortfolioProjection) PortfolioTotals {
	var t PortfolioTotals
	consider := func(name string, amount decimal.Decimal) {
		if t.LargestAsset == "" || amount.GreaterThan(t.LargestAssetAmount) {
			t.LargestAsset = name
			t.LargestAssetAmount = amount
		}
	}

	for _, inv := range results.Investments {
		t.InvestmentBalance = t.InvestmentBalance.Add(inv.Summary.FinalBalance)
		t.RealInvestmentBalance = t.RealInvestmentBalance.Add(inv.Summary.RealFinalBalance)
		if inv.Summary.DepletedYear > 0 {
			t.DepletedAccounts = append(t.DepletedAccounts, inv.Name)
		}
		consider(inv.Name, inv.Summary.FinalBalance)
	}
	for _, prop := range results.Properties {
		t.PropertyEquity = t.PropertyEquity.Add(prop.Summary.FinalEquity)
		if n := len(prop.Years); n > 0 {
			t.RealPropertyEquity = t.RealPropertyEquity.Add(prop.Years[n-1].RealEquity)
		}
		if row := prop.SaleYearRow(); row != nil && row.Sale != nil {
			t.PropertiesSold++
			t.NetAfterTaxProceeds = t.NetAfterTaxProceeds.Add(row.Sale.NetAfterTaxProceeds)
			t.SaleTaxes = t.SaleTaxes.Add(row.Sale.TotalTax)
		}
		consider(prop.Name, prop.Summary.FinalEquity)
	}

	t.Combined = t.InvestmentBalance.Add(t.PropertyEquity)
	t.RealCombined = t.RealInvestmentBalance.Add(t.RealPropertyEquity)
	return t
}
