package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/asset-projector/internal/domain"
)

// ConsoleVerboseFormatter renders per-year tables for every asset.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.PortfolioProjection) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "DETAILED ASSET PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	if results.Name != "" {
		fmt.Fprintf(&buf, "Portfolio: %s\n", results.Name)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)
	writeWarnings(&buf, "PORTFOLIO", results.ValidationErrors)

	for i, inv := range results.Investments {
		fmt.Fprintf(&buf, "INVESTMENT %d: %s\n", i+1, inv.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeInvestmentTable(&buf, inv)
		writeInvestmentSummary(&buf, inv.Summary)
		writeWarnings(&buf, inv.Name, inv.ValidationErrors)
		fmt.Fprintln(&buf)
	}

	for i, prop := range results.Properties {
		fmt.Fprintf(&buf, "PROPERTY %d: %s\n", i+1, prop.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "  Purchase Price:         %s\n", FormatCurrency(prop.Inputs.PurchasePrice))
		fmt.Fprintf(&buf, "  Down Payment:           %s\n", FormatCurrency(prop.Inputs.DownPayment()))
		if len(prop.Years) > 0 {
			y0 := prop.Years[0]
			fmt.Fprintf(&buf, "  Monthly P&I:            %s\n", FormatCurrency(y0.PrincipalInterestPayment))
			fmt.Fprintf(&buf, "  Monthly Payment:        %s\n", FormatCurrency(y0.MonthlyPayment))
		}
		fmt.Fprintln(&buf)
		writePropertyTable(&buf, prop)
		if row := prop.SaleYearRow(); row != nil && row.Sale != nil {
			writeSale(&buf, row.CalendarYear, row.Sale)
		}
		writePropertySummary(&buf, prop.Summary)
		writeWarnings(&buf, prop.Name, prop.ValidationErrors)
		fmt.Fprintln(&buf)
	}

	totals := AnalyzePortfolio(results)
	fmt.Fprintln(&buf, "PORTFOLIO TOTALS")
	fmt.Fprintln(&buf, "================")
	fmt.Fprintf(&buf, "Investment Balances:    %s (real %s)\n", FormatCurrency(totals.InvestmentBalance), FormatCurrency(totals.RealInvestmentBalance))
	fmt.Fprintf(&buf, "Property Equity:        %s (real %s)\n", FormatCurrency(totals.PropertyEquity), FormatCurrency(totals.RealPropertyEquity))
	fmt.Fprintf(&buf, "Combined:               %s (real %s)\n", FormatCurrency(totals.Combined), FormatCurrency(totals.RealCombined))
	if totals.PropertiesSold > 0 {
		fmt.Fprintf(&buf, "Properties Sold:        %d (taxes %s)\n", totals.PropertiesSold, FormatCurrency(totals.SaleTaxes))
	}
	if totals.LargestAsset != "" {
		fmt.Fprintf(&buf, "Largest Asset:          %s\n", totals.LargestAsset)
	}
	return buf.Bytes(), nil
}

func writeInvestmentTable(buf *bytes.Buffer, inv domain.InvestmentProjection) {
	fmt.Fprintf(buf, "%-6s %-6s %16s %16s %14s %14s %16s\n", "Year", "Cal", "Balance", "Real Balance", "Contribution", "Cash Flow", "Yearly Gain")
	for _, y := range inv.Years {
		fmt.Fprintf(buf, "%-6d %-6d %16s %16s %14s %14s %16s\n",
			y.Year, y.CalendarYear,
			FormatCurrency(y.Balance),
			FormatCurrency(y.RealBalance),
			FormatCurrency(y.Contribution),
			FormatCurrency(y.CashFlow),
			FormatCurrency(y.YearlyGain),
		)
	}
	fmt.Fprintln(buf)
}

func writeInvestmentSummary(buf *bytes.Buffer, s domain.InvestmentSummary) {
	fmt.Fprintf(buf, "  Final Balance:          %s\n", FormatCurrency(s.FinalBalance))
	fmt.Fprintf(buf, "  Real Final Balance:     %s\n", FormatCurrency(s.RealFinalBalance))
	fmt.Fprintf(buf, "  Net Contributions:      %s\n", FormatCurrency(s.NetContributions))
	fmt.Fprintf(buf, "  Total Earnings:         %s\n", FormatCurrency(s.TotalEarnings))
	fmt.Fprintf(buf, "  Total Return:           %s\n", FormatPercentage(s.TotalReturnPercent))
	if s.DepletedYear > 0 {
		fmt.Fprintf(buf, "  Depleted In Year:       %d\n", s.DepletedYear)
	}
}

func writePropertyTable(buf *bytes.Buffer, prop domain.PropertyProjection) {
	fmt.Fprintf(buf, "%-6s %-6s %16s %16s %16s %14s %14s\n", "Year", "Cal", "Value", "Mortgage", "Equity", "Rent", "Cash Flow")
	for _, y := range prop.Years {
		marker := ""
		switch {
		case y.IsSaleYear:
			marker = " SALE"
		case y.IsPostSale:
			marker = " sold"
		}
		fmt.Fprintf(buf, "%-6d %-6d %16s %16s %16s %14s %14s%s\n",
			y.Year, y.CalendarYear,
			FormatCurrency(y.Balance),
			FormatCurrency(y.MortgageBalance),
			FormatCurrency(y.Equity),
			FormatCurrency(y.AnnualRentalIncome),
			FormatCurrency(y.AnnualCashFlow),
			marker,
		)
	}
	fmt.Fprintln(buf)
}

func writeSale(buf *bytes.Buffer, calendarYear int, s *domain.SaleResult) {
	fmt.Fprintf(buf, "SALE (%d):\n", calendarYear)
	fmt.Fprintln(buf, "----------------------------------------")
	fmt.Fprintf(buf, "  Sale Price:             %s\n", FormatCurrency(s.EffectiveSalePrice))
	fmt.Fprintf(buf, "  Selling Costs:          %s\n", FormatCurrency(s.SellingCosts))
	fmt.Fprintf(buf, "  Mortgage Payoff:        %s\n", FormatCurrency(s.PreSaleMortgageBalance))
	fmt.Fprintf(buf, "  Net Sale Proceeds:      %s\n", FormatCurrency(s.NetSaleProceeds))
	fmt.Fprintf(buf, "  Adjusted Cost Basis:    %s\n", FormatCurrency(s.AdjustedCostBasis))
	fmt.Fprintf(buf, "  Capital Gain:           %s\n", FormatCurrency(s.CapitalGain))
	if s.Section121 != nil && s.Section121.AppliedExclusion.IsPositive() {
		fmt.Fprintf(buf, "  Section 121 Exclusion:  %s\n", FormatCurrency(s.Section121.AppliedExclusion))
	}
	fmt.Fprintf(buf, "  Taxable Gain:           %s\n", FormatCurrency(s.TaxableGain))
	fmt.Fprintf(buf, "  Federal Tax:            %s\n", FormatCurrency(s.FederalTax))
	fmt.Fprintf(buf, "  State Tax:              %s\n", FormatCurrency(s.StateTax))
	if s.Recapture != nil && s.Recapture.HasRecapture {
		label := "  Depreciation Recapture: %s\n"
		if s.Recapture.Estimated {
			label = "  Depreciation Recapture: %s (estimated)\n"
		}
		fmt.Fprintf(buf, label, FormatCurrency(s.Recapture.RecaptureTax))
	}
	fmt.Fprintf(buf, "  TOTAL TAX:              %s (%s)\n", FormatCurrency(s.TotalTax), FormatPercentage(s.EffectiveTaxRate))
	fmt.Fprintf(buf, "  After-Tax Proceeds:     %s\n", FormatCurrency(s.NetAfterTaxProceeds))
	fmt.Fprintln(buf)
}

func writePropertySummary(buf *bytes.Buffer, s domain.PropertySummary) {
	fmt.Fprintf(buf, "  Final Value:            %s\n", FormatCurrency(s.FinalValue))
	fmt.Fprintf(buf, "  Final Equity:           %s\n", FormatCurrency(s.FinalEquity))
	fmt.Fprintf(buf, "  Total Interest Paid:    %s\n", FormatCurrency(s.TotalInterestPaid))
	fmt.Fprintf(buf, "  Total Cash Flow:        %s\n", FormatCurrency(s.TotalCashFlow))
	fmt.Fprintf(buf, "  Total Return:           %s (%s)\n", FormatCurrency(s.TotalReturn), FormatPercentage(s.TotalReturnPercent))
}

func writeWarnings(buf *bytes.Buffer, owner string, msgs []string) {
	if len(msgs) == 0 {
		return
	}
	fmt.Fprintf(buf, "WARNINGS (%s):\n", owner)
	for _, m := range msgs {
		fmt.Fprintf(buf, "  - %s\n", m)
	}
	fmt.Fprintln(buf)
}
