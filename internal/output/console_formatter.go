package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/asset-projector/internal/domain"
)

// ConsoleFormatter provides a concise console summary, one line per asset.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.PortfolioProjection) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "ASSET PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if results.Name != "" {
		fmt.Fprintf(&buf, "Portfolio: %s\n", results.Name)
	}
	fmt.Fprintln(&buf)
	for _, inv := range sortedInvestments(results) {
		s := inv.Summary
		fmt.Fprintf(&buf, "%s: Final=%s Real=%s Earnings=%s Return=%s\n",
			inv.Name,
			FormatCurrency(s.FinalBalance),
			FormatCurrency(s.RealFinalBalance),
			FormatCurrency(s.TotalEarnings),
			FormatPercentage(s.TotalReturnPercent),
		)
	}
	for _, prop := range sortedProperties(results) {
		s := prop.Summary
		fmt.Fprintf(&buf, "%s: Value=%s Equity=%s CashFlow=%s Return=%s\n",
			prop.Name,
			FormatCurrency(s.FinalValue),
			FormatCurrency(s.FinalEquity),
			FormatCurrency(s.TotalCashFlow),
			FormatPercentage(s.TotalReturnPercent),
		)
		if s.Sold {
			fmt.Fprintf(&buf, "  Sold %d, after-tax proceeds %s\n", s.SaleCalendarYear, FormatCurrency(s.NetAfterTaxProceeds))
		}
	}
	totals := AnalyzePortfolio(results)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Combined: %s (real %s)\n", FormatCurrency(totals.Combined), FormatCurrency(totals.RealCombined))
	if n := countWarnings(results); n > 0 {
		fmt.Fprintf(&buf, "Warnings: %d\n", n)
	}
	return buf.Bytes(), nil
}

func countWarnings(results *domain.PortfolioProjection) int {
	n := len(results.ValidationErrors)
	for _, inv := range results.Investments {
		n += len(inv.ValidationErrors)
	}
	for _, prop := range results.Properties {
		n += len(prop.ValidationErrors)
	}
	return n
}
