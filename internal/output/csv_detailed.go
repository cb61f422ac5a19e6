package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/asset-projector/internal/domain"
)

// CSVDetailedExporter provides one row per asset per projection year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

var csvDetailedHeader = []string{"Type", "ID", "Name", "Year", "CalendarYear", "Balance", "RealBalance", "Contribution", "YearlyGain", "TotalGain", "RealTotalGain", "CashFlow", "MortgageBalance", "Equity", "RentalIncome", "RentalExpenses", "InterestPaid", "IsSaleYear", "IsPostSale"}

func (c CSVDetailedExporter) Format(results *domain.PortfolioProjection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvDetailedHeader); err != nil {
		return nil, err
	}
	for _, inv := range sortedInvestments(results) {
		for _, yr := range inv.Years {
			row := append(assetColumns("investment", inv.ID, inv.Name, yr.AssetYear),
				yr.CashFlow.StringFixed(2),
				"", "", "", "", "",
				boolToString(false),
				boolToString(false),
			)
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	for _, prop := range sortedProperties(results) {
		for _, yr := range prop.Years {
			row := append(assetColumns("property", prop.ID, prop.Name, yr.AssetYear),
				yr.AnnualCashFlow.StringFixed(2),
				yr.MortgageBalance.StringFixed(2),
				yr.Equity.StringFixed(2),
				yr.AnnualRentalIncome.StringFixed(2),
				yr.TotalRentalExpenses.StringFixed(2),
				yr.InterestPaid.StringFixed(2),
				boolToString(yr.IsSaleYear),
				boolToString(yr.IsPostSale),
			)
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func assetColumns(kind, id, name string, y domain.AssetYear) []string {
	return []string{
		kind,
		id,
		name,
		intToString(y.Year),
		intToString(y.CalendarYear),
		y.Balance.StringFixed(2),
		y.RealBalance.StringFixed(2),
		y.Contribution.StringFixed(2),
		y.YearlyGain.StringFixed(2),
		y.TotalGain.StringFixed(2),
		y.RealTotalGain.StringFixed(2),
	}
}
