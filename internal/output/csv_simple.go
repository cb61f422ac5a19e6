package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/asset-projector/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per asset).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

var csvSummaryHeader = []string{"Type", "ID", "Name", "StartingYear", "Years", "FinalBalance", "RealFinalBalance", "Invested", "TotalGain", "TotalReturnPercent", "Sold", "SaleYear", "NetAfterTaxProceeds", "Warnings"}

func (c CSVSummarizer) Format(results *domain.PortfolioProjection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvSummaryHeader); err != nil {
		return nil, err
	}
	for _, inv := range sortedInvestments(results) {
		s := inv.Summary
		row := []string{
			"investment",
			inv.ID,
			inv.Name,
			intToString(inv.Inputs.StartingYear),
			intToString(inv.Inputs.Years),
			s.FinalBalance.StringFixed(2),
			s.RealFinalBalance.StringFixed(2),
			inv.Inputs.InitialAmount.Add(s.NetContributions).StringFixed(2),
			s.TotalEarnings.StringFixed(2),
			s.TotalReturnPercent.StringFixed(2),
			boolToString(false),
			"",
			"",
			intToString(len(inv.ValidationErrors)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	for _, prop := range sortedProperties(results) {
		s := prop.Summary
		saleYear, proceeds := "", ""
		if s.Sold {
			saleYear = intToString(s.SaleCalendarYear)
			proceeds = s.NetAfterTaxProceeds.StringFixed(2)
		}
		row := []string{
			"property",
			prop.ID,
			prop.Name,
			intToString(prop.Inputs.StartingYear),
			intToString(prop.Inputs.Years),
			s.FinalValue.StringFixed(2),
			s.RealFinalValue.StringFixed(2),
			s.InitialCashInvested.StringFixed(2),
			s.TotalReturn.StringFixed(2),
			s.TotalReturnPercent.StringFixed(2),
			boolToString(s.Sold),
			saleYear,
			proceeds,
			intToString(len(prop.ValidationErrors)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
