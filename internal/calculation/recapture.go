package calculation

import (
	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// RecaptureInput holds what the unrecaptured Section 1250 computation needs.
type RecaptureInput struct {
	TotalDepreciationTaken decimal.Decimal
	AnnualIncome           decimal.Decimal
	FilingStatus           domain.FilingStatus
}

// DepreciationRecaptureCalculator taxes prior depreciation at
// min(ordinary bracket rate, 25%).
type DepreciationRecaptureCalculator struct {
	Table           *TaxBracketTable
	MaxRate         decimal.Decimal
	ResidentialLife decimal.Decimal
	CommercialLife  decimal.Decimal
}

// NewDepreciationRecaptureCalculator creates a calculator over table; nil
// uses the 2024 tables.
func NewDepreciationRecaptureCalculator(table *TaxBracketTable) *DepreciationRecaptureCalculator {
	if table == nil {
		table = NewTaxBracketTable2024()
	}
	return &DepreciationRecaptureCalculator{
		Table:           table,
		MaxRate:         decimal.RequireFromString("0.25"),
		ResidentialLife: decimal.RequireFromString("27.5"),
		CommercialLife:  decimal.NewFromInt(39),
	}
}

// CalculateRecapture computes the recapture tax.
func (c *DepreciationRecaptureCalculator) CalculateRecapture(in RecaptureInput) domain.RecaptureResult {
	rate := decimal.Min(c.Table.OrdinaryRate(in.AnnualIncome, in.FilingStatus), c.MaxRate)
	if !in.TotalDepreciationTaken.IsPositive() {
		return domain.RecaptureResult{
			HasRecapture:           false,
			TotalDepreciationTaken: decimal.Zero,
			RecaptureRate:          rate,
			RecaptureTax:           decimal.Zero,
		}
	}
	return domain.RecaptureResult{
		HasRecapture:           true,
		TotalDepreciationTaken: in.TotalDepreciationTaken,
		RecaptureRate:          rate,
		RecaptureTax:           in.TotalDepreciationTaken.Mul(rate),
	}
}

// CalculateAnnualDepreciation is straight-line depreciation of the building
// (value less land) over 27.5 years residential or 39 years commercial.
func (c *DepreciationRecaptureCalculator) CalculateAnnualDepreciation(value, landValue decimal.Decimal, isResidential bool) decimal.Decimal {
	basis := value.Sub(landValue)
	if !basis.IsPositive() {
		return decimal.Zero
	}
	life := c.CommercialLife
	if isResidential {
		life = c.ResidentialLife
	}
	return basis.Div(life)
}

// CalculateTotalDepreciation multiplies annual depreciation by a (possibly
// fractional) holding period.
func (c *DepreciationRecaptureCalculator) CalculateTotalDepreciation(annual, yearsOwned decimal.Decimal) decimal.Decimal {
	if !yearsOwned.IsPositive() {
		return decimal.Zero
	}
	return annual.Mul(yearsOwned)
}
