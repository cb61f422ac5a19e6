package calculation

import (
	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// FederalTaxCalculator handles federal long-term capital-gains tax.
type FederalTaxCalculator struct {
	Table *TaxBracketTable
}

// NewFederalTaxCalculator creates a federal calculator over table; nil uses
// the 2024 tables.
func NewFederalTaxCalculator(table *TaxBracketTable) *FederalTaxCalculator {
	if table == nil {
		table = NewTaxBracketTable2024()
	}
	return &FederalTaxCalculator{Table: table}
}

// GetCapitalGainsRate returns the flat rate of the bracket containing income.
func (ftc *FederalTaxCalculator) GetCapitalGainsRate(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return ftc.Table.CapitalGainsRate(income, status)
}

// CalculateFederalTax applies the bracket rate for income to the whole gain.
// Losses are floored at zero.
func (ftc *FederalTaxCalculator) CalculateFederalTax(gain, income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if !gain.IsPositive() {
		return decimal.Zero
	}
	return gain.Mul(ftc.GetCapitalGainsRate(income, status))
}

// TaxableGain combines a gain with other gains and carryover losses, floored
// at zero. Carryover losses are subtracted by absolute value.
func TaxableGain(gain, otherGains, carryoverLosses decimal.Decimal) decimal.Decimal {
	taxable := gain.Add(otherGains).Sub(carryoverLosses.Abs())
	if taxable.IsNegative() {
		return decimal.Zero
	}
	return taxable
}

// CalculateAdjustedFederalTax returns the federal tax and the taxable gain
// after other gains and carryover losses.
func (ftc *FederalTaxCalculator) CalculateAdjustedFederalTax(gain, otherGains, carryoverLosses, income decimal.Decimal, status domain.FilingStatus) (decimal.Decimal, decimal.Decimal) {
	taxable := TaxableGain(gain, otherGains, carryoverLosses)
	return ftc.CalculateFederalTax(taxable, income, status), taxable
}

// StateTaxCalculator applies a simplified flat state rate to a gain.
type StateTaxCalculator struct {
	Table *TaxBracketTable
}

// NewStateTaxCalculator creates a state calculator over table; nil uses the
// 2024 tables.
func NewStateTaxCalculator(table *TaxBracketTable) *StateTaxCalculator {
	if table == nil {
		table = NewTaxBracketTable2024()
	}
	return &StateTaxCalculator{Table: table}
}

// CalculateStateTax returns the tax and the rate used. Unknown states and
// non-positive gains yield zero tax.
func (stc *StateTaxCalculator) CalculateStateTax(gain decimal.Decimal, state string) (decimal.Decimal, decimal.Decimal) {
	rate, _ := stc.Table.StateRate(state)
	if !gain.IsPositive() {
		return decimal.Zero, rate
	}
	return gain.Mul(rate), rate
}

// ComprehensiveTaxCalculator bundles the calculators the sale waterfall needs.
type ComprehensiveTaxCalculator struct {
	Table          *TaxBracketTable
	FederalTaxCalc *FederalTaxCalculator
	StateTaxCalc   *StateTaxCalculator
	Section121Calc *Section121Calculator
	RecaptureCalc  *DepreciationRecaptureCalculator
}

// NewComprehensiveTaxCalculator creates calculators sharing the 2024 tables.
func NewComprehensiveTaxCalculator() *ComprehensiveTaxCalculator {
	return NewComprehensiveTaxCalculatorWithTable(NewTaxBracketTable2024())
}

// NewComprehensiveTaxCalculatorWithTable creates calculators sharing table.
func NewComprehensiveTaxCalculatorWithTable(table *TaxBracketTable) *ComprehensiveTaxCalculator {
	if table == nil {
		table = NewTaxBracketTable2024()
	}
	return &ComprehensiveTaxCalculator{
		Table:          table,
		FederalTaxCalc: NewFederalTaxCalculator(table),
		StateTaxCalc:   NewStateTaxCalculator(table),
		Section121Calc: NewSection121Calculator(),
		RecaptureCalc:  NewDepreciationRecaptureCalculator(table),
	}
}
