package calculation

import (
	"testing"

	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapitalGainsRate(t *testing.T) {
	calc := NewFederalTaxCalculator(nil)

	tests := []struct {
		name   string
		income decimal.Decimal
		status domain.FilingStatus
		want   decimal.Decimal
	}{
		{"single zero bracket", d("40000"), domain.FilingSingle, d("0")},
		{"single lower bound of 15% is inclusive", d("47025"), domain.FilingSingle, d("0.15")},
		{"single just below threshold", d("47024.99"), domain.FilingSingle, d("0")},
		{"single middle", d("100000"), domain.FilingSingle, d("0.15")},
		{"single top bracket", d("518900"), domain.FilingSingle, d("0.20")},
		{"joint zero bracket", d("94049"), domain.FilingMarriedJoint, d("0")},
		{"joint 15%", d("94050"), domain.FilingMarriedJoint, d("0.15")},
		{"separate top", d("291850"), domain.FilingMarriedSeparate, d("0.20")},
		{"head of household top", d("600000"), domain.FilingHeadOfHousehold, d("0.20")},
		{"unknown status falls back to single", d("100000"), domain.FilingStatus("other"), d("0.15")},
		{"negative income uses first bracket", d("-10"), domain.FilingSingle, d("0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.GetCapitalGainsRate(tt.income, tt.status)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestCalculateFederalTax(t *testing.T) {
	calc := NewFederalTaxCalculator(nil)

	tax := calc.CalculateFederalTax(d("100000"), d("100000"), domain.FilingSingle)
	assert.True(t, d("15000").Equal(tax), "got %s", tax)

	assert.True(t, calc.CalculateFederalTax(d("-1000"), d("100000"), domain.FilingSingle).IsZero())

	// The bracket of the income applies to the whole gain.
	tax = calc.CalculateFederalTax(d("1000000"), d("40000"), domain.FilingSingle)
	assert.True(t, tax.IsZero(), "got %s", tax)
}

func TestCalculateAdjustedFederalTax(t *testing.T) {
	calc := NewFederalTaxCalculator(nil)

	tests := []struct {
		name        string
		gain        decimal.Decimal
		other       decimal.Decimal
		carryover   decimal.Decimal
		wantTaxable decimal.Decimal
		wantTax     decimal.Decimal
	}{
		{"other gains added", d("50000"), d("10000"), d("0"), d("60000"), d("9000")},
		{"negative carryover uses absolute value", d("50000"), d("10000"), d("-20000"), d("40000"), d("6000")},
		{"positive carryover", d("50000"), d("0"), d("20000"), d("30000"), d("4500")},
		{"floored at zero", d("50000"), d("0"), d("100000"), d("0"), d("0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, taxable := calc.CalculateAdjustedFederalTax(tt.gain, tt.other, tt.carryover, d("100000"), domain.FilingSingle)
			assert.True(t, tt.wantTaxable.Equal(taxable), "taxable: want %s got %s", tt.wantTaxable, taxable)
			assert.True(t, tt.wantTax.Equal(tax), "tax: want %s got %s", tt.wantTax, tax)
		})
	}
}

func TestCalculateStateTax(t *testing.T) {
	calc := NewStateTaxCalculator(nil)

	tests := []struct {
		state    string
		wantTax  decimal.Decimal
		wantRate decimal.Decimal
	}{
		{"CA", d("9300"), d("0.093")},
		{"ca", d("9300"), d("0.093")},
		{"California", d("9300"), d("0.093")},
		{"texas", d("0"), d("0")},
		{"DC", d("8500"), d("0.085")},
		{"Atlantis", d("0"), d("0")},
		{"", d("0"), d("0")},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			tax, rate := calc.CalculateStateTax(d("100000"), tt.state)
			assert.True(t, tt.wantTax.Equal(tax), "tax: want %s got %s", tt.wantTax, tax)
			assert.True(t, tt.wantRate.Equal(rate), "rate: want %s got %s", tt.wantRate, rate)
		})
	}

	tax, _ := calc.CalculateStateTax(d("-500"), "CA")
	assert.True(t, tax.IsZero())
}

func TestStateRateCoversAllStates(t *testing.T) {
	table := NewTaxBracketTable2024()
	assert.Len(t, table.StateRates, 51)
	for name, code := range stateCodes {
		_, ok := table.StateRate(name)
		assert.True(t, ok, "state %s (%s) has no rate", name, code)
	}
	_, ok := table.StateRate("ZZ")
	assert.False(t, ok)
}

func TestRecapture(t *testing.T) {
	calc := NewDepreciationRecaptureCalculator(nil)

	tests := []struct {
		name     string
		dep      decimal.Decimal
		income   decimal.Decimal
		wantRate decimal.Decimal
		wantTax  decimal.Decimal
		wantHas  bool
	}{
		{"ordinary rate below cap", d("50000"), d("100000"), d("0.22"), d("11000"), true},
		{"capped at 25%", d("50000"), d("300000"), d("0.25"), d("12500"), true},
		{"low income", d("50000"), d("30000"), d("0.12"), d("6000"), true},
		{"no depreciation", d("0"), d("100000"), d("0.22"), d("0"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := calc.CalculateRecapture(RecaptureInput{
				TotalDepreciationTaken: tt.dep,
				AnnualIncome:           tt.income,
				FilingStatus:           domain.FilingSingle,
			})
			assert.Equal(t, tt.wantHas, res.HasRecapture)
			assert.True(t, tt.wantRate.Equal(res.RecaptureRate), "rate: want %s got %s", tt.wantRate, res.RecaptureRate)
			assert.True(t, tt.wantTax.Equal(res.RecaptureTax), "tax: want %s got %s", tt.wantTax, res.RecaptureTax)
		})
	}
}

func TestDepreciationHelpers(t *testing.T) {
	calc := NewDepreciationRecaptureCalculator(nil)

	residential := calc.CalculateAnnualDepreciation(d("300000"), d("50000"), true)
	assert.Equal(t, "9090.91", residential.StringFixed(2))

	commercial := calc.CalculateAnnualDepreciation(d("390000"), d("0"), false)
	assert.True(t, d("10000").Equal(commercial))

	assert.True(t, calc.CalculateAnnualDepreciation(d("100"), d("200"), true).IsZero())

	total := calc.CalculateTotalDepreciation(d("10000"), d("2.5"))
	assert.True(t, d("25000").Equal(total))
	assert.True(t, calc.CalculateTotalDepreciation(d("10000"), d("0")).IsZero())
}

func TestComprehensiveTaxCalculatorSharesTable(t *testing.T) {
	table := NewTaxBracketTable2024()
	calc := NewComprehensiveTaxCalculatorWithTable(table)
	require.NotNil(t, calc.FederalTaxCalc)
	assert.Same(t, table, calc.FederalTaxCalc.Table)
	assert.Same(t, table, calc.StateTaxCalc.Table)
	assert.Same(t, table, calc.RecaptureCalc.Table)
}
