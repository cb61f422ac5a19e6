package finmath

import (
	"github.com/shopspring/decimal"
)

// InternalPlaces bounds the scale of iterated intermediate values (monthly
// amortization, compounding). It is far below a cent, so it never shows up
// in emitted figures.
const InternalPlaces = 12

var (
	One     = decimal.NewFromInt(1)
	Twelve  = decimal.NewFromInt(12)
	Hundred = decimal.NewFromInt(100)
)

// FromPercent converts a percent figure (7 means 7%) to a fraction.
func FromPercent(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(Hundred)
}

// GrowthFactor returns (1+pct/100)^years. Zero or negative years yield 1.
func GrowthFactor(pct decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 || pct.IsZero() {
		return One
	}
	return One.Add(FromPercent(pct)).Pow(decimal.NewFromInt(int64(years)))
}

// Deflate divides a nominal amount by a cumulative inflation factor.
// A factor of exactly 1 returns the amount untouched so real and nominal
// figures stay bit-identical without inflation. A non-positive factor
// (inflation at or below -100%) also returns the amount.
func Deflate(amount, factor decimal.Decimal) decimal.Decimal {
	if factor.Equal(One) || !factor.IsPositive() {
		return amount
	}
	return amount.Div(factor)
}

// RealGrowthFactor is the Fisher real growth factor (1+r)/(1+i).
func RealGrowthFactor(returnPct, inflationPct decimal.Decimal) decimal.Decimal {
	nominal := One.Add(FromPercent(returnPct))
	if inflationPct.IsZero() {
		return nominal
	}
	return Deflate(nominal, One.Add(FromPercent(inflationPct)))
}

// AmortizedPayment is the fixed monthly payment that retires principal over
// months payments at annualPct/12 per month. A zero rate spreads principal
// evenly; non-positive principal or months yields zero.
func AmortizedPayment(principal, annualPct decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	r := MonthlyRate(annualPct)
	if !r.IsPositive() {
		return principal.Div(n)
	}
	factor := One.Add(r).Pow(n).Round(20)
	return principal.Mul(r).Mul(factor).Div(factor.Sub(One))
}

// MonthlyRate converts an annual percent rate to a monthly fraction.
func MonthlyRate(annualPct decimal.Decimal) decimal.Decimal {
	return annualPct.Div(Hundred).Div(Twelve)
}

// Cents rounds to two places. Only emitted figures are rounded.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Bound trims an intermediate value to InternalPlaces.
func Bound(d decimal.Decimal) decimal.Decimal {
	return d.Round(InternalPlaces)
}

// FloorZero clamps negative values to zero.
func FloorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Clamp limits d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(d, lo), hi)
}

// SafeDiv returns a/b, or zero when b is zero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}
