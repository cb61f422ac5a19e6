package calculation

import (
	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/rpgo/asset-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Section121Facts are the ownership and use facts the exclusion tests need.
type Section121Facts struct {
	IsPrimaryResidence             bool
	YearsOwned                     decimal.Decimal
	YearsLived                     decimal.Decimal
	HasUsedExclusionInLastTwoYears bool
}

// Ineligibility reasons, reported in check order.
const (
	ReasonNotPrimaryResidence = "Property is not the primary residence"
	ReasonOwnershipTest       = "Ownership requirement not met (less than 2 years)"
	ReasonUseTest             = "Use requirement not met (less than 2 years lived in)"
	ReasonRecentExclusion     = "Exclusion already used within the last 2 years"
	ReasonNoCircumstance      = "No qualifying circumstance for a partial exclusion"
)

// Section121Calculator computes the primary-residence gain exclusion.
type Section121Calculator struct {
	SingleMax decimal.Decimal
	JointMax  decimal.Decimal
}

// NewSection121Calculator returns the statutory 250k/500k limits.
func NewSection121Calculator() *Section121Calculator {
	return &Section121Calculator{
		SingleMax: decimal.NewFromInt(250000),
		JointMax:  decimal.NewFromInt(500000),
	}
}

var twoYears = decimal.NewFromInt(2)

// MaxExclusion returns the cap for a filing status.
func (c *Section121Calculator) MaxExclusion(status domain.FilingStatus) decimal.Decimal {
	if status == domain.FilingMarriedJoint {
		return c.JointMax
	}
	return c.SingleMax
}

// CheckEligibility runs the ordered tests and returns the first failure.
func (c *Section121Calculator) CheckEligibility(f Section121Facts) (bool, string) {
	switch {
	case !f.IsPrimaryResidence:
		return false, ReasonNotPrimaryResidence
	case f.YearsOwned.LessThan(twoYears):
		return false, ReasonOwnershipTest
	case f.YearsLived.LessThan(twoYears):
		return false, ReasonUseTest
	case f.HasUsedExclusionInLastTwoYears:
		return false, ReasonRecentExclusion
	}
	return true, ""
}

// CalculateExclusion applies the full exclusion when every test passes.
func (c *Section121Calculator) CalculateExclusion(gain decimal.Decimal, status domain.FilingStatus, f Section121Facts) domain.ExclusionResult {
	maxExclusion := c.MaxExclusion(status)
	eligible, reason := c.CheckEligibility(f)
	if !eligible {
		return domain.ExclusionResult{
			IsEligible:       false,
			Ratio:            decimal.Zero,
			MaxExclusion:     maxExclusion,
			AppliedExclusion: decimal.Zero,
			RemainingGain:    decimal.Max(gain, decimal.Zero),
			Reason:           reason,
		}
	}
	return applyExclusion(gain, maxExclusion, decimal.NewFromInt(1), false)
}

// CalculatePartialExclusion prorates the cap by
// min(1, min(monthsOwned, monthsLived)/24) for sales forced by a qualifying
// circumstance.
func (c *Section121Calculator) CalculatePartialExclusion(gain decimal.Decimal, status domain.FilingStatus, monthsOwned, monthsLived int, circumstance domain.QualifyingCircumstance) domain.ExclusionResult {
	fullMax := c.MaxExclusion(status)
	if !circumstance.Qualifies() {
		return domain.ExclusionResult{
			MaxExclusion:     fullMax,
			Ratio:            decimal.Zero,
			AppliedExclusion: decimal.Zero,
			RemainingGain:    decimal.Max(gain, decimal.Zero),
			Reason:           ReasonNoCircumstance,
		}
	}
	months := monthsOwned
	if monthsLived < months {
		months = monthsLived
	}
	if months < 0 {
		months = 0
	}
	ratio := decimal.NewFromInt(int64(months)).Div(decimal.NewFromInt(24))
	ratio = decimal.Min(ratio, decimal.NewFromInt(1))
	return applyExclusion(gain, fullMax.Mul(ratio), ratio, true)
}

// ExclusionForSale evaluates the full test and falls back to the partial
// exclusion when the sale config names a qualifying circumstance.
func (c *Section121Calculator) ExclusionForSale(gain decimal.Decimal, sale domain.SaleConfig) domain.ExclusionResult {
	facts := Section121Facts{
		IsPrimaryResidence:             sale.IsPrimaryResidence,
		YearsOwned:                     sale.YearsOwned,
		YearsLived:                     sale.YearsLived,
		HasUsedExclusionInLastTwoYears: sale.HasUsedExclusionInLastTwoYears,
	}
	full := c.CalculateExclusion(gain, sale.FilingStatus, facts)
	if full.IsEligible || !sale.IsPrimaryResidence || !sale.QualifyingCircumstance.Qualifies() {
		return full
	}
	return c.CalculatePartialExclusion(gain, sale.FilingStatus,
		dateutil.YearsToMonths(sale.YearsOwned), dateutil.YearsToMonths(sale.YearsLived), sale.QualifyingCircumstance)
}

func applyExclusion(gain, maxExclusion, ratio decimal.Decimal, partial bool) domain.ExclusionResult {
	positive := decimal.Max(gain, decimal.Zero)
	applied := decimal.Min(positive, maxExclusion)
	return domain.ExclusionResult{
		IsEligible:       true,
		IsPartial:        partial,
		Ratio:            ratio,
		MaxExclusion:     maxExclusion,
		AppliedExclusion: applied,
		RemainingGain:    positive.Sub(applied),
	}
}
