package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FilingStatus is the federal filing status used for bracket lookups.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "married_joint"
	FilingMarriedSeparate FilingStatus = "married_separate"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// ParseFilingStatus accepts the canonical names plus common spellings
// (mfj, marriedJoint, married_filing_jointly, hoh, ...). Unknown values map
// to single.
func ParseFilingStatus(s string) FilingStatus {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	switch n {
	case "married_joint", "marriedjoint", "mfj", "married_filing_jointly", "joint":
		return FilingMarriedJoint
	case "married_separate", "marriedseparate", "mfs", "married_filing_separately", "separate":
		return FilingMarriedSeparate
	case "head_of_household", "headofhousehold", "hoh":
		return FilingHeadOfHousehold
	default:
		return FilingSingle
	}
}

// GrowthModel selects the base a property's appreciation compounds from.
type GrowthModel string

const (
	// GrowthFromPurchasePrice compounds from the purchase price over
	// yearsBought+year years.
	GrowthFromPurchasePrice GrowthModel = "purchase_price"
	// GrowthFromCurrentValue compounds from the current estimate over year
	// years, ignoring yearsBought.
	GrowthFromCurrentValue GrowthModel = "current_value"
)

// ParseGrowthModel maps unknown values to GrowthFromPurchasePrice.
func ParseGrowthModel(s string) GrowthModel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "current_value", "currentvalue", "current-value":
		return GrowthFromCurrentValue
	default:
		return GrowthFromPurchasePrice
	}
}

// QualifyingCircumstance allows a reduced Section 121 exclusion when the
// two-year tests are not met.
type QualifyingCircumstance string

const (
	CircumstanceNone       QualifyingCircumstance = "none"
	CircumstanceWork       QualifyingCircumstance = "work"
	CircumstanceHealth     QualifyingCircumstance = "health"
	CircumstanceMilitary   QualifyingCircumstance = "military"
	CircumstanceUnforeseen QualifyingCircumstance = "unforeseen"
)

// ParseQualifyingCircumstance maps unknown values to CircumstanceNone.
func ParseQualifyingCircumstance(s string) QualifyingCircumstance {
	switch c := QualifyingCircumstance(strings.ToLower(strings.TrimSpace(s))); c {
	case CircumstanceWork, CircumstanceHealth, CircumstanceMilitary, CircumstanceUnforeseen:
		return c
	default:
		return CircumstanceNone
	}
}

// Qualifies reports whether the circumstance permits a partial exclusion.
func (q QualifyingCircumstance) Qualifies() bool {
	return ParseQualifyingCircumstance(string(q)) != CircumstanceNone
}

// InvestmentInputs drives one investment projection. Rates are percents.
type InvestmentInputs struct {
	InitialAmount                  decimal.Decimal `json:"initialAmount"`
	RateOfReturn                   decimal.Decimal `json:"rateOfReturn"`
	InflationRate                  decimal.Decimal `json:"inflationRate"`
	AnnualContribution             decimal.Decimal `json:"annualContribution"` // negative = withdrawal
	InflationAdjustedContributions bool            `json:"inflationAdjustedContributions"`
	Years                          int             `json:"years"`
	StartingYear                   int             `json:"startingYear"`
}

// PropertyInputs drives one property projection. Rates are percents.
type PropertyInputs struct {
	PurchasePrice         decimal.Decimal `json:"purchasePrice"`
	DownPaymentPercentage decimal.Decimal `json:"downPaymentPercentage"`
	InterestRate          decimal.Decimal `json:"interestRate"`
	LoanTerm              int             `json:"loanTerm"`
	YearsBought           int             `json:"yearsBought"`
	PropertyGrowthRate    decimal.Decimal `json:"propertyGrowthRate"`
	PropertyGrowthModel   GrowthModel     `json:"propertyGrowthModel"`
	CurrentEstimatedValue decimal.Decimal `json:"currentEstimatedValue"`
	// UserMonthlyPayment overrides the computed P&I as the total monthly
	// payment when positive. The excess over P&I never amortizes the loan.
	UserMonthlyPayment decimal.Decimal `json:"userMonthlyPayment"`

	IsRentalProperty          bool            `json:"isRentalProperty"`
	MonthlyRent               decimal.Decimal `json:"monthlyRent"`
	RentGrowthRate            decimal.Decimal `json:"rentGrowthRate"`
	VacancyRate               decimal.Decimal `json:"vacancyRate"`
	MaintenanceRate           decimal.Decimal `json:"maintenanceRate"`
	PropertyManagementEnabled bool            `json:"propertyManagementEnabled"`
	ListingFeeRate            decimal.Decimal `json:"listingFeeRate"`
	MonthlyManagementFeeRate  decimal.Decimal `json:"monthlyManagementFeeRate"`
	LinkedInvestmentID        string          `json:"linkedInvestmentId,omitempty"`

	InflationRate decimal.Decimal `json:"inflationRate"`
	Years         int             `json:"years"`
	StartingYear  int             `json:"startingYear"`
}

// LoanAmount is the financed share of the purchase price.
func (p PropertyInputs) LoanAmount() decimal.Decimal {
	financed := decimal.NewFromInt(1).Sub(p.DownPaymentPercentage.Div(decimal.NewFromInt(100)))
	return p.PurchasePrice.Mul(financed)
}

// DownPayment is the cash paid at purchase.
func (p PropertyInputs) DownPayment() decimal.Decimal {
	return p.PurchasePrice.Sub(p.LoanAmount())
}

// SaleConfig describes a planned sale and the tax facts needed to price it.
type SaleConfig struct {
	IsPlannedForSale       bool            `json:"isPlannedForSale"`
	SaleYear               int             `json:"saleYear"`  // 1-based projection year
	SaleMonth              int             `json:"saleMonth"` // 1..12
	UseProjectedValue      bool            `json:"useProjectedValue"`
	ExpectedSalePrice      decimal.Decimal `json:"expectedSalePrice"`
	SellingCostsPercentage decimal.Decimal `json:"sellingCostsPercentage"`
	ReinvestProceeds       bool            `json:"reinvestProceeds"`
	TargetInvestmentID     string          `json:"targetInvestmentId,omitempty"`

	CapitalImprovements decimal.Decimal `json:"capitalImprovements"`
	OriginalBuyingCosts decimal.Decimal `json:"originalBuyingCosts"`

	FilingStatus      FilingStatus    `json:"filingStatus"`
	AnnualIncome      decimal.Decimal `json:"annualIncome"`
	State             string          `json:"state"`
	EnableStateTax    bool            `json:"enableStateTax"`
	OtherCapitalGains decimal.Decimal `json:"otherCapitalGains"`
	CarryoverLosses   decimal.Decimal `json:"carryoverLosses"`

	IsPrimaryResidence             bool                   `json:"isPrimaryResidence"`
	YearsOwned                     decimal.Decimal        `json:"yearsOwned"`
	YearsLived                     decimal.Decimal        `json:"yearsLived"`
	HasUsedExclusionInLastTwoYears bool                   `json:"hasUsedExclusionInLastTwoYears"`
	EnableSection121               bool                   `json:"enableSection121"`
	QualifyingCircumstance         QualifyingCircumstance `json:"qualifyingCircumstance"`

	EnableDepreciationRecapture bool            `json:"enableDepreciationRecapture"`
	TotalDepreciationTaken      decimal.Decimal `json:"totalDepreciationTaken"`
	LandValuePercentage         decimal.Decimal `json:"landValuePercentage"`
}

// SaleScheduled reports whether a sale lands inside a projection of years.
func (s SaleConfig) SaleScheduled(years int) bool {
	return s.IsPlannedForSale && s.SaleYear >= 1 && s.SaleYear <= years
}

// Investment is a cash account entity.
type Investment struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Inputs InvestmentInputs `json:"inputs"`
}

// Property is a mortgaged real-estate entity with an optional sale plan.
type Property struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Inputs PropertyInputs `json:"inputs"`
	Sale   SaleConfig     `json:"saleConfig"`
}

// Portfolio groups the entities projected together in one pass.
type Portfolio struct {
	Name        string       `json:"name"`
	Investments []Investment `json:"investments"`
	Properties  []Property   `json:"properties"`
}
