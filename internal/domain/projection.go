package domain

import (
	"github.com/shopspring/decimal"
)

// AssetYear is the per-year shape both asset engines populate. Real figures
// are nominal figures deflated by (1+inflation)^year.
type AssetYear struct {
	Year         int             `json:"year"`
	CalendarYear int             `json:"calendarYear"`
	Balance      decimal.Decimal `json:"balance"`
	RealBalance  decimal.Decimal `json:"realBalance"`

	// Contribution is money added to the asset this year: deposits for an
	// investment, principal paid down for a property.
	Contribution     decimal.Decimal `json:"contribution"`
	RealContribution decimal.Decimal `json:"realContribution"`

	// YearlyGain is growth earned this year, excluding contributions.
	YearlyGain     decimal.Decimal `json:"yearlyGain"`
	RealYearlyGain decimal.Decimal `json:"realYearlyGain"`

	// TotalGain is cumulative growth since year 0, excluding contributions.
	TotalGain     decimal.Decimal `json:"totalGain"`
	RealTotalGain decimal.Decimal `json:"realTotalGain"`
}

// InvestmentYear is one row of an investment projection.
type InvestmentYear struct {
	AssetYear

	// CashFlow is the externally linked flow applied before growth.
	CashFlow     decimal.Decimal `json:"cashFlow"`
	RealCashFlow decimal.Decimal `json:"realCashFlow"`

	TotalContributions    decimal.Decimal `json:"totalContributions"`
	TotalWithdrawals      decimal.Decimal `json:"totalWithdrawals"`
	CashFlowContributions decimal.Decimal `json:"cashFlowContributions"`
	CashFlowWithdrawals   decimal.Decimal `json:"cashFlowWithdrawals"`
	NetContributions      decimal.Decimal `json:"netContributions"`
}

// PropertyYear is one row of a property projection. Balance carries the
// property value.
type PropertyYear struct {
	AssetYear

	Equity              decimal.Decimal `json:"equity"`
	RealEquity          decimal.Decimal `json:"realEquity"`
	MortgageBalance     decimal.Decimal `json:"mortgageBalance"`
	RealMortgageBalance decimal.Decimal `json:"realMortgageBalance"`

	MonthlyPayment           decimal.Decimal `json:"monthlyPayment"`
	PrincipalInterestPayment decimal.Decimal `json:"principalInterestPayment"`
	OtherFeesPayment         decimal.Decimal `json:"otherFeesPayment"`
	AnnualMortgagePayments   decimal.Decimal `json:"annualMortgagePayments"`
	PrincipalPaid            decimal.Decimal `json:"principalPaid"`
	InterestPaid             decimal.Decimal `json:"interestPaid"`

	MonthlyRent               decimal.Decimal `json:"monthlyRent"`
	AnnualRentalIncome        decimal.Decimal `json:"annualRentalIncome"`
	RealAnnualRentalIncome    decimal.Decimal `json:"realAnnualRentalIncome"`
	MaintenanceExpenses       decimal.Decimal `json:"maintenanceExpenses"`
	ListingExpenses           decimal.Decimal `json:"listingExpenses"`
	MonthlyManagementExpenses decimal.Decimal `json:"monthlyManagementExpenses"`
	TotalRentalExpenses       decimal.Decimal `json:"totalRentalExpenses"`

	AnnualCashFlow     decimal.Decimal `json:"annualCashFlow"`
	RealAnnualCashFlow decimal.Decimal `json:"realAnnualCashFlow"`
	// OperatingCashFlow is AnnualCashFlow without sale proceeds.
	OperatingCashFlow decimal.Decimal `json:"operatingCashFlow"`

	IsSaleYear             bool            `json:"isSaleYear"`
	IsPostSale             bool            `json:"isPostSale"`
	SaleProceeds           decimal.Decimal `json:"saleProceeds"`
	PreSaleMortgageBalance decimal.Decimal `json:"preSaleMortgageBalance"`
	Sale                   *SaleResult     `json:"sale,omitempty"`
}

// ExclusionResult is the Section 121 outcome.
type ExclusionResult struct {
	IsEligible       bool            `json:"isEligible"`
	IsPartial        bool            `json:"isPartial"`
	Ratio            decimal.Decimal `json:"ratio"`
	MaxExclusion     decimal.Decimal `json:"maxExclusion"`
	AppliedExclusion decimal.Decimal `json:"appliedExclusion"`
	RemainingGain    decimal.Decimal `json:"remainingGain"`
	Reason           string          `json:"reason,omitempty"`
}

// RecaptureResult is the unrecaptured Section 1250 gain outcome.
type RecaptureResult struct {
	HasRecapture           bool            `json:"hasRecapture"`
	TotalDepreciationTaken decimal.Decimal `json:"totalDepreciationTaken"`
	RecaptureRate          decimal.Decimal `json:"recaptureRate"`
	RecaptureTax           decimal.Decimal `json:"recaptureTax"`
	Estimated              bool            `json:"estimated"`
}

// SaleResult is the full sale waterfall for the sale year.
type SaleResult struct {
	EffectiveSalePrice     decimal.Decimal `json:"effectiveSalePrice"`
	SellingCosts           decimal.Decimal `json:"sellingCosts"`
	PreSaleMortgageBalance decimal.Decimal `json:"preSaleMortgageBalance"`
	NetSaleProceeds        decimal.Decimal `json:"netSaleProceeds"`

	AdjustedCostBasis  decimal.Decimal  `json:"adjustedCostBasis"`
	CapitalGain        decimal.Decimal  `json:"capitalGain"`
	Section121         *ExclusionResult `json:"section121,omitempty"`
	GainAfterExclusion decimal.Decimal  `json:"gainAfterExclusion"`
	TaxableGain        decimal.Decimal  `json:"taxableGain"`

	FederalRate decimal.Decimal  `json:"federalRate"`
	FederalTax  decimal.Decimal  `json:"federalTax"`
	StateRate   decimal.Decimal  `json:"stateRate"`
	StateTax    decimal.Decimal  `json:"stateTax"`
	Recapture   *RecaptureResult `json:"recapture,omitempty"`

	TotalTax            decimal.Decimal `json:"totalTax"`
	EffectiveTaxRate    decimal.Decimal `json:"effectiveTaxRate"` // percent of capital gain
	NetAfterTaxProceeds decimal.Decimal `json:"netAfterTaxProceeds"`
}

// InvestmentSummary aggregates an investment projection.
type InvestmentSummary struct {
	FinalBalance       decimal.Decimal `json:"finalBalance"`
	RealFinalBalance   decimal.Decimal `json:"realFinalBalance"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	TotalWithdrawals   decimal.Decimal `json:"totalWithdrawals"`
	NetCashFlow        decimal.Decimal `json:"netCashFlow"`
	NetContributions   decimal.Decimal `json:"netContributions"`
	TotalEarnings      decimal.Decimal `json:"totalEarnings"`
	RealTotalEarnings  decimal.Decimal `json:"realTotalEarnings"`
	TotalReturnPercent decimal.Decimal `json:"totalReturnPercent"`
	DepletedYear       int             `json:"depletedYear,omitempty"` // first year balance <= 0
}

// PropertySummary aggregates a property projection.
type PropertySummary struct {
	InitialCashInvested decimal.Decimal `json:"initialCashInvested"`
	FinalValue          decimal.Decimal `json:"finalValue"`
	RealFinalValue      decimal.Decimal `json:"realFinalValue"`
	FinalEquity         decimal.Decimal `json:"finalEquity"`
	FinalMortgage       decimal.Decimal `json:"finalMortgage"`
	TotalRentalIncome   decimal.Decimal `json:"totalRentalIncome"`
	TotalRentalExpenses decimal.Decimal `json:"totalRentalExpenses"`
	TotalInterestPaid   decimal.Decimal `json:"totalInterestPaid"`
	TotalPrincipalPaid  decimal.Decimal `json:"totalPrincipalPaid"`
	TotalCashFlow       decimal.Decimal `json:"totalCashFlow"`
	TotalReturn         decimal.Decimal `json:"totalReturn"`
	TotalReturnPercent  decimal.Decimal `json:"totalReturnPercent"`
	Sold                bool            `json:"sold"`
	SaleCalendarYear    int             `json:"saleCalendarYear,omitempty"`
	NetAfterTaxProceeds decimal.Decimal `json:"netAfterTaxProceeds"`
}

// InvestmentProjection is an investment's inputs together with its results.
type InvestmentProjection struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Inputs           InvestmentInputs  `json:"inputs"`
	LinkedCashFlows  []decimal.Decimal `json:"linkedCashFlows"`
	Years            []InvestmentYear  `json:"years"`
	Summary          InvestmentSummary `json:"summary"`
	ValidationErrors []string          `json:"validationErrors"`
}

// PropertyProjection is a property's inputs together with its results.
type PropertyProjection struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Inputs           PropertyInputs  `json:"inputs"`
	Sale             SaleConfig      `json:"saleConfig"`
	Years            []PropertyYear  `json:"years"`
	Summary          PropertySummary `json:"summary"`
	ValidationErrors []string        `json:"validationErrors"`
}

// PortfolioProjection is the output of one portfolio pass.
type PortfolioProjection struct {
	Name             string                 `json:"name"`
	Investments      []InvestmentProjection `json:"investments"`
	Properties       []PropertyProjection   `json:"properties"`
	ValidationErrors []string               `json:"validationErrors"`
}

// SaleYearRow returns the sale-year row, or nil when no sale happened.
func (p PropertyProjection) SaleYearRow() *PropertyYear {
	for i := range p.Years {
		if p.Years[i].IsSaleYear {
			return &p.Years[i]
		}
	}
	return nil
}
