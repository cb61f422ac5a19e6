package domain

import "github.com/shopspring/decimal"

// Construction defaults. Persisted records that omit a field fall back to
// these values.

// DefaultInvestmentInputs returns the inputs of a freshly created investment.
func DefaultInvestmentInputs(startingYear int) InvestmentInputs {
	return InvestmentInputs{
		InitialAmount:                  decimal.NewFromInt(10000),
		RateOfReturn:                   decimal.NewFromInt(7),
		InflationRate:                  decimal.NewFromFloat(2.5),
		AnnualContribution:             decimal.Zero,
		InflationAdjustedContributions: false,
		Years:                          10,
		StartingYear:                   startingYear,
	}
}

// DefaultPropertyInputs returns the inputs of a freshly created property.
func DefaultPropertyInputs(startingYear int) PropertyInputs {
	return PropertyInputs{
		PurchasePrice:             decimal.NewFromInt(500000),
		DownPaymentPercentage:     decimal.NewFromInt(20),
		InterestRate:              decimal.NewFromInt(7),
		LoanTerm:                  30,
		YearsBought:               0,
		PropertyGrowthRate:        decimal.NewFromInt(3),
		PropertyGrowthModel:       GrowthFromPurchasePrice,
		CurrentEstimatedValue:     decimal.Zero,
		UserMonthlyPayment:        decimal.Zero,
		IsRentalProperty:          false,
		MonthlyRent:               decimal.Zero,
		RentGrowthRate:            decimal.NewFromInt(3),
		VacancyRate:               decimal.NewFromInt(5),
		MaintenanceRate:           decimal.NewFromInt(1),
		PropertyManagementEnabled: false,
		ListingFeeRate:            decimal.NewFromInt(100),
		MonthlyManagementFeeRate:  decimal.NewFromInt(8),
		InflationRate:             decimal.NewFromFloat(2.5),
		Years:                     10,
		StartingYear:              startingYear,
	}
}

// DefaultSaleConfig returns a disabled sale plan with sensible sub-fields.
func DefaultSaleConfig() SaleConfig {
	return SaleConfig{
		IsPlannedForSale:            false,
		SaleYear:                    5,
		SaleMonth:                   12,
		UseProjectedValue:           true,
		ExpectedSalePrice:           decimal.Zero,
		SellingCostsPercentage:      decimal.NewFromInt(6),
		FilingStatus:                FilingSingle,
		AnnualIncome:                decimal.NewFromInt(75000),
		EnableStateTax:              false,
		EnableSection121:            true,
		QualifyingCircumstance:      CircumstanceNone,
		EnableDepreciationRecapture: false,
		LandValuePercentage:         decimal.NewFromInt(20),
	}
}

// NewInvestment builds an investment with default inputs.
func NewInvestment(id, name string, startingYear int) Investment {
	return Investment{ID: id, Name: name, Inputs: DefaultInvestmentInputs(startingYear)}
}

// NewProperty builds a property with default inputs and no sale planned.
func NewProperty(id, name string, startingYear int) Property {
	return Property{ID: id, Name: name, Inputs: DefaultPropertyInputs(startingYear), Sale: DefaultSaleConfig()}
}
