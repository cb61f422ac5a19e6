package config

import (
	"github.com/google/uuid"
	"github.com/rpgo/asset-projector/internal/calculation"
	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// InvestmentRecord is the persisted shape of an investment. Every field is
// optional; absent fields take construction defaults.
type InvestmentRecord struct {
	ID                             string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name                           string  `json:"name" yaml:"name"`
	InitialAmount                  *Number `json:"initialAmount,omitempty" yaml:"initialAmount,omitempty"`
	RateOfReturn                   *Number `json:"rateOfReturn,omitempty" yaml:"rateOfReturn,omitempty"`
	InflationRate                  *Number `json:"inflationRate,omitempty" yaml:"inflationRate,omitempty"`
	AnnualContribution             *Number `json:"annualContribution,omitempty" yaml:"annualContribution,omitempty"`
	InflationAdjustedContributions *bool   `json:"inflationAdjustedContributions,omitempty" yaml:"inflationAdjustedContributions,omitempty"`
	Years                          *Number `json:"years,omitempty" yaml:"years,omitempty"`
	StartingYear                   *Number `json:"startingYear,omitempty" yaml:"startingYear,omitempty"`
}

// PropertyRecord is the persisted shape of a property and its sale plan.
type PropertyRecord struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`

	PurchasePrice         *Number `json:"purchasePrice,omitempty" yaml:"purchasePrice,omitempty"`
	DownPaymentPercentage *Number `json:"downPaymentPercentage,omitempty" yaml:"downPaymentPercentage,omitempty"`
	InterestRate          *Number `json:"interestRate,omitempty" yaml:"interestRate,omitempty"`
	LoanTerm              *Number `json:"loanTerm,omitempty" yaml:"loanTerm,omitempty"`
	YearsBought           *Number `json:"yearsBought,omitempty" yaml:"yearsBought,omitempty"`
	PropertyGrowthRate    *Number `json:"propertyGrowthRate,omitempty" yaml:"propertyGrowthRate,omitempty"`
	PropertyGrowthModel   string  `json:"propertyGrowthModel,omitempty" yaml:"propertyGrowthModel,omitempty"`
	CurrentEstimatedValue *Number `json:"currentEstimatedValue,omitempty" yaml:"currentEstimatedValue,omitempty"`
	UserMonthlyPayment    *Number `json:"userMonthlyPayment,omitempty" yaml:"userMonthlyPayment,omitempty"`

	IsRentalProperty          *bool   `json:"isRentalProperty,omitempty" yaml:"isRentalProperty,omitempty"`
	MonthlyRent               *Number `json:"monthlyRent,omitempty" yaml:"monthlyRent,omitempty"`
	RentGrowthRate            *Number `json:"rentGrowthRate,omitempty" yaml:"rentGrowthRate,omitempty"`
	VacancyRate               *Number `json:"vacancyRate,omitempty" yaml:"vacancyRate,omitempty"`
	MaintenanceRate           *Number `json:"maintenanceRate,omitempty" yaml:"maintenanceRate,omitempty"`
	PropertyManagementEnabled *bool   `json:"propertyManagementEnabled,omitempty" yaml:"propertyManagementEnabled,omitempty"`
	ListingFeeRate            *Number `json:"listingFeeRate,omitempty" yaml:"listingFeeRate,omitempty"`
	MonthlyManagementFeeRate  *Number `json:"monthlyManagementFeeRate,omitempty" yaml:"monthlyManagementFeeRate,omitempty"`
	LinkedInvestmentID        string  `json:"linkedInvestmentId,omitempty" yaml:"linkedInvestmentId,omitempty"`

	InflationRate *Number `json:"inflationRate,omitempty" yaml:"inflationRate,omitempty"`
	Years         *Number `json:"years,omitempty" yaml:"years,omitempty"`
	StartingYear  *Number `json:"startingYear,omitempty" yaml:"startingYear,omitempty"`

	SaleConfig *SaleConfigRecord `json:"saleConfig,omitempty" yaml:"saleConfig,omitempty"`

	// Legacy fields, consumed by Migrate.
	AnnualExpenses        *Number `json:"annualExpenses,omitempty" yaml:"annualExpenses,omitempty"`
	PropertyManagementFee *Number `json:"propertyManagementFee,omitempty" yaml:"propertyManagementFee,omitempty"`
}

// SaleConfigRecord is the persisted shape of a sale plan.
type SaleConfigRecord struct {
	IsPlannedForSale       *bool   `json:"isPlannedForSale,omitempty" yaml:"isPlannedForSale,omitempty"`
	SaleYear               *Number `json:"saleYear,omitempty" yaml:"saleYear,omitempty"`
	SaleMonth              *Number `json:"saleMonth,omitempty" yaml:"saleMonth,omitempty"`
	UseProjectedValue      *bool   `json:"useProjectedValue,omitempty" yaml:"useProjectedValue,omitempty"`
	ExpectedSalePrice      *Number `json:"expectedSalePrice,omitempty" yaml:"expectedSalePrice,omitempty"`
	SellingCostsPercentage *Number `json:"sellingCostsPercentage,omitempty" yaml:"sellingCostsPercentage,omitempty"`
	ReinvestProceeds       *bool   `json:"reinvestProceeds,omitempty" yaml:"reinvestProceeds,omitempty"`
	TargetInvestmentID     string  `json:"targetInvestmentId,omitempty" yaml:"targetInvestmentId,omitempty"`

	CapitalImprovements *Number `json:"capitalImprovements,omitempty" yaml:"capitalImprovements,omitempty"`
	OriginalBuyingCosts *Number `json:"originalBuyingCosts,omitempty" yaml:"originalBuyingCosts,omitempty"`

	FilingStatus      string  `json:"filingStatus,omitempty" yaml:"filingStatus,omitempty"`
	AnnualIncome      *Number `json:"annualIncome,omitempty" yaml:"annualIncome,omitempty"`
	State             string  `json:"state,omitempty" yaml:"state,omitempty"`
	EnableStateTax    *bool   `json:"enableStateTax,omitempty" yaml:"enableStateTax,omitempty"`
	OtherCapitalGains *Number `json:"otherCapitalGains,omitempty" yaml:"otherCapitalGains,omitempty"`
	CarryoverLosses   *Number `json:"carryoverLosses,omitempty" yaml:"carryoverLosses,omitempty"`

	IsPrimaryResidence             *bool   `json:"isPrimaryResidence,omitempty" yaml:"isPrimaryResidence,omitempty"`
	YearsOwned                     *Number `json:"yearsOwned,omitempty" yaml:"yearsOwned,omitempty"`
	YearsLived                     *Number `json:"yearsLived,omitempty" yaml:"yearsLived,omitempty"`
	HasUsedExclusionInLastTwoYears *bool   `json:"hasUsedExclusionInLastTwoYears,omitempty" yaml:"hasUsedExclusionInLastTwoYears,omitempty"`
	EnableSection121               *bool   `json:"enableSection121,omitempty" yaml:"enableSection121,omitempty"`
	QualifyingCircumstance         string  `json:"qualifyingCircumstance,omitempty" yaml:"qualifyingCircumstance,omitempty"`

	EnableDepreciationRecapture *bool   `json:"enableDepreciationRecapture,omitempty" yaml:"enableDepreciationRecapture,omitempty"`
	TotalDepreciationTaken      *Number `json:"totalDepreciationTaken,omitempty" yaml:"totalDepreciationTaken,omitempty"`
	LandValuePercentage         *Number `json:"landValuePercentage,omitempty" yaml:"landValuePercentage,omitempty"`
}

// PortfolioRecord is the persisted shape of a whole portfolio file.
type PortfolioRecord struct {
	SchemaVersion int                `json:"schemaVersion" yaml:"schemaVersion"`
	Name          string             `json:"name" yaml:"name"`
	Investments   []InvestmentRecord `json:"investments" yaml:"investments"`
	Properties    []PropertyRecord   `json:"properties" yaml:"properties"`
}

var emptyDownPayment = decimal.NewFromInt(20)

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// FromInvestmentRecord builds a fully populated investment.
func FromInvestmentRecord(r InvestmentRecord) domain.Investment {
	def := domain.DefaultInvestmentInputs(calculation.DefaultStartingYear())
	return domain.Investment{
		ID:   newID(r.ID),
		Name: r.Name,
		Inputs: domain.InvestmentInputs{
			InitialAmount:                  resolve(r.InitialAmount, def.InitialAmount),
			RateOfReturn:                   resolve(r.RateOfReturn, def.RateOfReturn),
			InflationRate:                  resolve(r.InflationRate, def.InflationRate),
			AnnualContribution:             resolve(r.AnnualContribution, def.AnnualContribution),
			InflationAdjustedContributions: resolveBool(r.InflationAdjustedContributions, def.InflationAdjustedContributions),
			Years:                          resolveInt(r.Years, def.Years),
			StartingYear:                   resolveInt(r.StartingYear, def.StartingYear),
		},
	}
}

// ToInvestmentRecord writes every field explicitly.
func ToInvestmentRecord(inv domain.Investment) InvestmentRecord {
	in := inv.Inputs
	return InvestmentRecord{
		ID:                             inv.ID,
		Name:                           inv.Name,
		InitialAmount:                  NewNumber(in.InitialAmount),
		RateOfReturn:                   NewNumber(in.RateOfReturn),
		InflationRate:                  NewNumber(in.InflationRate),
		AnnualContribution:             NewNumber(in.AnnualContribution),
		InflationAdjustedContributions: boolPtr(in.InflationAdjustedContributions),
		Years:                          NewIntNumber(in.Years),
		StartingYear:                   NewIntNumber(in.StartingYear),
	}
}

// FromPropertyRecord builds a fully populated property. Legacy fields are
// migrated first; a missing sale config yields the default disabled plan.
func FromPropertyRecord(r PropertyRecord) domain.Property {
	MigrateProperty(&r)
	def := domain.DefaultPropertyInputs(calculation.DefaultStartingYear())

	model := def.PropertyGrowthModel
	if r.PropertyGrowthModel != "" {
		model = domain.ParseGrowthModel(r.PropertyGrowthModel)
	}

	return domain.Property{
		ID:   newID(r.ID),
		Name: r.Name,
		Inputs: domain.PropertyInputs{
			PurchasePrice:             resolve(r.PurchasePrice, def.PurchasePrice),
			DownPaymentPercentage:     resolveOr(r.DownPaymentPercentage, def.DownPaymentPercentage, emptyDownPayment),
			InterestRate:              resolve(r.InterestRate, def.InterestRate),
			LoanTerm:                  resolveInt(r.LoanTerm, def.LoanTerm),
			YearsBought:               resolveInt(r.YearsBought, def.YearsBought),
			PropertyGrowthRate:        resolve(r.PropertyGrowthRate, def.PropertyGrowthRate),
			PropertyGrowthModel:       model,
			CurrentEstimatedValue:     resolve(r.CurrentEstimatedValue, def.CurrentEstimatedValue),
			UserMonthlyPayment:        resolve(r.UserMonthlyPayment, def.UserMonthlyPayment),
			IsRentalProperty:          resolveBool(r.IsRentalProperty, def.IsRentalProperty),
			MonthlyRent:               resolve(r.MonthlyRent, def.MonthlyRent),
			RentGrowthRate:            resolve(r.RentGrowthRate, def.RentGrowthRate),
			VacancyRate:               resolve(r.VacancyRate, def.VacancyRate),
			MaintenanceRate:           resolve(r.MaintenanceRate, def.MaintenanceRate),
			PropertyManagementEnabled: resolveBool(r.PropertyManagementEnabled, def.PropertyManagementEnabled),
			ListingFeeRate:            resolve(r.ListingFeeRate, def.ListingFeeRate),
			MonthlyManagementFeeRate:  resolve(r.MonthlyManagementFeeRate, def.MonthlyManagementFeeRate),
			LinkedInvestmentID:        r.LinkedInvestmentID,
			InflationRate:             resolve(r.InflationRate, def.InflationRate),
			Years:                     resolveInt(r.Years, def.Years),
			StartingYear:              resolveInt(r.StartingYear, def.StartingYear),
		},
		Sale: fromSaleConfigRecord(r.SaleConfig),
	}
}

func fromSaleConfigRecord(r *SaleConfigRecord) domain.SaleConfig {
	def := domain.DefaultSaleConfig()
	if r == nil {
		return def
	}
	status := def.FilingStatus
	if r.FilingStatus != "" {
		status = domain.ParseFilingStatus(r.FilingStatus)
	}
	circumstance := def.QualifyingCircumstance
	if r.QualifyingCircumstance != "" {
		circumstance = domain.ParseQualifyingCircumstance(r.QualifyingCircumstance)
	}
	return domain.SaleConfig{
		IsPlannedForSale:               resolveBool(r.IsPlannedForSale, def.IsPlannedForSale),
		SaleYear:                       resolveInt(r.SaleYear, def.SaleYear),
		SaleMonth:                      resolveInt(r.SaleMonth, def.SaleMonth),
		UseProjectedValue:              resolveBool(r.UseProjectedValue, def.UseProjectedValue),
		ExpectedSalePrice:              resolve(r.ExpectedSalePrice, def.ExpectedSalePrice),
		SellingCostsPercentage:         resolve(r.SellingCostsPercentage, def.SellingCostsPercentage),
		ReinvestProceeds:               resolveBool(r.ReinvestProceeds, def.ReinvestProceeds),
		TargetInvestmentID:             r.TargetInvestmentID,
		CapitalImprovements:            resolve(r.CapitalImprovements, def.CapitalImprovements),
		OriginalBuyingCosts:            resolve(r.OriginalBuyingCosts, def.OriginalBuyingCosts),
		FilingStatus:                   status,
		AnnualIncome:                   resolve(r.AnnualIncome, def.AnnualIncome),
		State:                          r.State,
		EnableStateTax:                 resolveBool(r.EnableStateTax, def.EnableStateTax),
		OtherCapitalGains:              resolve(r.OtherCapitalGains, def.OtherCapitalGains),
		CarryoverLosses:                resolve(r.CarryoverLosses, def.CarryoverLosses),
		IsPrimaryResidence:             resolveBool(r.IsPrimaryResidence, def.IsPrimaryResidence),
		YearsOwned:                     resolve(r.YearsOwned, def.YearsOwned),
		YearsLived:                     resolve(r.YearsLived, def.YearsLived),
		HasUsedExclusionInLastTwoYears: resolveBool(r.HasUsedExclusionInLastTwoYears, def.HasUsedExclusionInLastTwoYears),
		EnableSection121:               resolveBool(r.EnableSection121, def.EnableSection121),
		QualifyingCircumstance:         circumstance,
		EnableDepreciationRecapture:    resolveBool(r.EnableDepreciationRecapture, def.EnableDepreciationRecapture),
		TotalDepreciationTaken:         resolve(r.TotalDepreciationTaken, def.TotalDepreciationTaken),
		LandValuePercentage:            resolve(r.LandValuePercentage, def.LandValuePercentage),
	}
}

// ToPropertyRecord writes every field explicitly in the current schema.
func ToPropertyRecord(p domain.Property) PropertyRecord {
	in := p.Inputs
	return PropertyRecord{
		ID:                        p.ID,
		Name:                      p.Name,
		PurchasePrice:             NewNumber(in.PurchasePrice),
		DownPaymentPercentage:     NewNumber(in.DownPaymentPercentage),
		InterestRate:              NewNumber(in.InterestRate),
		LoanTerm:                  NewIntNumber(in.LoanTerm),
		YearsBought:               NewIntNumber(in.YearsBought),
		PropertyGrowthRate:        NewNumber(in.PropertyGrowthRate),
		PropertyGrowthModel:       string(in.PropertyGrowthModel),
		CurrentEstimatedValue:     NewNumber(in.CurrentEstimatedValue),
		UserMonthlyPayment:        NewNumber(in.UserMonthlyPayment),
		IsRentalProperty:          boolPtr(in.IsRentalProperty),
		MonthlyRent:               NewNumber(in.MonthlyRent),
		RentGrowthRate:            NewNumber(in.RentGrowthRate),
		VacancyRate:               NewNumber(in.VacancyRate),
		MaintenanceRate:           NewNumber(in.MaintenanceRate),
		PropertyManagementEnabled: boolPtr(in.PropertyManagementEnabled),
		ListingFeeRate:            NewNumber(in.ListingFeeRate),
		MonthlyManagementFeeRate:  NewNumber(in.MonthlyManagementFeeRate),
		LinkedInvestmentID:        in.LinkedInvestmentID,
		InflationRate:             NewNumber(in.InflationRate),
		Years:                     NewIntNumber(in.Years),
		StartingYear:              NewIntNumber(in.StartingYear),
		SaleConfig:                toSaleConfigRecord(p.Sale),
	}
}

func toSaleConfigRecord(s domain.SaleConfig) *SaleConfigRecord {
	return &SaleConfigRecord{
		IsPlannedForSale:               boolPtr(s.IsPlannedForSale),
		SaleYear:                       NewIntNumber(s.SaleYear),
		SaleMonth:                      NewIntNumber(s.SaleMonth),
		UseProjectedValue:              boolPtr(s.UseProjectedValue),
		ExpectedSalePrice:              NewNumber(s.ExpectedSalePrice),
		SellingCostsPercentage:         NewNumber(s.SellingCostsPercentage),
		ReinvestProceeds:               boolPtr(s.ReinvestProceeds),
		TargetInvestmentID:             s.TargetInvestmentID,
		CapitalImprovements:            NewNumber(s.CapitalImprovements),
		OriginalBuyingCosts:            NewNumber(s.OriginalBuyingCosts),
		FilingStatus:                   string(s.FilingStatus),
		AnnualIncome:                   NewNumber(s.AnnualIncome),
		State:                          s.State,
		EnableStateTax:                 boolPtr(s.EnableStateTax),
		OtherCapitalGains:              NewNumber(s.OtherCapitalGains),
		CarryoverLosses:                NewNumber(s.CarryoverLosses),
		IsPrimaryResidence:             boolPtr(s.IsPrimaryResidence),
		YearsOwned:                     NewNumber(s.YearsOwned),
		YearsLived:                     NewNumber(s.YearsLived),
		HasUsedExclusionInLastTwoYears: boolPtr(s.HasUsedExclusionInLastTwoYears),
		EnableSection121:               boolPtr(s.EnableSection121),
		QualifyingCircumstance:         string(s.QualifyingCircumstance),
		EnableDepreciationRecapture:    boolPtr(s.EnableDepreciationRecapture),
		TotalDepreciationTaken:         NewNumber(s.TotalDepreciationTaken),
		LandValuePercentage:            NewNumber(s.LandValuePercentage),
	}
}

// FromPortfolioRecord migrates rec and builds the portfolio.
func FromPortfolioRecord(rec PortfolioRecord) (*domain.Portfolio, error) {
	if err := Migrate(&rec); err != nil {
		return nil, err
	}
	p := &domain.Portfolio{
		Name:        rec.Name,
		Investments: make([]domain.Investment, 0, len(rec.Investments)),
		Properties:  make([]domain.Property, 0, len(rec.Properties)),
	}
	for _, r := range rec.Investments {
		p.Investments = append(p.Investments, FromInvestmentRecord(r))
	}
	for _, r := range rec.Properties {
		p.Properties = append(p.Properties, FromPropertyRecord(r))
	}
	return p, nil
}

// ToPortfolioRecord writes the portfolio in the current schema.
func ToPortfolioRecord(p *domain.Portfolio) PortfolioRecord {
	rec := PortfolioRecord{
		SchemaVersion: CurrentSchemaVersion,
		Name:          p.Name,
		Investments:   make([]InvestmentRecord, 0, len(p.Investments)),
		Properties:    make([]PropertyRecord, 0, len(p.Properties)),
	}
	for _, inv := range p.Investments {
		rec.Investments = append(rec.Investments, ToInvestmentRecord(inv))
	}
	for _, prop := range p.Properties {
		rec.Properties = append(rec.Properties, ToPropertyRecord(prop))
	}
	return rec
}
