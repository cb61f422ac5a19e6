package calculation

import (
	"fmt"
	"strings"

	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/rpgo/asset-projector/pkg/finmath"
	"github.com/shopspring/decimal"
)

// MaxProjectionYears bounds the projection horizon accepted without warning.
const MaxProjectionYears = 100

var (
	expenseWarningRatio = decimal.RequireFromString("0.8")
	maxInterestRate     = decimal.NewFromInt(30)
)

func percentInRange(v decimal.Decimal) bool {
	return !v.IsNegative() && !v.GreaterThan(finmath.Hundred)
}

// ValidateInvestment returns advisory messages; projection still runs with
// any inputs.
func ValidateInvestment(in domain.InvestmentInputs) []string {
	var errs []string
	if in.Years < 1 || in.Years > MaxProjectionYears {
		errs = append(errs, fmt.Sprintf("Projection years must be between 1 and %d", MaxProjectionYears))
	}
	if in.InitialAmount.IsNegative() {
		errs = append(errs, "Initial amount cannot be negative")
	}
	if in.RateOfReturn.LessThan(finmath.Hundred.Neg()) || in.RateOfReturn.GreaterThan(finmath.Hundred) {
		errs = append(errs, "Rate of return must be between -100% and 100%")
	}
	if in.InflationRate.LessThan(finmath.Hundred.Neg()) || in.InflationRate.GreaterThan(finmath.Hundred) {
		errs = append(errs, "Inflation rate must be between -100% and 100%")
	}
	if in.RateOfReturn.LessThan(in.InflationRate) {
		errs = append(errs, "Warning: Inflation exceeds the rate of return; real value will decline")
	}
	return errs
}

// ValidateProperty returns advisory messages for a property and its sale
// config.
func ValidateProperty(in domain.PropertyInputs, sale *domain.SaleConfig) []string {
	var errs []string
	if !in.PurchasePrice.IsPositive() {
		errs = append(errs, "Purchase price must be greater than 0")
	}
	if !percentInRange(in.DownPaymentPercentage) {
		errs = append(errs, "Down payment must be between 0% and 100%")
	}
	if in.InterestRate.IsNegative() || in.InterestRate.GreaterThan(maxInterestRate) {
		errs = append(errs, "Interest rate must be between 0% and 30%")
	}
	if in.LoanAmount().IsPositive() && (in.LoanTerm < 1 || in.LoanTerm > 50) {
		errs = append(errs, "Loan term must be between 1 and 50 years")
	}
	if in.YearsBought < 0 {
		errs = append(errs, "Years bought cannot be negative")
	} else if in.LoanTerm > 0 && in.YearsBought >= in.LoanTerm {
		errs = append(errs, "Warning: Mortgage is already paid off")
	}
	if in.Years < 1 || in.Years > MaxProjectionYears {
		errs = append(errs, fmt.Sprintf("Projection years must be between 1 and %d", MaxProjectionYears))
	}
	if in.PropertyGrowthModel == domain.GrowthFromCurrentValue && !in.CurrentEstimatedValue.IsPositive() {
		errs = append(errs, "Warning: Current estimated value is not set; growing from purchase price")
	}
	if in.UserMonthlyPayment.IsPositive() {
		pi := finmath.AmortizedPayment(in.LoanAmount(), in.InterestRate, in.LoanTerm*12)
		if in.UserMonthlyPayment.LessThan(finmath.Cents(pi)) {
			errs = append(errs, "Warning: Monthly payment is less than the principal and interest payment")
		}
	}

	if in.IsRentalProperty {
		errs = append(errs, validateRental(in)...)
	}
	if sale != nil && sale.IsPlannedForSale {
		errs = append(errs, validateSale(in, *sale)...)
	}
	return errs
}

func validateRental(in domain.PropertyInputs) []string {
	var errs []string
	if !in.MonthlyRent.IsPositive() {
		errs = append(errs, "Monthly rent must be greater than 0 for a rental property")
	}
	if !percentInRange(in.VacancyRate) {
		errs = append(errs, "Vacancy rate must be between 0% and 100%")
	}
	if in.MaintenanceRate.IsNegative() {
		errs = append(errs, "Maintenance rate cannot be negative")
	}
	if in.PropertyManagementEnabled && (!percentInRange(in.ListingFeeRate) || !percentInRange(in.MonthlyManagementFeeRate)) {
		errs = append(errs, "Management fees must be between 0% and 100%")
	}
	first := RentalForYear(in, 1, PropertyValue(in, 1))
	if first.AnnualRentalIncome.IsPositive() &&
		first.TotalRentalExpenses.GreaterThan(first.AnnualRentalIncome.Mul(expenseWarningRatio)) {
		errs = append(errs, "Warning: Expenses exceed 80% of rental income")
	}
	return errs
}

func validateSale(in domain.PropertyInputs, sale domain.SaleConfig) []string {
	var errs []string
	if sale.SaleYear < 1 || sale.SaleYear > in.Years {
		errs = append(errs, "Sale year must be between 1 and projection years")
	}
	if sale.SaleMonth < 1 || sale.SaleMonth > 12 {
		errs = append(errs, "Sale month must be between 1 and 12")
	}
	if !sale.UseProjectedValue && !sale.ExpectedSalePrice.IsPositive() {
		errs = append(errs, "Expected sale price must be greater than 0")
	}
	if !percentInRange(sale.SellingCostsPercentage) {
		errs = append(errs, "Selling costs must be between 0% and 100%")
	}
	if sale.AnnualIncome.IsNegative() {
		errs = append(errs, "Annual income cannot be negative")
	}
	if sale.CapitalImprovements.IsNegative() || sale.OriginalBuyingCosts.IsNegative() {
		errs = append(errs, "Capital improvements and buying costs cannot be negative")
	}
	if sale.EnableStateTax {
		if _, ok := NewTaxBracketTable2024().StateRate(sale.State); !ok {
			errs = append(errs, fmt.Sprintf("Warning: Unknown state %q; state tax will be 0", sale.State))
		}
	}
	if sale.EnableSection121 && sale.YearsLived.GreaterThan(sale.YearsOwned) {
		errs = append(errs, "Warning: Years lived exceeds years owned")
	}
	if sale.EnableDepreciationRecapture && !percentInRange(sale.LandValuePercentage) {
		errs = append(errs, "Land value percentage must be between 0% and 100%")
	}
	if sale.ReinvestProceeds && sale.TargetInvestmentID == "" && in.LinkedInvestmentID == "" {
		errs = append(errs, "Warning: Proceeds are reinvested but no target investment is set")
	}
	return errs
}

// PortfolioValidation collects advisory messages for a whole portfolio.
// Entity messages are keyed by ID.
type PortfolioValidation struct {
	Valid       bool                `json:"valid"`
	Portfolio   []string            `json:"portfolio"`
	Investments map[string][]string `json:"investments"`
	Properties  map[string][]string `json:"properties"`
}

// ValidatePortfolio runs every entity validation plus the cross-entity
// checks. Valid is false when any message is not a warning or when IDs
// collide.
func ValidatePortfolio(p *domain.Portfolio) PortfolioValidation {
	v := PortfolioValidation{
		Valid:       true,
		Portfolio:   []string{},
		Investments: map[string][]string{},
		Properties:  map[string][]string{},
	}
	if err := checkUniqueIDs(p); err != nil {
		v.Valid = false
		v.Portfolio = append(v.Portfolio, err.Error())
	}
	known := make(map[string]bool, len(p.Investments))
	for _, inv := range p.Investments {
		known[inv.ID] = true
		msgs := ValidateInvestment(inv.Inputs)
		v.Investments[inv.ID] = nonNil(msgs)
		v.Valid = v.Valid && !hasError(msgs)
	}
	for _, prop := range p.Properties {
		sale := prop.Sale
		msgs := ValidateProperty(prop.Inputs, &sale)
		v.Properties[prop.ID] = nonNil(msgs)
		v.Valid = v.Valid && !hasError(msgs)
	}
	v.Portfolio = append(v.Portfolio, danglingLinks(p.Properties, known)...)
	return v
}

// IsWarning reports whether a validation message is advisory only.
func IsWarning(msg string) bool {
	return strings.HasPrefix(msg, "Warning:")
}

func hasError(msgs []string) bool {
	for _, m := range msgs {
		if !IsWarning(m) {
			return true
		}
	}
	return false
}
