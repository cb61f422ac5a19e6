package calculation

import (
	"strings"
	"testing"

	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/stretchr/testify/assert"
)

func hasMessage(msgs []string, fragment string) bool {
	for _, m := range msgs {
		if strings.Contains(m, fragment) {
			return true
		}
	}
	return false
}

func TestValidateDefaultsAreClean(t *testing.T) {
	assert.Empty(t, ValidateInvestment(domain.DefaultInvestmentInputs(2025)))
	sale := domain.DefaultSaleConfig()
	assert.Empty(t, ValidateProperty(domain.DefaultPropertyInputs(2025), &sale))
}

func TestValidateInvestment(t *testing.T) {
	in := domain.DefaultInvestmentInputs(2025)
	in.Years = 0
	in.InitialAmount = d("-1")
	in.RateOfReturn = d("1")
	msgs := ValidateInvestment(in)
	assert.True(t, hasMessage(msgs, "Projection years"))
	assert.True(t, hasMessage(msgs, "Initial amount cannot be negative"))
	assert.True(t, hasMessage(msgs, "Inflation exceeds the rate of return"))
}

func TestValidateProperty(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.PropertyInputs, *domain.SaleConfig)
		fragment string
	}{
		{"sale year beyond horizon", func(p *domain.PropertyInputs, s *domain.SaleConfig) {
			s.IsPlannedForSale = true
			s.SaleYear = 11
		}, "Sale year must be between 1 and projection years"},
		{"sale month", func(p *domain.PropertyInputs, s *domain.SaleConfig) {
			s.IsPlannedForSale = true
			s.SaleMonth = 13
		}, "Sale month must be between 1 and 12"},
		{"expenses over 80%", func(p *domain.PropertyInputs, s *domain.SaleConfig) {
			p.IsRentalProperty = true
			p.MonthlyRent = d("1000")
			p.MaintenanceRate = d("2")
		}, "Warning: Expenses exceed 80% of rental income"},
		{"rent missing", func(p *domain.PropertyInputs, s *domain.SaleConfig) {
			p.IsRentalProperty = true
		}, "Monthly rent must be greater than 0"},
		{"down payment", func(p *domain.PropertyInputs, s *domain.SaleConfig) {
			p.DownPaymentPercentage = d("120")
		}, "Down payment must be between 0% and 100%"},
		{"unknown state", func(p *domain.PropertyInputs, s *domain.SaleConfig) {
			s.IsPlannedForSale = true
			s.EnableStateTax = true
			s.State = "Atlantis"
		}, "Unknown state"},
		{"payment below P&I", func(p *domain.PropertyInputs, s *domain.SaleConfig) {
			p.UserMonthlyPayment = d("1000")
		}, "Monthly payment is less than"},
		{"expected price", func(p *domain.PropertyInputs, s *domain.SaleConfig) {
			s.IsPlannedForSale = true
			s.UseProjectedValue = false
		}, "Expected sale price must be greater than 0"},
		{"paid off", func(p *domain.PropertyInputs, s *domain.SaleConfig) {
			p.YearsBought = 30
		}, "already paid off"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := domain.DefaultPropertyInputs(2025)
			sale := domain.DefaultSaleConfig()
			tt.mutate(&in, &sale)
			msgs := ValidateProperty(in, &sale)
			assert.True(t, hasMessage(msgs, tt.fragment), "messages: %v", msgs)
		})
	}
}

func TestValidationDoesNotBlockProjection(t *testing.T) {
	in := domain.DefaultPropertyInputs(2025)
	in.DownPaymentPercentage = d("150")
	in.InterestRate = d("-2")
	msgs := ValidateProperty(in, nil)
	assert.NotEmpty(t, msgs)
	years := ProjectProperty(in, nil)
	assert.Len(t, years, 11)
}

func TestValidatePortfolio(t *testing.T) {
	inv := domain.NewInvestment("inv", "Brokerage", 2025)
	prop := domain.NewProperty("home", "Home", 2025)
	prop.Inputs.LinkedInvestmentID = "missing"

	v := ValidatePortfolio(&domain.Portfolio{
		Investments: []domain.Investment{inv},
		Properties:  []domain.Property{prop},
	})
	assert.True(t, v.Valid, "dangling links are warnings")
	assert.Empty(t, v.Investments["inv"])
	assert.Empty(t, v.Properties["home"])
	assert.True(t, hasMessage(v.Portfolio, "unknown investment"))

	prop.Inputs.PurchasePrice = d("0")
	dup := domain.NewInvestment("inv", "Copy", 2025)
	v = ValidatePortfolio(&domain.Portfolio{
		Investments: []domain.Investment{inv, dup},
		Properties:  []domain.Property{prop},
	})
	assert.False(t, v.Valid)
	assert.True(t, hasMessage(v.Portfolio, "duplicate"))
	assert.True(t, hasMessage(v.Properties["home"], "Purchase price must be greater than 0"))
}

func TestIsWarning(t *testing.T) {
	assert.True(t, IsWarning("Warning: Mortgage is already paid off"))
	assert.False(t, IsWarning("Sale month must be between 1 and 12"))
}
