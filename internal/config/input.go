package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of portfolio files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a portfolio from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Portfolio, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// ParseRecord decodes a portfolio record without migrating it. YAML is a
// superset of JSON, so both formats go through the YAML decoder.
func (ip *InputParser) ParseRecord(data []byte) (*PortfolioRecord, error) {
	var rec PortfolioRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &rec, nil
}

// Parse decodes, migrates and resolves a portfolio.
func (ip *InputParser) Parse(data []byte) (*domain.Portfolio, error) {
	rec, err := ip.ParseRecord(data)
	if err != nil {
		return nil, err
	}
	if err := ip.ValidateRecord(rec); err != nil {
		return nil, fmt.Errorf("portfolio validation failed: %w", err)
	}
	p, err := FromPortfolioRecord(*rec)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate portfolio: %w", err)
	}
	return p, nil
}

// ValidateRecord checks the structure of a record. Value ranges are checked
// by the calculation package and never block loading.
func (ip *InputParser) ValidateRecord(rec *PortfolioRecord) error {
	if rec.SchemaVersion > CurrentSchemaVersion {
		return fmt.Errorf("%w: %d", ErrUnknownSchemaVersion, rec.SchemaVersion)
	}
	seen := make(map[string]bool)
	for i, inv := range rec.Investments {
		if inv.ID == "" {
			continue
		}
		if seen[inv.ID] {
			return fmt.Errorf("investment %d: duplicate id %q", i, inv.ID)
		}
		seen[inv.ID] = true
	}
	for i, prop := range rec.Properties {
		if prop.ID == "" {
			continue
		}
		if seen[prop.ID] {
			return fmt.Errorf("property %d: duplicate id %q", i, prop.ID)
		}
		seen[prop.ID] = true
	}
	return nil
}

// Marshal encodes a portfolio in the current schema. format is "json" or
// "yaml".
func (ip *InputParser) Marshal(p *domain.Portfolio, format string) ([]byte, error) {
	rec := ToPortfolioRecord(p)
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml", "yml", "":
		data, err := yaml.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported portfolio format %q", format)
}

// SaveToFile writes a portfolio, choosing JSON or YAML by file extension.
func (ip *InputParser) SaveToFile(filename string, p *domain.Portfolio) error {
	format := "yaml"
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		format = "json"
	}
	data, err := ip.Marshal(p, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExamplePortfolio creates an example portfolio: a brokerage account
// fed by a rental, a primary residence sold in year 6, and a savings account
// receiving the sale proceeds.
func (ip *InputParser) CreateExamplePortfolio(startingYear int) *domain.Portfolio {
	brokerage := domain.NewInvestment("brokerage", "Brokerage Account", startingYear)
	brokerage.Inputs.InitialAmount = decimal.NewFromInt(150000)
	brokerage.Inputs.AnnualContribution = decimal.NewFromInt(12000)
	brokerage.Inputs.InflationAdjustedContributions = true
	brokerage.Inputs.Years = 15

	savings := domain.NewInvestment("savings", "High-Yield Savings", startingYear)
	savings.Inputs.InitialAmount = decimal.NewFromInt(25000)
	savings.Inputs.RateOfReturn = decimal.NewFromFloat(4.5)
	savings.Inputs.Years = 15

	rental := domain.NewProperty("rental-duplex", "Rental Duplex", startingYear)
	rental.Inputs.PurchasePrice = decimal.NewFromInt(425000)
	rental.Inputs.DownPaymentPercentage = decimal.NewFromInt(25)
	rental.Inputs.InterestRate = decimal.NewFromFloat(6.5)
	rental.Inputs.YearsBought = 3
	rental.Inputs.IsRentalProperty = true
	rental.Inputs.MonthlyRent = decimal.NewFromInt(3400)
	rental.Inputs.PropertyManagementEnabled = true
	rental.Inputs.LinkedInvestmentID = brokerage.ID
	rental.Inputs.Years = 15

	home := domain.NewProperty("primary-home", "Primary Residence", startingYear)
	home.Inputs.PurchasePrice = decimal.NewFromInt(550000)
	home.Inputs.InterestRate = decimal.NewFromFloat(5.75)
	home.Inputs.YearsBought = 4
	home.Inputs.PropertyGrowthModel = domain.GrowthFromCurrentValue
	home.Inputs.CurrentEstimatedValue = decimal.NewFromInt(640000)
	home.Inputs.Years = 15
	home.Sale.IsPlannedForSale = true
	home.Sale.SaleYear = 6
	home.Sale.SaleMonth = 7
	home.Sale.ReinvestProceeds = true
	home.Sale.TargetInvestmentID = savings.ID
	home.Sale.FilingStatus = domain.FilingMarriedJoint
	home.Sale.AnnualIncome = decimal.NewFromInt(160000)
	home.Sale.State = "PA"
	home.Sale.EnableStateTax = true
	home.Sale.IsPrimaryResidence = true
	home.Sale.YearsOwned = decimal.NewFromInt(9)
	home.Sale.YearsLived = decimal.NewFromInt(9)
	home.Sale.CapitalImprovements = decimal.NewFromInt(40000)
	home.Sale.OriginalBuyingCosts = decimal.NewFromInt(8000)

	return &domain.Portfolio{
		Name:        "Example Household",
		Investments: []domain.Investment{brokerage, savings},
		Properties:  []domain.Property{rental, home},
	}
}
