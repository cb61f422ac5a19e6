package calculation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/rpgo/asset-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ErrDuplicateID is returned when two entities in a portfolio share an ID.
var ErrDuplicateID = errors.New("duplicate entity id")

// DefaultConcurrency limits concurrent property projections.
const DefaultConcurrency = 8

// CalculationEngine orchestrates investment and property projections
type CalculationEngine struct {
	TaxCalc     *ComprehensiveTaxCalculator
	Concurrency int
	Debug       bool // Enable debug output for detailed calculations
	Logger      Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithTable(nil)
}

// NewCalculationEngineWithTable creates an engine using the given tax tables.
func NewCalculationEngineWithTable(table *TaxBracketTable) *CalculationEngine {
	return &CalculationEngine{
		TaxCalc:     NewComprehensiveTaxCalculatorWithTable(table),
		Concurrency: DefaultConcurrency,
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// ProjectPropertyEntity projects a property and attaches validation and a
// summary.
func (ce *CalculationEngine) ProjectPropertyEntity(p domain.Property) domain.PropertyProjection {
	sale := p.Sale
	years := ce.ProjectProperty(p.Inputs, &sale)
	return domain.PropertyProjection{
		ID:               p.ID,
		Name:             p.Name,
		Inputs:           p.Inputs,
		Sale:             p.Sale,
		Years:            years,
		Summary:          SummarizeProperty(p.Inputs, years),
		ValidationErrors: nonNil(ValidateProperty(p.Inputs, &sale)),
	}
}

// ProjectInvestmentEntity projects an investment with the given linked flows
// and attaches validation and a summary.
func (ce *CalculationEngine) ProjectInvestmentEntity(inv domain.Investment, linkedCashFlows []decimal.Decimal) domain.InvestmentProjection {
	years := ce.ProjectInvestment(inv.Inputs, linkedCashFlows)
	summary := SummarizeInvestment(inv.Inputs, years)
	errs := ValidateInvestment(inv.Inputs)
	if summary.DepletedYear > 0 {
		errs = append(errs, fmt.Sprintf("Warning: Balance is depleted in year %d", summary.DepletedYear))
	}
	if linkedCashFlows == nil {
		linkedCashFlows = []decimal.Decimal{}
	}
	return domain.InvestmentProjection{
		ID:               inv.ID,
		Name:             inv.Name,
		Inputs:           inv.Inputs,
		LinkedCashFlows:  linkedCashFlows,
		Years:            years,
		Summary:          summary,
		ValidationErrors: nonNil(errs),
	}
}

// RunPortfolio projects every property, aggregates the flows they send to
// linked investments, then projects every investment. Output order follows
// input order.
func (ce *CalculationEngine) RunPortfolio(ctx context.Context, p *domain.Portfolio) (*domain.PortfolioProjection, error) {
	if p == nil {
		return nil, errors.New("portfolio is nil")
	}
	if err := checkUniqueIDs(p); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ce.Logger.Infof("projecting portfolio %q: %d investments, %d properties", p.Name, len(p.Investments), len(p.Properties))

	properties := make([]domain.PropertyProjection, len(p.Properties))
	limit := ce.Concurrency
	if limit < 1 {
		limit = 1
	}
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, limit)
	for i := range p.Properties {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			properties[idx] = ce.ProjectPropertyEntity(p.Properties[idx])
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(p.Investments))
	for _, inv := range p.Investments {
		known[inv.ID] = true
	}
	warnings := danglingLinks(p.Properties, known)
	for _, w := range warnings {
		ce.Logger.Warnf("%s", w)
	}

	investments := make([]domain.InvestmentProjection, len(p.Investments))
	for i, inv := range p.Investments {
		flows := BuildLinkedCashFlows(inv, properties)
		investments[i] = ce.ProjectInvestmentEntity(inv, flows)
		ce.Logger.Debugf("investment %s: final balance %s", inv.ID, investments[i].Summary.FinalBalance.StringFixed(2))
	}

	return &domain.PortfolioProjection{
		Name:             p.Name,
		Investments:      investments,
		Properties:       properties,
		ValidationErrors: nonNil(warnings),
	}, nil
}

// RunPortfolio projects with a default engine.
func RunPortfolio(ctx context.Context, p *domain.Portfolio) (*domain.PortfolioProjection, error) {
	return NewCalculationEngine().RunPortfolio(ctx, p)
}

// BuildLinkedCashFlows aligns property flows to the investment's timeline by
// calendar year. Element y-1 feeds investment year y. A linked property
// contributes its operating cash flow; reinvested after-tax sale proceeds go
// to the sale target, or to the linked investment when no target is set.
func BuildLinkedCashFlows(inv domain.Investment, properties []domain.PropertyProjection) []decimal.Decimal {
	years := inv.Inputs.Years
	if years < 0 {
		years = 0
	}
	flows := make([]decimal.Decimal, years)
	for i := range flows {
		flows[i] = decimal.Zero
	}

	for _, prop := range properties {
		linked := prop.Inputs.LinkedInvestmentID != "" && prop.Inputs.LinkedInvestmentID == inv.ID
		reinvests := prop.Sale.ReinvestProceeds && saleTarget(prop) == inv.ID
		if !linked && !reinvests {
			continue
		}
		for _, row := range prop.Years {
			if row.Year == 0 || row.IsPostSale {
				continue
			}
			idx, ok := dateutil.IndexForCalendarYear(inv.Inputs.StartingYear, years, row.CalendarYear)
			if !ok || idx == 0 {
				continue
			}
			if linked {
				flows[idx-1] = flows[idx-1].Add(row.OperatingCashFlow)
			}
			if reinvests && row.IsSaleYear && row.Sale != nil {
				flows[idx-1] = flows[idx-1].Add(row.Sale.NetAfterTaxProceeds)
			}
		}
	}
	return flows
}

func saleTarget(p domain.PropertyProjection) string {
	if p.Sale.TargetInvestmentID != "" {
		return p.Sale.TargetInvestmentID
	}
	return p.Inputs.LinkedInvestmentID
}

func checkUniqueIDs(p *domain.Portfolio) error {
	seen := make(map[string]bool, len(p.Investments)+len(p.Properties))
	check := func(id string) error {
		if id == "" {
			return nil
		}
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = true
		return nil
	}
	for _, inv := range p.Investments {
		if err := check(inv.ID); err != nil {
			return err
		}
	}
	for _, prop := range p.Properties {
		if err := check(prop.ID); err != nil {
			return err
		}
	}
	return nil
}

func danglingLinks(properties []domain.Property, known map[string]bool) []string {
	var warnings []string
	for _, prop := range properties {
		if id := prop.Inputs.LinkedInvestmentID; id != "" && !known[id] {
			warnings = append(warnings, fmt.Sprintf("Warning: Property %q links to unknown investment %q", prop.Name, id))
		}
		if prop.Sale.IsPlannedForSale && prop.Sale.ReinvestProceeds {
			if id := prop.Sale.TargetInvestmentID; id != "" && !known[id] {
				warnings = append(warnings, fmt.Sprintf("Warning: Property %q reinvests into unknown investment %q", prop.Name, id))
			}
		}
	}
	return warnings
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
