package calculation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkedPortfolio() *domain.Portfolio {
	inv := domain.NewInvestment("inv-a", "Brokerage", 2025)
	prop := domain.NewProperty("prop-1", "Duplex", 2025)
	prop.Inputs = rentalProperty()
	prop.Inputs.LinkedInvestmentID = "inv-a"
	return &domain.Portfolio{
		Name:        "test",
		Investments: []domain.Investment{inv},
		Properties:  []domain.Property{prop},
	}
}

func TestRunPortfolioLinksOperatingCashFlow(t *testing.T) {
	res, err := NewCalculationEngine().RunPortfolio(context.Background(), linkedPortfolio())
	require.NoError(t, err)
	require.Len(t, res.Investments, 1)
	require.Len(t, res.Properties, 1)

	inv := res.Investments[0]
	prop := res.Properties[0]
	require.Len(t, inv.LinkedCashFlows, 10)
	for y := 1; y <= 10; y++ {
		assert.True(t, prop.Years[y].OperatingCashFlow.Equal(inv.LinkedCashFlows[y-1]), "year %d", y)
		assert.True(t, inv.Years[y].CashFlow.Equal(inv.LinkedCashFlows[y-1]), "year %d", y)
	}
	assert.Empty(t, res.ValidationErrors)
}

func TestLinkedCashFlowsAlignByCalendarYear(t *testing.T) {
	p := linkedPortfolio()
	p.Investments[0].Inputs.StartingYear = 2026

	res, err := NewCalculationEngine().RunPortfolio(context.Background(), p)
	require.NoError(t, err)

	flows := res.Investments[0].LinkedCashFlows
	prop := res.Properties[0]
	// Investment year 1 is 2027, which is property year 2.
	assert.True(t, flows[0].Equal(prop.Years[2].OperatingCashFlow))
	// 2036 is past the property horizon.
	assert.True(t, flows[9].IsZero())
}

func TestReinvestedProceeds(t *testing.T) {
	p := linkedPortfolio()
	p.Investments = append(p.Investments, domain.NewInvestment("inv-b", "Index fund", 2025))
	sale := plannedSale(3, 12)
	sale.ReinvestProceeds = true
	sale.TargetInvestmentID = "inv-b"
	p.Properties[0].Sale = *sale

	res, err := NewCalculationEngine().RunPortfolio(context.Background(), p)
	require.NoError(t, err)

	saleRow := res.Properties[0].SaleYearRow()
	require.NotNil(t, saleRow)
	require.NotNil(t, saleRow.Sale)

	a := res.Investments[0].LinkedCashFlows
	b := res.Investments[1].LinkedCashFlows
	assert.True(t, a[2].Equal(saleRow.OperatingCashFlow))
	assert.True(t, a[3].IsZero())
	assert.True(t, b[2].Equal(saleRow.Sale.NetAfterTaxProceeds))
	assert.True(t, b[0].IsZero())

	// Without a target the linked investment receives the proceeds.
	p.Properties[0].Sale.TargetInvestmentID = ""
	res, err = NewCalculationEngine().RunPortfolio(context.Background(), p)
	require.NoError(t, err)
	want := saleRow.OperatingCashFlow.Add(saleRow.Sale.NetAfterTaxProceeds)
	assert.True(t, res.Investments[0].LinkedCashFlows[2].Equal(want))
	assert.True(t, res.Investments[1].LinkedCashFlows[2].IsZero())
}

func TestBuildLinkedCashFlowsIgnoresUnrelated(t *testing.T) {
	inv := domain.NewInvestment("x", "x", 2025)
	prop := projectLinkedProperty(t, "y")
	flows := BuildLinkedCashFlows(inv, []domain.PropertyProjection{prop})
	require.Len(t, flows, 10)
	for _, f := range flows {
		assert.True(t, f.IsZero())
	}
}

func projectLinkedProperty(t *testing.T, linked string) domain.PropertyProjection {
	t.Helper()
	prop := domain.NewProperty("p", "p", 2025)
	prop.Inputs.LinkedInvestmentID = linked
	return NewCalculationEngine().ProjectPropertyEntity(prop)
}

func TestRunPortfolioErrors(t *testing.T) {
	_, err := NewCalculationEngine().RunPortfolio(context.Background(), nil)
	assert.Error(t, err)

	dup := linkedPortfolio()
	dup.Properties[0].ID = "inv-a"
	_, err = NewCalculationEngine().RunPortfolio(context.Background(), dup)
	assert.True(t, errors.Is(err, ErrDuplicateID))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewCalculationEngine().RunPortfolio(ctx, linkedPortfolio())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunPortfolioDanglingLinks(t *testing.T) {
	p := linkedPortfolio()
	p.Properties[0].Inputs.LinkedInvestmentID = "missing"

	res, err := NewCalculationEngine().RunPortfolio(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, res.ValidationErrors, 1)
	assert.Contains(t, res.ValidationErrors[0], "unknown investment")
	for _, f := range res.Investments[0].LinkedCashFlows {
		assert.True(t, f.IsZero())
	}
}

func TestRunPortfolioPreservesOrder(t *testing.T) {
	p := &domain.Portfolio{Name: "order"}
	for i := 0; i < 12; i++ {
		prop := domain.NewProperty(fmt.Sprintf("p%d", i), fmt.Sprintf("Property %d", i), 2025)
		prop.Inputs.PurchasePrice = decimal.NewFromInt(int64(100000 + i*1000))
		p.Properties = append(p.Properties, prop)
	}
	ce := NewCalculationEngine()
	ce.Concurrency = 3
	res, err := ce.RunPortfolio(context.Background(), p)
	require.NoError(t, err)
	for i, prop := range res.Properties {
		assert.Equal(t, fmt.Sprintf("p%d", i), prop.ID)
	}
}

func TestEngineLogging(t *testing.T) {
	var buf bytes.Buffer
	ce := NewCalculationEngine()
	ce.SetLogger(NewSlogLogger(NewHandlerLogger(&buf, slog.LevelDebug, true)))

	_, err := ce.RunPortfolio(context.Background(), linkedPortfolio())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "projecting portfolio")

	ce.SetLogger(nil)
	assert.IsType(t, NopLogger{}, ce.Logger)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLogLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
