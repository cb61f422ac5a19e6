package calculation

import (
	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/rpgo/asset-projector/pkg/dateutil"
	"github.com/rpgo/asset-projector/pkg/finmath"
	"github.com/shopspring/decimal"
)

// AdjustedCostBasis is purchase price plus improvements plus buying costs.
func AdjustedCostBasis(in domain.PropertyInputs, sale domain.SaleConfig) decimal.Decimal {
	return in.PurchasePrice.Add(sale.CapitalImprovements).Add(sale.OriginalBuyingCosts)
}

// CapitalGain is the amount realized over basis, never negative.
func CapitalGain(effectiveSalePrice, sellingCosts, basis decimal.Decimal) decimal.Decimal {
	return finmath.FloorZero(effectiveSalePrice.Sub(sellingCosts).Sub(basis))
}

// HoldingYears is the time from purchase to the sale date: years already
// owned plus the projection years before the sale plus the sale-year months.
func HoldingYears(in domain.PropertyInputs, sale domain.SaleConfig) decimal.Decimal {
	whole := decimal.NewFromInt(int64(in.YearsBought + sale.SaleYear - 1))
	return whole.Add(dateutil.MonthFraction(sale.SaleMonth))
}

// EstimateDepreciation estimates straight-line residential depreciation
// taken from purchase until the sale date, capped at the depreciable basis.
func (ce *CalculationEngine) EstimateDepreciation(in domain.PropertyInputs, sale domain.SaleConfig) decimal.Decimal {
	land := in.PurchasePrice.Mul(finmath.FromPercent(sale.LandValuePercentage))
	annual := ce.TaxCalc.RecaptureCalc.CalculateAnnualDepreciation(in.PurchasePrice, land, true)
	total := ce.TaxCalc.RecaptureCalc.CalculateTotalDepreciation(annual, HoldingYears(in, sale))
	return decimal.Min(total, finmath.FloorZero(in.PurchasePrice.Sub(land)))
}

// CalculateSale runs the sale waterfall: price, selling costs, payoff,
// basis, gain, exclusion, federal and state tax, recapture, net proceeds.
// projectedValue is the property value in the sale year and
// preSaleMortgageBalance the loan balance at the sale month.
func (ce *CalculationEngine) CalculateSale(in domain.PropertyInputs, sale domain.SaleConfig, projectedValue, preSaleMortgageBalance decimal.Decimal) domain.SaleResult {
	price := sale.ExpectedSalePrice
	if sale.UseProjectedValue {
		price = projectedValue
	}
	sellingCosts := price.Mul(finmath.FromPercent(sale.SellingCostsPercentage))
	netProceeds := price.Sub(sellingCosts).Sub(preSaleMortgageBalance)
	basis := AdjustedCostBasis(in, sale)
	gain := CapitalGain(price, sellingCosts, basis)

	var exclusion *domain.ExclusionResult
	gainAfterExclusion := gain
	if sale.EnableSection121 {
		ex := ce.TaxCalc.Section121Calc.ExclusionForSale(gain, sale)
		gainAfterExclusion = ex.RemainingGain
		ex.MaxExclusion = finmath.Cents(ex.MaxExclusion)
		ex.AppliedExclusion = finmath.Cents(ex.AppliedExclusion)
		ex.RemainingGain = finmath.Cents(ex.RemainingGain)
		exclusion = &ex
	}

	federalRate := ce.TaxCalc.FederalTaxCalc.GetCapitalGainsRate(sale.AnnualIncome, sale.FilingStatus)
	federalTax, taxable := ce.TaxCalc.FederalTaxCalc.CalculateAdjustedFederalTax(
		gainAfterExclusion, sale.OtherCapitalGains, sale.CarryoverLosses, sale.AnnualIncome, sale.FilingStatus)

	stateTax, stateRate := decimal.Zero, decimal.Zero
	if sale.EnableStateTax {
		stateTax, stateRate = ce.TaxCalc.StateTaxCalc.CalculateStateTax(taxable, sale.State)
	}

	var recapture *domain.RecaptureResult
	recaptureTax := decimal.Zero
	if sale.EnableDepreciationRecapture {
		depreciation := sale.TotalDepreciationTaken
		estimated := false
		if !depreciation.IsPositive() && in.IsRentalProperty {
			depreciation = ce.EstimateDepreciation(in, sale)
			estimated = depreciation.IsPositive()
		}
		rec := ce.TaxCalc.RecaptureCalc.CalculateRecapture(RecaptureInput{
			TotalDepreciationTaken: depreciation,
			AnnualIncome:           sale.AnnualIncome,
			FilingStatus:           sale.FilingStatus,
		})
		recaptureTax = rec.RecaptureTax
		rec.Estimated = estimated
		rec.TotalDepreciationTaken = finmath.Cents(rec.TotalDepreciationTaken)
		rec.RecaptureTax = finmath.Cents(rec.RecaptureTax)
		recapture = &rec
	}

	totalTax := federalTax.Add(stateTax).Add(recaptureTax)
	return domain.SaleResult{
		EffectiveSalePrice:     finmath.Cents(price),
		SellingCosts:           finmath.Cents(sellingCosts),
		PreSaleMortgageBalance: finmath.Cents(preSaleMortgageBalance),
		NetSaleProceeds:        finmath.Cents(netProceeds),
		AdjustedCostBasis:      finmath.Cents(basis),
		CapitalGain:            finmath.Cents(gain),
		Section121:             exclusion,
		GainAfterExclusion:     finmath.Cents(gainAfterExclusion),
		TaxableGain:            finmath.Cents(taxable),
		FederalRate:            federalRate,
		FederalTax:             finmath.Cents(federalTax),
		StateRate:              stateRate,
		StateTax:               finmath.Cents(stateTax),
		Recapture:              recapture,
		TotalTax:               finmath.Cents(totalTax),
		EffectiveTaxRate:       finmath.Cents(finmath.SafeDiv(totalTax, gain).Mul(finmath.Hundred)),
		NetAfterTaxProceeds:    finmath.Cents(netProceeds.Sub(totalTax)),
	}
}
