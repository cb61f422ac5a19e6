package output

import (
	"fmt"

	"github.com/rpgo/asset-projector/internal/domain"
)

// DefaultAssumptions lists modeling assumptions shared by every projection.
var DefaultAssumptions = []string{
	"Federal capital-gains and ordinary brackets: 2024 thresholds held constant",
	"State capital gains: simplified flat rate per state",
	"Real values: nominal values deflated by (1 + inflation)^year",
	"Monetary amounts rounded to cents at output only",
}

// GenerateAssumptions describes the rates behind each asset in results,
// followed by DefaultAssumptions.
func GenerateAssumptions(results *domain.PortfolioProjection) []string {
	var out []string
	for _, inv := range results.Investments {
		in := inv.Inputs
		out = append(out, fmt.Sprintf("%s: %s%% return, %s%% inflation, %d years from %d",
			inv.Name, in.RateOfReturn.StringFixed(1), in.InflationRate.StringFixed(1), in.Years, in.StartingYear))
	}
	for _, prop := range results.Properties {
		in := prop.Inputs
		line := fmt.Sprintf("%s: %s%% appreciation (%s), %s%% mortgage over %d years, %s%% inflation",
			prop.Name, in.PropertyGrowthRate.StringFixed(1), in.PropertyGrowthModel,
			in.InterestRate.StringFixed(2), in.LoanTerm, in.InflationRate.StringFixed(1))
		if in.IsRentalProperty {
			line += fmt.Sprintf(", rent growth %s%%, vacancy %s%%", in.RentGrowthRate.StringFixed(1), in.VacancyRate.StringFixed(1))
		}
		out = append(out, line)
	}
	return append(out, DefaultAssumptions...)
}
