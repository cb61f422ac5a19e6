package calculation

import (
	"strings"

	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX TABLE ASSUMPTIONS:
//
// 1. Federal long-term capital-gains brackets (0/15/20%) use 2024 thresholds
//    for every projection year; no inflation indexing.
// 2. The bracket containing taxable income supplies one flat rate that applies
//    to the whole gain. This is not a graduated computation.
// 3. Ordinary-income brackets are only used to cap depreciation recapture.
// 4. State rates are a single simplified rate per state applied to the gain.

// TaxBracket is a half-open income interval [Min, Max). A zero Max marks the
// open-ended top bracket.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// Contains reports whether income falls inside the bracket.
func (b TaxBracket) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.Min) {
		return false
	}
	return b.Max.IsZero() || income.LessThan(b.Max)
}

// TaxBracketTable holds the static bracket and rate data.
type TaxBracketTable struct {
	Year         int
	CapitalGains map[domain.FilingStatus][]TaxBracket
	Ordinary     map[domain.FilingStatus][]TaxBracket
	StateRates   map[string]decimal.Decimal // keyed by two-letter code
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// brackets builds contiguous brackets from upper thresholds; the last rate is
// open-ended.
func brackets(thresholds []int64, rates []string) []TaxBracket {
	out := make([]TaxBracket, 0, len(rates))
	lower := decimal.Zero
	for i, r := range rates {
		b := TaxBracket{Min: lower, Rate: d(r)}
		if i < len(thresholds) {
			b.Max = decimal.NewFromInt(thresholds[i])
			lower = b.Max
		}
		out = append(out, b)
	}
	return out
}

var (
	capitalGainsRates = []string{"0", "0.15", "0.20"}
	ordinaryRates     = []string{"0.10", "0.12", "0.22", "0.24", "0.32", "0.35", "0.37"}
)

// NewTaxBracketTable2024 returns the 2024 federal tables and simplified
// state rates.
func NewTaxBracketTable2024() *TaxBracketTable {
	return &TaxBracketTable{
		Year: 2024,
		CapitalGains: map[domain.FilingStatus][]TaxBracket{
			domain.FilingSingle:          brackets([]int64{47025, 518900}, capitalGainsRates),
			domain.FilingMarriedJoint:    brackets([]int64{94050, 583750}, capitalGainsRates),
			domain.FilingMarriedSeparate: brackets([]int64{47025, 291850}, capitalGainsRates),
			domain.FilingHeadOfHousehold: brackets([]int64{63000, 551350}, capitalGainsRates),
		},
		Ordinary: map[domain.FilingStatus][]TaxBracket{
			domain.FilingSingle:          brackets([]int64{11600, 47150, 100525, 191950, 243725, 609350}, ordinaryRates),
			domain.FilingMarriedJoint:    brackets([]int64{23200, 94300, 201050, 383900, 487450, 731200}, ordinaryRates),
			domain.FilingMarriedSeparate: brackets([]int64{11600, 47150, 100525, 191950, 243725, 365600}, ordinaryRates),
			domain.FilingHeadOfHousehold: brackets([]int64{16550, 63100, 100500, 191950, 243700, 609350}, ordinaryRates),
		},
		StateRates: map[string]decimal.Decimal{
			"AL": d("0.05"), "AK": d("0"), "AZ": d("0.025"), "AR": d("0.039"),
			"CA": d("0.093"), "CO": d("0.044"), "CT": d("0.0699"), "DE": d("0.066"),
			"DC": d("0.085"), "FL": d("0"), "GA": d("0.0539"), "HI": d("0.0725"),
			"ID": d("0.058"), "IL": d("0.0495"), "IN": d("0.0305"), "IA": d("0.057"),
			"KS": d("0.057"), "KY": d("0.04"), "LA": d("0.0425"), "ME": d("0.0715"),
			"MD": d("0.0575"), "MA": d("0.05"), "MI": d("0.0425"), "MN": d("0.0785"),
			"MS": d("0.047"), "MO": d("0.048"), "MT": d("0.059"), "NE": d("0.0584"),
			"NV": d("0"), "NH": d("0"), "NJ": d("0.0637"), "NM": d("0.049"),
			"NY": d("0.0685"), "NC": d("0.045"), "ND": d("0.0195"), "OH": d("0.035"),
			"OK": d("0.0475"), "OR": d("0.099"), "PA": d("0.0307"), "RI": d("0.0599"),
			"SC": d("0.064"), "SD": d("0"), "TN": d("0"), "TX": d("0"),
			"UT": d("0.0465"), "VT": d("0.0875"), "VA": d("0.0575"), "WA": d("0.07"),
			"WV": d("0.0512"), "WI": d("0.0765"), "WY": d("0"),
		},
	}
}

var stateCodes = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"district of columbia": "DC", "washington dc": "DC", "florida": "FL", "georgia": "GA",
	"hawaii": "HI", "idaho": "ID", "illinois": "IL", "indiana": "IN", "iowa": "IA",
	"kansas": "KS", "kentucky": "KY", "louisiana": "LA", "maine": "ME",
	"maryland": "MD", "massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT", "nebraska": "NE",
	"nevada": "NV", "new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM",
	"new york": "NY", "north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA", "rhode island": "RI",
	"south carolina": "SC", "south dakota": "SD", "tennessee": "TN", "texas": "TX",
	"utah": "UT", "vermont": "VT", "virginia": "VA", "washington": "WA",
	"west virginia": "WV", "wisconsin": "WI", "wyoming": "WY",
}

// NormalizeState maps a state name or code to its two-letter code. The
// second result is false when the state is not recognized.
func NormalizeState(state string) (string, bool) {
	s := strings.TrimSpace(state)
	if len(s) == 2 {
		code := strings.ToUpper(s)
		return code, true
	}
	code, ok := stateCodes[strings.ToLower(s)]
	return code, ok
}

func (t *TaxBracketTable) lookup(table map[domain.FilingStatus][]TaxBracket, income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	bs, ok := table[status]
	if !ok {
		bs = table[domain.FilingSingle]
	}
	if len(bs) == 0 {
		return decimal.Zero
	}
	if income.LessThan(bs[0].Min) {
		return bs[0].Rate
	}
	for _, b := range bs {
		if b.Contains(income) {
			return b.Rate
		}
	}
	return bs[len(bs)-1].Rate
}

// CapitalGainsRate returns the flat long-term capital-gains rate of the
// bracket containing income.
func (t *TaxBracketTable) CapitalGainsRate(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return t.lookup(t.CapitalGains, income, status)
}

// OrdinaryRate returns the marginal ordinary-income rate for income.
func (t *TaxBracketTable) OrdinaryRate(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return t.lookup(t.Ordinary, income, status)
}

// StateRate returns the simplified capital-gains rate for a state name or
// code. Unknown states return zero and false.
func (t *TaxBracketTable) StateRate(state string) (decimal.Decimal, bool) {
	code, ok := NormalizeState(state)
	if !ok {
		return decimal.Zero, false
	}
	rate, ok := t.StateRates[code]
	if !ok {
		return decimal.Zero, false
	}
	return rate, true
}
