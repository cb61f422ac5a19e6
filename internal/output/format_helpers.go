package output

import (
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// FormatCurrency renders a decimal as USD with thousands separators,
// rounded to cents.
func FormatCurrency(amount decimal.Decimal) string {
	cents := amount.Round(2).Mul(decimalHundred).IntPart()
	return money.New(cents, money.USD).Display()
}

// FormatPercentage formats a percent-unit decimal with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
