package config

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Number is a numeric record field. It accepts a number, a numeric string or
// an empty string. Valid is false when the raw value was empty or did not
// parse; such fields resolve to zero.
type Number struct {
	Value decimal.Decimal
	Valid bool
}

// NewNumber returns a valid Number.
func NewNumber(d decimal.Decimal) *Number {
	return &Number{Value: d, Valid: true}
}

// NewIntNumber returns a valid Number holding i.
func NewIntNumber(i int) *Number {
	return NewNumber(decimal.NewFromInt(int64(i)))
}

var numberCleaner = strings.NewReplacer(",", "", "$", "", "%", "", "_", "")

func (n *Number) parse(raw string) {
	s := numberCleaner.Replace(strings.TrimSpace(raw))
	v, err := decimal.NewFromString(s)
	if err != nil {
		*n = Number{}
		return
	}
	*n = Number{Value: v, Valid: true}
}

// UnmarshalJSON never fails: bad input yields an invalid Number.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	if s == "null" {
		*n = Number{}
		return nil
	}
	n.parse(s)
	return nil
}

// UnmarshalYAML never fails: bad input yields an invalid Number.
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		*n = Number{}
		return nil
	}
	n.parse(node.Value)
	return nil
}

// MarshalJSON writes the value as a bare JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Value.String()), nil
}

// MarshalYAML writes the value as a plain numeric scalar.
func (n Number) MarshalYAML() (interface{}, error) {
	tag := "!!float"
	if n.Value.IsInteger() {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: n.Value.String()}, nil
}

// resolve returns def when the field was absent, zero when it was present
// but empty or invalid, and the parsed value otherwise.
func resolve(n *Number, def decimal.Decimal) decimal.Decimal {
	return resolveOr(n, def, decimal.Zero)
}

func resolveOr(n *Number, def, invalid decimal.Decimal) decimal.Decimal {
	if n == nil {
		return def
	}
	if !n.Valid {
		return invalid
	}
	return n.Value
}

func resolveInt(n *Number, def int) int {
	if n == nil {
		return def
	}
	if !n.Valid {
		return 0
	}
	return int(n.Value.Round(0).IntPart())
}

func resolveBool(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func boolPtr(b bool) *bool { return &b }
