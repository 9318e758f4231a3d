package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCommissionRate is the standard agent commission percentage applied
// when the submitted rate is blank or unparseable.
var DefaultCommissionRate = decimal.NewFromFloat(15.00)

// parseOptionalMoney turns a form-submitted amount into a nullable decimal.
// Blank, unparseable or negative input stays null rather than becoming zero,
// so a skipped field is distinguishable from an actual zero amount.
func parseOptionalMoney(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil
	}
	d = d.Round(2)
	return &d
}

// parseRequiredMoney parses an amount that must be present, valid and
// non-negative.
func parseRequiredMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidInput
	}
	return d.Round(2), nil
}

// parseCommissionRate applies the default-rate fallback
func parseCommissionRate(s string) decimal.Decimal {
	d := parseOptionalMoney(s)
	if d == nil {
		return DefaultCommissionRate
	}
	return *d
}
