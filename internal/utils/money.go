package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary magnitude from user input, accepting
// both "1234.56" and the pt-BR "1234,56" form. The result must be
// strictly positive and have at most two decimal places.
func ParseAmount(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive")
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	return d, nil
}

// ParseSignedAmount is ParseAmount without the positivity requirement,
// used for initial account balances which may legitimately be negative.
func ParseSignedAmount(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	return d, nil
}

// FormatAmount renders a monetary value with two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
