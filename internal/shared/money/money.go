package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts are stored as integer minor units (cents). Decimal strings
// with exactly two fraction digits appear only at the API boundary.

// FormatCents renders cents as a 2dp decimal string, e.g. 1198 -> "11.98"
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// ParseToCents converts a decimal amount string into cents. Amounts
// with more than two fraction digits are rejected rather than rounded.
func ParseToCents(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q must not be negative", amount)
	}

	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two decimal places", amount)
	}
	return cents.IntPart(), nil
}
