package utils

import "github.com/shopspring/decimal"

// FormatAmount renders a monetary amount with exactly two decimal places.
// Example: 14 -> "14.00", 8.5 -> "8.50".
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
