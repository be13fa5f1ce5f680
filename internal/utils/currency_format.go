package utils

import (
	"github.com/shopspring/decimal"
)

// FormatBRL formats an amount for display with the real symbol and two
// fractional digits.
// Example: amount 1000 returns "R$ 1000.00"
func FormatBRL(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(2)
}

// FormatAmount formats an amount as a plain fixed-point string with two
// fractional digits, the canonical wire representation.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
