// Package money renders decimal amounts for display in discount breakdowns.
package money

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Format renders an amount with thousands separators and exactly two
// fraction digits, e.g. 1234.5 becomes "1,234.50".
func Format(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return humanize.FormatFloat("#,###.##", f)
}

// FormatPercent renders a percentage rate for display, e.g. 10 becomes "10.00%".
func FormatPercent(rate decimal.Decimal) string {
	return Format(rate) + "%"
}
