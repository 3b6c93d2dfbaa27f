// Package money centralizes currency formatting and debt arithmetic so that
// handlers, reports, and the PDF renderer all agree on presentation.
package money

import "github.com/shopspring/decimal"

// Debt status labels derived from the sign of the remaining balance.
const (
	StatusOutstanding = "Outstanding"
	StatusOverpaid    = "Overpaid"
	StatusPaidInFull  = "Paid in Full"
)

// FormatCurrency renders an amount as "$123.46", rounding to two decimals.
func FormatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// DebtStatus maps the sign of a remaining balance to its display label.
func DebtStatus(remaining decimal.Decimal) string {
	switch {
	case remaining.IsPositive():
		return StatusOutstanding
	case remaining.IsNegative():
		return StatusOverpaid
	default:
		return StatusPaidInFull
	}
}

// Sum adds a slice of amounts. Returns zero for an empty slice.
func Sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Average returns total/count rounded to cents, or zero when count is zero.
func Average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}
