package storefront

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// USDToINR is the fixed display rate. Stored prices are USD.
var USDToINR = decimal.NewFromInt(83)

var (
	thousand = decimal.NewFromInt(1_000)
	lakh     = decimal.NewFromInt(100_000)
	crore    = decimal.NewFromInt(10_000_000)
)

func ConvertUSDToINR(usd decimal.Decimal) decimal.Decimal {
	return usd.Mul(USDToINR)
}

// FormatINR renders an amount with the rupee sign and two decimals.
func FormatINR(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}

// FormatINRWhole renders an amount rounded to whole rupees.
func FormatINRWhole(amount decimal.Decimal) string {
	return "₹" + amount.Round(0).String()
}

func FormatPriceRange(lo, hi decimal.Decimal) string {
	if lo.Equal(hi) {
		return FormatINR(lo)
	}
	return fmt.Sprintf("%s - %s", FormatINR(lo), FormatINR(hi))
}

// FormatINRCompact uses the Indian numbering units: crore, lakh and thousand.
func FormatINRCompact(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThanOrEqual(crore):
		return "₹" + amount.Div(crore).StringFixed(1) + " Cr"
	case amount.GreaterThanOrEqual(lakh):
		return "₹" + amount.Div(lakh).StringFixed(1) + " L"
	case amount.GreaterThanOrEqual(thousand):
		return "₹" + amount.Div(thousand).StringFixed(1) + "K"
	}
	return FormatINR(amount)
}
