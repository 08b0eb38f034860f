// Package format renders monetary amounts for display.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes amounts rendered by Currency.
const CurrencySymbol = "S/"

// Currency returns a currency string with a symbol and thousands separators (e.g., "-S/ 1,234.56").
func Currency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	formatted := formatPositiveCurrency(d.Abs())
	if d.IsNegative() {
		return "-" + CurrencySymbol + " " + formatted
	}
	return CurrencySymbol + " " + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + formatPositiveCurrency(d.Abs())
}

// Percent renders a percentage with two decimals (e.g., "8.50%").
func Percent(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2) + "%"
}

func formatPositiveCurrency(value decimal.Decimal) string {
	formatted := value.StringFixed(2)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
