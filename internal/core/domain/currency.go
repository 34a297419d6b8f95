package domain

import "strings"

// DefaultCurrency is assumed when a request does not name one.
const DefaultCurrency = "USD"

// CurrencySymbol returns the display symbol for a currency code. Only USD and
// TRY are supported; anything else falls back to the dollar sign.
func CurrencySymbol(code string) string {
	if strings.EqualFold(code, "TRY") {
		return "₺"
	}
	return "$"
}
