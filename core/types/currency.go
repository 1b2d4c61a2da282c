// Package types - Currency and plan identity types
package types

import "strings"

// Currency represents a currency code as it arrives from upstream plan
// records. Case is preserved; lookups normalise to upper case.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// DefaultCurrency is used for plans that do not declare a currency.
const DefaultCurrency Currency = "usd"

// currencySymbols is never written after init; use CurrencySymbol to read it.
var currencySymbols = map[Currency]string{
	CurrencyUSD: "$",
	CurrencyGBP: "£",
	CurrencyEUR: "€",
}

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Upper returns the upper-case form of the code.
func (c Currency) Upper() Currency {
	return Currency(strings.ToUpper(string(c)))
}

// IsZero reports whether no currency was set.
func (c Currency) IsZero() bool {
	return c == ""
}

// OrDefault returns c, or DefaultCurrency when c is unset.
func (c Currency) OrDefault() Currency {
	if c.IsZero() {
		return DefaultCurrency
	}
	return c
}

// CurrencySymbol returns the display glyph for a currency code. The lookup
// is case-insensitive.
func CurrencySymbol(c Currency) (string, bool) {
	s, ok := currencySymbols[c.Upper()]
	return s, ok
}

// Symbol returns the display glyph for c, falling back to the upper-case code.
func (c Currency) Symbol() string {
	if s, ok := CurrencySymbol(c); ok {
		return s
	}
	return string(c.Upper())
}

// KnownCurrencies returns the codes that have a display symbol.
func KnownCurrencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyGBP, CurrencyEUR}
}
