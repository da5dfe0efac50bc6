package constants

import "strings"

// DefaultCurrency is assumed when no currency token appears anywhere in the
// document text. The reference domain invoices in dirhams.
const DefaultCurrency = "MAD"

// CurrencyAliases maps every recognized currency symbol or code to its
// canonical ISO 4217 code. Keys are uppercase.
var CurrencyAliases = map[string]string{
	"€":   "EUR",
	"$":   "USD",
	"£":   "GBP",
	"MAD": "MAD",
	"DH":  "MAD",
	"DHS": "MAD",
	"EUR": "EUR",
	"USD": "USD",
	"GBP": "GBP",
}

// CanonicalCurrency resolves a matched symbol or code to its ISO 4217 code,
// or "" when the token is not in the alias table.
func CanonicalCurrency(token string) string {
	return CurrencyAliases[strings.ToUpper(strings.TrimSpace(token))]
}
