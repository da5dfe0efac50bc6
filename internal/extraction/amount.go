package extraction

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var amountCleaner = strings.NewReplacer(" ", "", " ", "", " ", "", "\t", "")

// ParseAmount converts a locale-formatted numeric capture ("1 800,00",
// "10.800,00", "1,299.90") into a decimal. Space and non-breaking-space
// thousands separators are stripped; when both comma and dot are present the
// rightmost of the two is the decimal separator; a lone comma becomes the
// decimal point.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := amountCleaner.Replace(strings.TrimSpace(raw))
	s = strings.Trim(s, ".,")
	if s == "" {
		return decimal.Zero, fmt.Errorf("parse amount: empty capture %q", raw)
	}
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return d, nil
}

// numCapture is the shared numeric capture for amount rules: digits possibly
// interleaved with separators, currency token left behind for the normalizer
// to ignore.
const numCapture = `([0-9][0-9 .,\x{00A0}\x{202F}]*)`

// vatRate optionally swallows a "20%" or "(20%)" rate annotation between the
// tax label and the amount so the rate is not captured as the amount.
const vatRate = `(?:\(?\s*\d{1,2}(?:[.,]\d+)?\s*%\s*\)?)?`

var totalRules = []Rule{
	rule("total-labelled", `(?i)\b(?:total\s*ttc|montant\s*total|total\s*amount)\b\s*:?\s*`+numCapture),
	// generic "Total" needs a trailing currency token, otherwise a column
	// header or a subtotal row would win
	rule("total-currency", `(?i)\btotal\b\s*:?\s*([0-9][0-9 .,]*?)\s*(?:dhs?|mad|dirhams?)\b`),
	rule("total-due", `(?i)(?:montant\s+[àa]\s+payer|[àa]\s+payer|to\s+pay|amount\s+due)\s*:?\s*`+numCapture),
}

var subtotalRules = []Rule{
	rule("subtotal-labelled", `(?i)\b(?:sous[ -]?total|subtotal|total\s*ht|montant\s*ht)\b\s*:?\s*`+numCapture),
	rule("subtotal-ht", `(?i)\b(?:ht|hors\s+taxes?)\b\s*:?\s*`+numCapture),
}

// One rule covers "TVA 200,00", "TVA: 200", "TVA 20% : 400,00" and the
// parenthesized rate forms: matching the rate annotation has priority over
// leaving it for the capture, and the colon is optional either way.
var taxRules = []Rule{
	rule("tax-labelled", `(?i)\b(?:tva|vat|taxe)\b\s*`+vatRate+`\s*:?\s*`+numCapture),
}

// extractAmount runs an amount cascade and normalizes the winning capture.
// A missed cascade and an unparseable capture are the same outcome: zero.
func extractAmount(text string, rules []Rule) decimal.Decimal {
	raw, _ := tryRules(text, rules)
	if raw == "" {
		return decimal.Zero
	}
	d, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// vatFactor encodes the standard 20% VAT rate of the reference tax regime.
// Last-resort assumption: the grand total is usually the cleanest figure on
// the page while the VAT breakdown table is what OCR garbles most.
var vatFactor = decimal.RequireFromString("1.2")

func estimateSubtotalFromTotal(total decimal.Decimal) decimal.Decimal {
	return total.Div(vatFactor).Round(2)
}

func deriveTaxFromTotals(total, subtotal decimal.Decimal) decimal.Decimal {
	return total.Sub(subtotal).Round(2)
}
