package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/R4mii/ORC-SYS-sub001/internal/entity"
)

var (
	// the non-greedy span from the first table header token to the first
	// following totals token
	reItemsBlock  = regexp.MustCompile(`(?is)\b(?:articles?|items?|d[ée]signation|description)\b(.*?)\b(?:sous[ -]?total|subtotal|total|montant|amount)\b`)
	reSummaryLine = regexp.MustCompile(`(?i)\b(?:sous[ -]?total|subtotal|total|tva|vat|taxe|ttc|ht)\b`)
	reDigit       = regexp.MustCompile(`\d`)
)

// fallbackDescription labels the synthetic item emitted when no line survives
// the candidate filter but a subtotal is known.
const fallbackDescription = "Item from invoice"

// extractItems locates the items block and decomposes its candidate lines.
// Best effort: complex multi-line descriptions will confuse it, and that is
// acceptable; the editing layer downstream lets a human fix the rows.
func extractItems(text string, subtotal decimal.Decimal) []entity.InvoiceItem {
	items := make([]entity.InvoiceItem, 0, 4)
	if m := reItemsBlock.FindStringSubmatch(text); m != nil {
		for _, line := range strings.Split(m[1], "\n") {
			line = strings.TrimSpace(line)
			if line == "" || !reDigit.MatchString(line) || reSummaryLine.MatchString(line) {
				continue
			}
			if item, ok := parseItemLine(line); ok {
				items = append(items, item)
			}
		}
	}
	if len(items) == 0 && subtotal.IsPositive() {
		st := subtotal.InexactFloat64()
		items = append(items, entity.InvoiceItem{
			Description: fallbackDescription,
			Quantity:    1,
			UnitPrice:   st,
			Amount:      st,
		})
	}
	return items
}

// parseItemLine splits a candidate row on whitespace and consumes a trailing
// run of up to three numeric tokens: quantity/unit-price/amount, or
// quantity/amount (unit price derived), or a lone amount (quantity one). A
// quantity that fails to parse, or parses to zero, stays in the description
// and the row degrades to the next shorter form.
func parseItemLine(line string) (entity.InvoiceItem, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return entity.InvoiceItem{}, false
	}

	nums := make([]decimal.Decimal, 0, 3)
	idx := len(tokens)
	for idx > 0 && len(nums) < 3 {
		d, err := ParseAmount(tokens[idx-1])
		if err != nil {
			break
		}
		nums = append([]decimal.Decimal{d}, nums...)
		idx--
	}
	if len(nums) == 0 {
		return entity.InvoiceItem{}, false
	}

	amount := nums[len(nums)-1]
	quantity := decimal.NewFromInt(1)
	unitPrice := amount
	consumed := 1

	switch len(nums) {
	case 3:
		switch {
		case nums[0].IsPositive():
			quantity, unitPrice, consumed = nums[0], nums[1], 3
		case nums[1].IsPositive():
			quantity, unitPrice, consumed = nums[1], amount.Div(nums[1]).Round(2), 2
		}
	case 2:
		if nums[0].IsPositive() {
			quantity, unitPrice, consumed = nums[0], amount.Div(nums[0]).Round(2), 2
		}
	}

	return entity.InvoiceItem{
		Description: strings.Join(tokens[:len(tokens)-consumed], " "),
		Quantity:    quantity.InexactFloat64(),
		UnitPrice:   unitPrice.InexactFloat64(),
		Amount:      amount.InexactFloat64(),
	}, true
}
