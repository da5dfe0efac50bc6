package extraction

import "github.com/R4mii/ORC-SYS-sub001/internal/entity"

// trackedFields is the number of signals the completeness score counts:
// invoice number, date, supplier name, total, subtotal, tax amount.
const trackedFields = 6

// scoreConfidence measures completeness over the tracked fields. It is a
// heuristic, not a probability: found signals divided by six, clamped.
func scoreConfidence(inv *entity.ExtractedInvoice) float64 {
	found := 0
	if inv.InvoiceNumber != "" {
		found++
	}
	if inv.Date != "" {
		found++
	}
	if inv.Supplier.Name != "" {
		found++
	}
	if inv.Total > 0 {
		found++
	}
	if inv.Subtotal > 0 {
		found++
	}
	if inv.TaxAmount > 0 {
		found++
	}
	score := float64(found) / trackedFields
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}
