// Package extraction derives a structured, partially-confident invoice record
// from the raw text an external OCR provider returns for one document.
//
// Every field is extracted by an ordered cascade of named pattern rules over
// the same normalized text; no rule observes another rule's output except the
// two documented amount derivations. Extraction never fails: a field whose
// rules all miss is left at its zero value and only lowers the confidence
// score.
package extraction

import (
	"log/slog"

	"github.com/R4mii/ORC-SYS-sub001/constants"
	"github.com/R4mii/ORC-SYS-sub001/internal/entity"
)

// Config holds behavior knobs for the engine.
type Config struct {
	DefaultCurrency string // ISO 4217 code assumed when no currency token is found
}

// Engine runs the extraction pipeline. It holds no mutable state between
// calls and is safe for concurrent use from any number of goroutines.
type Engine struct {
	log *slog.Logger
	cfg Config
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = constants.DefaultCurrency
	}
	return &Engine{log: logger, cfg: cfg}
}

// Extract runs one full pass over the document text and returns a fresh,
// fully-shaped record. Any string input is acceptable, including empty or
// non-invoice text; such input yields defaulted fields and zero confidence.
func (e *Engine) Extract(text string) *entity.ExtractedInvoice {
	norm := Normalize(text)

	inv := &entity.ExtractedInvoice{
		Currency: e.cfg.DefaultCurrency,
		Items:    []entity.InvoiceItem{},
	}

	var ruleName string
	inv.InvoiceNumber, ruleName = tryRules(norm, invoiceNumberRules)
	e.logField("invoice_number", inv.InvoiceNumber, ruleName)
	inv.Date, ruleName = tryRules(norm, dateRules)
	e.logField("date", inv.Date, ruleName)
	inv.DueDate, ruleName = tryRules(norm, dueDateRules)
	e.logField("due_date", inv.DueDate, ruleName)

	inv.Supplier.Name, ruleName = extractSupplierName(norm)
	e.logField("supplier_name", inv.Supplier.Name, ruleName)
	inv.Supplier.Address = extractSupplierAddress(norm)
	inv.Supplier.TaxID, ruleName = tryRules(norm, taxIDRules)
	e.logField("tax_id", inv.Supplier.TaxID, ruleName)

	if code := detectCurrency(norm); code != "" {
		inv.Currency = code
	}

	total := extractAmount(norm, totalRules)
	subtotal := extractAmount(norm, subtotalRules)
	if subtotal.IsZero() && total.IsPositive() {
		subtotal = estimateSubtotalFromTotal(total)
		e.log.Debug("subtotal estimated from total", "total", total, "subtotal", subtotal)
	}
	tax := extractAmount(norm, taxRules)
	if tax.IsZero() && total.IsPositive() && subtotal.IsPositive() {
		tax = deriveTaxFromTotals(total, subtotal)
		e.log.Debug("tax derived from totals", "total", total, "subtotal", subtotal, "tax", tax)
	}
	inv.Total = total.InexactFloat64()
	inv.Subtotal = subtotal.InexactFloat64()
	inv.TaxAmount = tax.InexactFloat64()

	inv.Items = extractItems(norm, subtotal)
	inv.Confidence = scoreConfidence(inv)
	return inv
}

func (e *Engine) logField(field, value, ruleName string) {
	if value == "" {
		return
	}
	e.log.Debug("field extracted", "field", field, "rule", ruleName)
}
