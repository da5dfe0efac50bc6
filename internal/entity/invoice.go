package entity

// ExtractedInvoice is the structured result of running field extraction over
// one OCR transcript. The JSON field names are part of the output contract:
// the editing layer downstream renders them directly.
//
// A zero amount doubles as the "not found" sentinel; callers decide whether a
// low confidence score warrants human review.
type ExtractedInvoice struct {
	InvoiceNumber string        `json:"invoiceNumber"`
	Date          string        `json:"date"`    // literal matched substring, never reformatted
	DueDate       string        `json:"dueDate"` // same
	Supplier      Party         `json:"supplier"`
	Customer      Party         `json:"customer"` // present in the schema, no extraction rule fills it
	Items         []InvoiceItem `json:"items"`    // reading order, never nil
	Subtotal      float64       `json:"subtotal"`
	TaxAmount     float64       `json:"taxAmount"`
	Total         float64       `json:"total"`
	Currency      string        `json:"currency"`   // ISO 4217, always populated
	Confidence    float64       `json:"confidence"` // completeness heuristic in [0,1]
}

// Party identifies one side of the invoice.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	TaxID   string `json:"taxId,omitempty"`
}

// InvoiceItem is one decomposed line of the items block.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}
