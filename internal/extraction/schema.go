package extraction

// BuildInvoiceJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the ExtractedInvoice wire shape. The pipeline
// validates every assembled record against it before handing the record
// downstream; a violation is a bug in the engine, never an input problem.
func BuildInvoiceJSONSchema() map[string]any {
	item := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"description": map[string]any{"type": "string"},
			"quantity":    map[string]any{"type": "number"},
			"unitPrice":   map[string]any{"type": "number"},
			"amount":      map[string]any{"type": "number"},
		},
		"required": []string{"description", "quantity", "unitPrice", "amount"},
	}
	party := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":    map[string]any{"type": "string"},
			"address": map[string]any{"type": "string"},
			"taxId":   map[string]any{"type": "string"},
		},
		"required": []string{"name", "address"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"invoiceNumber": map[string]any{"type": "string"},
			"date":          map[string]any{"type": "string"},
			"dueDate":       map[string]any{"type": "string"},
			"supplier":      party,
			"customer":      party,
			"items":         map[string]any{"type": "array", "items": item},
			"subtotal":      map[string]any{"type": "number"},
			"taxAmount":     map[string]any{"type": "number"},
			"total":         map[string]any{"type": "number"},
			"currency":      map[string]any{"type": "string", "minLength": 3, "maxLength": 3},
			"confidence":    map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []string{
			"invoiceNumber", "date", "dueDate", "supplier", "customer",
			"items", "subtotal", "taxAmount", "total", "currency", "confidence",
		},
	}
}
