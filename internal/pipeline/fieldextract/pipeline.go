// Package fieldextract is the orchestration stage around the extraction
// engine: it tags each transcript with a document id, runs the engine, guards
// the assembled record against its JSON schema, and flags low-confidence
// results for review.
package fieldextract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/R4mii/ORC-SYS-sub001/internal/entity"
	"github.com/R4mii/ORC-SYS-sub001/internal/extraction"
)

// Config holds thresholds and behavior flags for the extraction stage.
type Config struct {
	MinConfidence   float64 // default 0.50
	DefaultCurrency string  // default MAD
}

type Pipeline struct {
	Logger *slog.Logger
	Cfg    Config
	Engine *extraction.Engine
}

func NewPipeline(logger *slog.Logger, cfg Config) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = 0.50
	}
	engine := extraction.NewEngine(extraction.Config{DefaultCurrency: cfg.DefaultCurrency}, logger)
	return &Pipeline{Logger: logger, Cfg: cfg, Engine: engine}
}

// Request identifies one OCR transcript to extract fields from.
type Request struct {
	DocumentID uuid.UUID // generated when nil
	OCRText    string
}

// Result carries the record, its wire encoding, and the review flag.
type Result struct {
	DocumentID  uuid.UUID
	Invoice     *entity.ExtractedInvoice
	RawJSON     []byte
	NeedsReview bool
}

// Run executes field extraction for one transcript. The engine itself cannot
// fail; an error here means the assembled record could not be encoded or does
// not match its own schema, which is a bug, not an input problem.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if req.DocumentID == uuid.Nil {
		req.DocumentID = uuid.New()
	}

	p.Logger.Info("fieldextract.start",
		"document_id", req.DocumentID, "ocr_bytes", len(req.OCRText),
	)

	inv := p.Engine.Extract(req.OCRText)

	raw, err := json.Marshal(inv)
	if err != nil {
		return Result{}, fmt.Errorf("encode record: %w", err)
	}
	if err := extraction.ValidateJSONAgainstSchema(extraction.BuildInvoiceJSONSchema(), raw); err != nil {
		return Result{}, fmt.Errorf("record failed schema check: %w", err)
	}

	needsReview := inv.Confidence < p.Cfg.MinConfidence

	p.Logger.Info("fieldextract.ok",
		"document_id", req.DocumentID,
		"invoice_number", inv.InvoiceNumber,
		"supplier", inv.Supplier.Name,
		"total", inv.Total,
		"currency", inv.Currency,
		"items", len(inv.Items),
		"confidence", inv.Confidence,
		"needs_review", needsReview,
	)

	return Result{
		DocumentID:  req.DocumentID,
		Invoice:     inv,
		RawJSON:     raw,
		NeedsReview: needsReview,
	}, nil
}
