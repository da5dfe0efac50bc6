package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/R4mii/ORC-SYS-sub001/internal/common"
	"github.com/R4mii/ORC-SYS-sub001/internal/pipeline/fieldextract"
)

func main() {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("runextract")
	var (
		input    = fs.StringLong("input", "", "transcript file to extract from (defaults to stdin)")
		currency = fs.StringLong("currency", "", "default ISO 4217 currency (overrides DEFAULT_CURRENCY)")
		minConf  = fs.StringLong("min-confidence", "", "review threshold in [0,1] (overrides MIN_CONFIDENCE)")
		logLevel = fs.StringLong("log-level", "", "debug | info | warn | error")
		pretty   = fs.BoolLong("pretty", "indent the record JSON")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("ORCSYS")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	if *currency != "" {
		cfg.Extraction.DefaultCurrency = *currency
	}
	if *minConf != "" {
		if f, err := strconv.ParseFloat(*minConf, 64); err == nil {
			cfg.Extraction.MinConfidence = f
		}
	}
	if *logLevel != "" {
		cfg.Logging.Level = common.ParseLogLevel(*logLevel)
	}

	// record JSON goes to stdout, logs to stderr
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Logging.Level,
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var (
		text []byte
		err  error
	)
	if *input != "" {
		text, err = os.ReadFile(*input)
	} else {
		text, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		logger.Error("read transcript", "error", err)
		os.Exit(1)
	}

	p := fieldextract.NewPipeline(logger, fieldextract.Config{
		MinConfidence:   cfg.Extraction.MinConfidence,
		DefaultCurrency: cfg.Extraction.DefaultCurrency,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	res, err := p.Run(ctx, fieldextract.Request{DocumentID: uuid.New(), OCRText: string(text)})
	if err != nil {
		logger.Error("extraction failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	out := res.RawJSON
	if *pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, out, "", "  "); err == nil {
			out = buf.Bytes()
		}
	}
	fmt.Println(string(out))

	logger.Info("extraction OK",
		"document_id", res.DocumentID,
		"confidence", res.Invoice.Confidence,
		"needs_review", res.NeedsReview,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
