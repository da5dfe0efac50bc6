package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/R4mii/ORC-SYS-sub001/internal/async"
	"github.com/R4mii/ORC-SYS-sub001/internal/common"
	"github.com/R4mii/ORC-SYS-sub001/internal/ingest"
	"github.com/R4mii/ORC-SYS-sub001/internal/pipeline/fieldextract"
)

func main() {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("extract-batch")
	var (
		dir           = fs.StringLong("dir", "", "directory of transcript files to process (required)")
		workers       = fs.IntLong("workers", 0, "worker count (overrides BATCH_WORKERS)")
		currency      = fs.StringLong("currency", "", "default ISO 4217 currency (overrides DEFAULT_CURRENCY)")
		logLevel      = fs.StringLong("log-level", "", "debug | info | warn | error")
		watch         = fs.BoolLong("watch", "keep running and extract transcripts as they arrive")
		includeHidden = fs.BoolLong("include-hidden", "also scan hidden files and directories")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("ORCSYS")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	if *currency != "" {
		cfg.Extraction.DefaultCurrency = *currency
	}
	if *logLevel != "" {
		cfg.Logging.Level = common.ParseLogLevel(*logLevel)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Logging.Level,
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *dir == "" {
		logger.Error("usage", "cmd", "extract-batch --dir <transcripts-dir> [--watch]")
		os.Exit(2)
	}

	pipe := fieldextract.NewPipeline(logger, fieldextract.Config{
		MinConfidence:   cfg.Extraction.MinConfidence,
		DefaultCurrency: cfg.Extraction.DefaultCurrency,
	})
	queue := async.NewExtractorQueue(pipe, logger,
		async.WithWorkers(cfg.Batch.Workers),
		async.WithQueueSize(cfg.Batch.QueueSize),
		async.WithProcessTimeout(cfg.Batch.ProcessTimeout),
	)
	scanner := ingest.NewFSScanner(logger)

	ctx := common.WithRequestID(context.Background(), uuid.NewString())

	files, stats, err := scanner.ScanDirectory(ctx, *dir, !*includeHidden)
	if err != nil {
		logger.Error("scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	queued := 0
	for _, f := range files {
		if f.Deduplicated {
			logger.Info("skipping duplicate transcript", "path", f.Path, "document_id", f.DocumentID)
			continue
		}
		job := async.Job{DocumentID: f.DocumentID, Path: f.Path, SubmittedAt: time.Now()}
		if err := queue.Enqueue(ctx, job); err != nil {
			logger.Error("enqueue failed", "path", f.Path, "error", err)
			continue
		}
		queued++
	}
	logger.Info("batch queued",
		"dir", *dir, "documents", queued,
		"scanned", stats.Scanned, "deduplicated", stats.Deduplicated, "failed", stats.Failed,
	)

	if *watch {
		watchLoop(ctx, logger, queue, scanner, *dir)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	queue.Shutdown(shutdownCtx)
}

// watchLoop enqueues transcripts as they land in the directory until the
// process is interrupted. The initial scan already covered existing files.
func watchLoop(ctx context.Context, logger *slog.Logger, queue async.Queue, scanner *ingest.FSScanner, dir string) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	evCh, errCh, err := ingest.StartWatcher(ctx, logger, ingest.WatchConfig{
		Roots:    []string{dir},
		Debounce: 500 * time.Millisecond,
	})
	if err != nil {
		logger.Error("start watcher", "dir", dir, "error", err)
		return
	}
	logger.Info("watching for transcripts", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return
		case err, ok := <-errCh:
			if !ok {
				return
			}
			logger.Warn("watch error", "error", err)
		case path, ok := <-evCh:
			if !ok {
				return
			}
			f, err := scanner.ScanPath(ctx, path)
			if err != nil {
				logger.Warn("transcript rejected", "path", path, "error", err)
				continue
			}
			if f.Deduplicated {
				logger.Info("skipping duplicate transcript", "path", f.Path, "document_id", f.DocumentID)
				continue
			}
			job := async.Job{DocumentID: f.DocumentID, Path: f.Path, SubmittedAt: time.Now()}
			if err := queue.Enqueue(ctx, job); err != nil {
				logger.Error("enqueue failed", "path", f.Path, "error", err)
			}
		}
	}
}
