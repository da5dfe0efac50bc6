package async

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/R4mii/ORC-SYS-sub001/internal/common"
	"github.com/R4mii/ORC-SYS-sub001/internal/pipeline/fieldextract"
)

// ExtractorQueue fans transcript files out to a bounded pool of workers; each
// worker runs the fieldextract pipeline and writes the record JSON next to
// the input file. The engine is pure, so workers share nothing but the
// channel.
type ExtractorQueue struct {
	pipe    *fieldextract.Pipeline
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	quit chan struct{}
	wg   sync.WaitGroup
	once sync.Once

	mu      sync.Mutex
	closed  bool
	senders sync.WaitGroup
}

type Option func(*ExtractorQueue)

func WithWorkers(n int) Option {
	return func(q *ExtractorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *ExtractorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *ExtractorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewExtractorQueue(pipe *fieldextract.Pipeline, logger *slog.Logger, opts ...Option) *ExtractorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ExtractorQueue{
		pipe:    pipe,
		logger:  logger,
		workers: 4,
		timeout: 30 * time.Second,
		ch:      make(chan Job, 256),
		quit:    make(chan struct{}),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ExtractorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					out, err := q.processJob(ctx, job)
					cancel()

					if err != nil {
						q.logger.Error("extraction failed",
							"worker_id", workerID, "document_id", job.DocumentID,
							"path", job.Path, "error", err)
					} else {
						q.logger.Info("document processed",
							"worker_id", workerID, "document_id", job.DocumentID,
							"path", job.Path, "out", out)
					}
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *ExtractorQueue) processJob(ctx context.Context, job Job) (string, error) {
	text, err := os.ReadFile(job.Path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	res, err := q.pipe.Run(ctx, fieldextract.Request{
		DocumentID: job.DocumentID,
		OCRText:    string(text),
	})
	if err != nil {
		return "", err
	}
	out := outputPath(job.Path)
	if err := os.WriteFile(out, res.RawJSON, 0o644); err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}
	return out, nil
}

// outputPath places the record JSON next to the transcript it came from.
func outputPath(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".json"
}

func (q *ExtractorQueue) Enqueue(ctx context.Context, job Job) error {
	if job.TraceID == "" {
		job.TraceID = common.RequestIDFromContext(ctx)
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now()
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.logger.Warn("cannot enqueue: queue is shutting down", "document_id", job.DocumentID)
		return nil
	}
	q.senders.Add(1)
	q.mu.Unlock()
	defer q.senders.Done()

	// the blocking send happens outside the lock so a full queue never
	// stalls other producers or Shutdown
	select {
	case q.ch <- job:
	default:
		q.logger.Warn("queue full, applying backpressure", "document_id", job.DocumentID)
		select {
		case q.ch <- job:
		case <-q.quit:
			q.logger.Warn("cannot enqueue: queue is shutting down", "document_id", job.DocumentID)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	q.logger.Info("queued document for extraction",
		"document_id", job.DocumentID, "path", job.Path, "trace_id", job.TraceID)
	return nil
}

func (q *ExtractorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.quit)
	q.mu.Unlock()

	// in-flight Enqueues either complete or bail on quit; only then is the
	// job channel safe to close
	q.senders.Wait()
	close(q.ch)

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
