package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job is the smallest useful unit: one OCR transcript on disk. Extend as
// needed later (profile, retry, etc).
type Job struct {
	DocumentID  uuid.UUID
	Path        string // path to the transcript file
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
