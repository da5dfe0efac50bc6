// Package ingest discovers OCR transcript files on the local filesystem,
// either by a one-shot directory scan or by watching directories for new
// arrivals. Duplicate transcripts (same content, any path) are reported once.
package ingest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/R4mii/ORC-SYS-sub001/constants"
)

// TranscriptFile is the per-file discovery outcome.
type TranscriptFile struct {
	Path         string
	DocumentID   uuid.UUID
	HashHex      string
	Deduplicated bool
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Accepted     uint32
	Deduplicated uint32
	Failed       uint32
}

// Ingestor is the behavior the batch commands depend on.
type Ingestor interface {
	// ScanPath registers a single transcript file.
	ScanPath(ctx context.Context, path string) (TranscriptFile, error)
	// ScanDirectory registers all matching files under root.
	ScanDirectory(ctx context.Context, root string, skipHidden bool) ([]TranscriptFile, DirStats, error)
}

// AllowedExt checks if a file extension is in the allowed transcript set.
func AllowedExt(ext string) bool {
	_, ok := constants.AllowedExtensions[constants.NormalizeExt(ext)]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
