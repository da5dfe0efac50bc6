package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// FSScanner reads from the local filesystem. Content hashes are remembered
// for the lifetime of the scanner, so re-scanning a directory, or the same
// transcript copied under two names, yields one document id.
type FSScanner struct {
	log *slog.Logger

	mu   sync.Mutex
	seen map[string]uuid.UUID // content hash hex -> document id
}

func NewFSScanner(logger *slog.Logger) *FSScanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSScanner{
		log:  logger,
		seen: make(map[string]uuid.UUID),
	}
}

func (s *FSScanner) ScanPath(ctx context.Context, path string) (TranscriptFile, error) {
	var out TranscriptFile
	if err := ctx.Err(); err != nil {
		return out, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return out, fmt.Errorf("abs path: %w", err)
	}
	ext := filepath.Ext(abs)
	if ext == "" || !AllowedExt(ext) {
		return out, fmt.Errorf("unsupported or missing extension: %q", ext)
	}

	f, err := os.Open(abs)
	if err != nil {
		return out, fmt.Errorf("open: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn("close transcript failed", "path", abs, "error", err)
		}
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return out, fmt.Errorf("hash: %w", err)
	}
	hexHash := hex.EncodeToString(h.Sum(nil))

	s.mu.Lock()
	id, dedup := s.seen[hexHash]
	if !dedup {
		id = uuid.New()
		s.seen[hexHash] = id
	}
	s.mu.Unlock()

	return TranscriptFile{
		Path:         abs,
		DocumentID:   id,
		HashHex:      hexHash,
		Deduplicated: dedup,
	}, nil
}

// ScanDirectory walks root, skips hidden entries if requested, and registers
// every matching transcript. Per-file failures are counted, not fatal.
func (s *FSScanner) ScanDirectory(ctx context.Context, root string, skipHidden bool) ([]TranscriptFile, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var results []TranscriptFile
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			s.log.Warn("scan entry failed", "path", path, "error", walkErr)
			stats.Failed++
			return nil
		}
		if skipHidden && IsHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++

		r, err := s.ScanPath(ctx, path)
		if err != nil {
			s.log.Warn("transcript rejected", "path", path, "error", err)
			stats.Failed++
			return nil
		}
		results = append(results, r)
		stats.Accepted++
		if r.Deduplicated {
			stats.Deduplicated++
		}
		return nil
	})
	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	return results, stats, nil
}
