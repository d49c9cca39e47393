// Package cache memoizes validated chunk results on disk, keyed by
// (chunk index, mode). Entries are plain JSON files, human-readable and safe
// to delete individually to force recomputation.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"sitewatch/internal/models"
)

// Store reads and writes per-chunk cache entries. The three modes occupy
// disjoint key spaces, so recomputing one mode never invalidates another.
type Store struct {
	dir    string
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

func (s *Store) entryPath(chunkIndex int, mode models.Mode) string {
	return filepath.Join(s.dir, fmt.Sprintf("chunk_%04d_%s.json", chunkIndex, mode))
}

// Get returns the cached result for a key. Only entries with status ok count
// as hits; an entry carrying an error status, or one that no longer decodes,
// is deleted on the spot so the chunk is retried on the next run.
func (s *Store) Get(chunkIndex int, mode models.Mode) (models.ChunkResult, bool, error) {
	path := s.entryPath(chunkIndex, mode)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.ChunkResult{}, false, nil
	}
	if err != nil {
		return models.ChunkResult{}, false, fmt.Errorf("read cache entry %s: %w", path, err)
	}

	var res models.ChunkResult
	if err := json.Unmarshal(data, &res); err != nil {
		s.logger.Warn("removing corrupt cache entry", "path", path, "error", err)
		return models.ChunkResult{}, false, s.remove(path)
	}
	if res.Status != models.StatusOK {
		s.logger.Debug("removing stale error cache entry", "path", path, "status", res.Status)
		return models.ChunkResult{}, false, s.remove(path)
	}
	return res, true, nil
}

// Put persists a result only when its status is ok. Any other status deletes
// the existing entry for the key instead, guaranteeing failed attempts never
// block future retries and are never mistaken for validated results.
func (s *Store) Put(chunkIndex int, mode models.Mode, res models.ChunkResult) error {
	path := s.entryPath(chunkIndex, mode)
	if res.Status != models.StatusOK {
		return s.remove(path)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory %q: %w", s.dir, err)
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry %s: %w", path, err)
	}
	return nil
}

// Invalidate removes the entry for a key, if present.
func (s *Store) Invalidate(chunkIndex int, mode models.Mode) error {
	return s.remove(s.entryPath(chunkIndex, mode))
}

func (s *Store) remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cache entry %s: %w", path, err)
	}
	return nil
}
