package cache_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"sitewatch/internal/cache"
	"sitewatch/internal/models"
)

func newStore(t *testing.T) (*cache.Store, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cache.NewStore(dir, logger), dir
}

func okResult(idx int) models.ChunkResult {
	return models.ChunkResult{
		ChunkIndex:     idx,
		TimestampRange: "0s - 8s",
		Activity:       "framing",
		Productivity:   models.Productive,
		Confidence:     0.8,
		Status:         models.StatusOK,
	}
}

func TestPutThenGetRoundTrip(t *testing.T) {
	store, _ := newStore(t)

	if err := store.Put(2, models.ModeStructured, okResult(2)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, hit, err := store.Get(2, models.ModeStructured)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.Activity != "framing" || got.Status != models.StatusOK {
		t.Fatalf("unexpected cached result: %+v", got)
	}
}

func TestPutErrorStatusDeletesEntry(t *testing.T) {
	store, dir := newStore(t)

	if err := store.Put(0, models.ModeStructured, okResult(0)); err != nil {
		t.Fatalf("Put ok: %v", err)
	}

	failed := okResult(0)
	failed.Status = models.StatusParseError
	if err := store.Put(0, models.ModeStructured, failed); err != nil {
		t.Fatalf("Put parse_error: %v", err)
	}

	if _, hit, _ := store.Get(0, models.ModeStructured); hit {
		t.Fatal("expected miss after error-status put")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read cache dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty cache dir, found %d entries", len(entries))
	}
}

func TestGetSelfHealsErrorEntry(t *testing.T) {
	store, dir := newStore(t)

	// A persisted entry with an error status must never be a hit; the read
	// deletes it so the chunk retries on the next run.
	path := filepath.Join(dir, "chunk_0001_memory.json")
	data := `{"chunk_index": 1, "status": "parse_error", "activity": "parse_error"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	_, hit, err := store.Get(1, models.ModeMemory)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if hit {
		t.Fatal("error-status entry must not be a hit")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected stale entry to be deleted")
	}

	// A subsequent ok put for the same key is then retrievable.
	if err := store.Put(1, models.ModeMemory, okResult(1)); err != nil {
		t.Fatalf("Put after self-heal: %v", err)
	}
	if _, hit, _ := store.Get(1, models.ModeMemory); !hit {
		t.Fatal("expected hit after ok put")
	}
}

func TestGetSelfHealsCorruptEntry(t *testing.T) {
	store, dir := newStore(t)

	path := filepath.Join(dir, "chunk_0000_naive.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	_, hit, err := store.Get(0, models.ModeNaive)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if hit {
		t.Fatal("corrupt entry must not be a hit")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected corrupt entry to be deleted")
	}
}

func TestModesAreDisjointKeySpaces(t *testing.T) {
	store, _ := newStore(t)

	if err := store.Put(0, models.ModeStructured, okResult(0)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if _, hit, _ := store.Get(0, models.ModeNaive); hit {
		t.Fatal("naive key space must not see structured entries")
	}
	if _, hit, _ := store.Get(0, models.ModeMemory); hit {
		t.Fatal("memory key space must not see structured entries")
	}

	if err := store.Invalidate(0, models.ModeMemory); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, hit, _ := store.Get(0, models.ModeStructured); !hit {
		t.Fatal("invalidating one mode must not touch another")
	}
}
