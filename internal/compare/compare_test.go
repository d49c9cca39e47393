package compare_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"sitewatch/internal/compare"
	"sitewatch/internal/models"
)

func output(mode models.Mode, results ...models.ChunkResult) models.RunOutput {
	return models.RunOutput{
		RunID:       "run-" + string(mode),
		Mode:        mode,
		TotalChunks: len(results),
		Timeline:    results,
	}
}

func okChunk(i int, activity string) models.ChunkResult {
	return models.ChunkResult{
		ChunkIndex:   i,
		Activity:     activity,
		Productivity: models.Productive,
		Confidence:   0.7,
		Hazards:      models.Hazards{RiskLevel: "LOW"},
		Status:       models.StatusOK,
	}
}

func TestBuildAlignsToShortestTimeline(t *testing.T) {
	outputs := map[models.Mode]models.RunOutput{
		models.ModeNaive: output(models.ModeNaive,
			models.ChunkResult{ChunkIndex: 0, RawResponse: "worker carrying lumber", Status: models.StatusOK},
			models.ChunkResult{ChunkIndex: 1, RawResponse: "worker on ladder", Status: models.StatusOK},
			models.ChunkResult{ChunkIndex: 2, RawResponse: "extra", Status: models.StatusOK},
		),
		models.ModeStructured: output(models.ModeStructured, okChunk(0, "carrying/moving"), okChunk(1, "climbing")),
		models.ModeMemory:     output(models.ModeMemory, okChunk(0, "carrying/moving"), okChunk(1, "climbing")),
	}

	report := compare.Build(outputs)
	if len(report.SideBySide) != 2 {
		t.Fatalf("expected alignment to shortest timeline (2), got %d", len(report.SideBySide))
	}
	if len(report.Modes) != 3 {
		t.Fatalf("expected 3 mode summaries, got %d", len(report.Modes))
	}

	entry := report.SideBySide[1]
	if entry.Modes[models.ModeNaive].RawExcerpt != "worker on ladder" {
		t.Fatalf("naive cell: %+v", entry.Modes[models.ModeNaive])
	}
	if entry.Modes[models.ModeNaive].Activity != "" {
		t.Fatal("naive cells carry only the raw excerpt")
	}
	if entry.Modes[models.ModeStructured].Activity != "climbing" {
		t.Fatalf("structured cell: %+v", entry.Modes[models.ModeStructured])
	}
}

func TestBuildTruncatesNaiveExcerpt(t *testing.T) {
	long := strings.Repeat("x", 500)
	outputs := map[models.Mode]models.RunOutput{
		models.ModeNaive: output(models.ModeNaive,
			models.ChunkResult{ChunkIndex: 0, RawResponse: long, Status: models.StatusOK}),
	}

	report := compare.Build(outputs)
	if got := len(report.SideBySide[0].Modes[models.ModeNaive].RawExcerpt); got != 200 {
		t.Fatalf("expected 200-char excerpt, got %d", got)
	}
}

func TestBuildTruncatesExcerptOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("混", 500)
	outputs := map[models.Mode]models.RunOutput{
		models.ModeNaive: output(models.ModeNaive,
			models.ChunkResult{ChunkIndex: 0, RawResponse: long, Status: models.StatusOK}),
	}

	report := compare.Build(outputs)
	excerpt := report.SideBySide[0].Modes[models.ModeNaive].RawExcerpt
	if !utf8.ValidString(excerpt) {
		t.Fatal("excerpt split a multibyte character")
	}
	if got := utf8.RuneCountInString(excerpt); got != 200 {
		t.Fatalf("expected 200-rune excerpt, got %d", got)
	}
}

func TestBuildCarriesMemoryLandmarks(t *testing.T) {
	mem := output(models.ModeMemory, okChunk(0, "framing"))
	mem.Landmarks = []models.Landmark{{Object: "ladder", Location: "north wall", Type: models.LandmarkFixed}}

	report := compare.Build(map[models.Mode]models.RunOutput{models.ModeMemory: mem})
	if len(report.AccumulatedLandmarks) != 1 || report.AccumulatedLandmarks[0].Object != "ladder" {
		t.Fatalf("unexpected landmarks: %+v", report.AccumulatedLandmarks)
	}
}

func TestWriteProducesReadableArtifact(t *testing.T) {
	dir := t.TempDir()
	report := compare.Build(map[models.Mode]models.RunOutput{
		models.ModeStructured: output(models.ModeStructured, okChunk(0, "framing")),
	})

	path, err := compare.Write(dir, report)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if filepath.Base(path) != "comparison.json" {
		t.Fatalf("unexpected artifact name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var decoded compare.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	if decoded.Modes[models.ModeStructured].TotalSegments != report.Modes[models.ModeStructured].TotalSegments {
		t.Fatal("artifact lost summary data")
	}
}
