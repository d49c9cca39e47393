package memory_test

import (
	"fmt"
	"strings"
	"testing"

	"sitewatch/internal/memory"
	"sitewatch/internal/models"
)

func resultWithLandmark(ts, object string) models.ChunkResult {
	return models.ChunkResult{
		TimestampRange: ts,
		Status:         models.StatusOK,
		Landmarks: []models.Landmark{
			{Object: object, Location: "near the stairwell", Type: models.LandmarkFixed},
		},
	}
}

func TestRenderEmptyUsesPlaceholder(t *testing.T) {
	acc := memory.NewAccumulator()
	if got := acc.Render(); got != memory.Placeholder {
		t.Fatalf("got %q want %q", got, memory.Placeholder)
	}
}

func TestChunkNeverSeesOwnLandmarks(t *testing.T) {
	acc := memory.NewAccumulator()

	// Chunks 0 and 1 have completed; chunk 2's prompt is rendered before its
	// own result is folded in.
	acc.Extend(resultWithLandmark("0s - 8s", "ladder"))
	acc.Extend(resultWithLandmark("8s - 16s", "table saw"))

	rendered := acc.Render()
	if !strings.Contains(rendered, "ladder") {
		t.Fatalf("missing chunk 0 landmark in %q", rendered)
	}
	if !strings.Contains(rendered, "table saw") {
		t.Fatalf("missing chunk 1 landmark in %q", rendered)
	}
	if strings.Contains(rendered, "scaffold") {
		t.Fatalf("chunk 2's own landmark leaked into %q", rendered)
	}

	acc.Extend(resultWithLandmark("16s - 24s", "scaffold"))
	if !strings.Contains(acc.Render(), "scaffold") {
		t.Fatal("landmark missing after extension")
	}
}

func TestExtendStampsFirstSeen(t *testing.T) {
	acc := memory.NewAccumulator()
	acc.Extend(resultWithLandmark("8s - 16s", "ladder"))

	landmarks := acc.Landmarks()
	if len(landmarks) != 1 {
		t.Fatalf("expected 1 landmark, got %d", len(landmarks))
	}
	if landmarks[0].FirstSeen != "8s - 16s" {
		t.Fatalf("unexpected first_seen: %q", landmarks[0].FirstSeen)
	}
}

func TestRenderWindowsMostRecentTwenty(t *testing.T) {
	acc := memory.NewAccumulator()
	for i := 0; i < 25; i++ {
		acc.Extend(resultWithLandmark("0s - 8s", fmt.Sprintf("object-%02d", i)))
	}

	rendered := acc.Render()
	if strings.Contains(rendered, "object-04") {
		t.Fatal("aged-out landmark still rendered")
	}
	if !strings.Contains(rendered, "object-05") || !strings.Contains(rendered, "object-24") {
		t.Fatalf("window bounds wrong: %q", rendered)
	}

	// Oldest-first within the window.
	lines := strings.Split(rendered, "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "object-05") || !strings.Contains(lines[19], "object-24") {
		t.Fatalf("window order wrong: first=%q last=%q", lines[0], lines[19])
	}

	// The full collection keeps everything.
	if acc.Len() != 25 {
		t.Fatalf("expected 25 accumulated landmarks, got %d", acc.Len())
	}
}
