package summary_test

import (
	"testing"

	"sitewatch/internal/models"
	"sitewatch/internal/summary"
)

func timelineOf(prods ...models.Productivity) models.Timeline {
	tl := make(models.Timeline, len(prods))
	for i, p := range prods {
		tl[i] = models.ChunkResult{
			ChunkIndex:     i,
			TimestampRange: "ts",
			Activity:       "framing",
			Productivity:   p,
			Status:         models.StatusOK,
		}
	}
	return tl
}

func TestEmptyTimelineYieldsZeroPercentages(t *testing.T) {
	s := summary.Compile(models.Timeline{})
	if s.TotalSegments != 0 {
		t.Fatalf("expected 0 segments, got %d", s.TotalSegments)
	}
	p := s.Productivity
	if p.ProductivePct != 0 || p.TransitionalPct != 0 || p.IdlePct != 0 {
		t.Fatalf("expected all-zero percentages, got %+v", p)
	}
	if len(s.IdleStretches) != 0 {
		t.Fatalf("expected no idle stretches, got %+v", s.IdleStretches)
	}
}

func TestProductivityPercentages(t *testing.T) {
	s := summary.Compile(timelineOf(models.Productive, models.Productive, models.Idle, models.Transitional))
	if s.Productivity.ProductivePct != 50.0 {
		t.Fatalf("productive pct: got %g want 50.0", s.Productivity.ProductivePct)
	}
	if s.Productivity.IdlePct != 25.0 {
		t.Fatalf("idle pct: got %g want 25.0", s.Productivity.IdlePct)
	}
	if s.Productivity.TransitionalPct != 25.0 {
		t.Fatalf("transitional pct: got %g want 25.0", s.Productivity.TransitionalPct)
	}
}

func TestIdleStretchDetection(t *testing.T) {
	// [P, I, I, I, P, I, T]: one stretch of length 3 starting at chunk 1;
	// the isolated IDLE at index 5 is below the threshold.
	tl := timelineOf(
		models.Productive,
		models.Idle, models.Idle, models.Idle,
		models.Productive,
		models.Idle,
		models.Transitional,
	)
	tl[1].TimestampRange = "8s - 16s"

	s := summary.Compile(tl)
	if len(s.IdleStretches) != 1 {
		t.Fatalf("expected exactly 1 stretch, got %+v", s.IdleStretches)
	}
	stretch := s.IdleStretches[0]
	if stretch.StartChunk != 1 || stretch.EndChunk != 3 || stretch.DurationChunks != 3 {
		t.Fatalf("unexpected stretch: %+v", stretch)
	}
	if stretch.Timestamp != "8s - 16s" {
		t.Fatalf("unexpected stretch timestamp: %q", stretch.Timestamp)
	}
}

func TestTrailingIdleStretchReported(t *testing.T) {
	s := summary.Compile(timelineOf(models.Productive, models.Idle, models.Idle))
	if len(s.IdleStretches) != 1 {
		t.Fatalf("expected 1 stretch, got %+v", s.IdleStretches)
	}
	if s.IdleStretches[0].StartChunk != 1 || s.IdleStretches[0].DurationChunks != 2 {
		t.Fatalf("unexpected trailing stretch: %+v", s.IdleStretches[0])
	}
}

func TestActivityHistogramAndHazardDedup(t *testing.T) {
	tl := timelineOf(models.Productive, models.Productive, models.Idle)
	tl[1].Activity = "roofing"
	tl[0].Hazards = models.Hazards{Items: []string{"open edge", "debris"}, RiskLevel: "HIGH"}
	tl[2].Hazards = models.Hazards{Items: []string{"open edge"}, RiskLevel: "HIGH"}
	tl[2].Activity = ""

	s := summary.Compile(tl)
	if s.ActivityDistribution["framing"] != 1 || s.ActivityDistribution["roofing"] != 1 || s.ActivityDistribution["unknown"] != 1 {
		t.Fatalf("unexpected histogram: %+v", s.ActivityDistribution)
	}
	if len(s.UniqueHazards) != 2 {
		t.Fatalf("expected 2 unique hazards, got %+v", s.UniqueHazards)
	}
	if len(s.RiskLevelsSeen) != 1 || s.RiskLevelsSeen[0] != "HIGH" {
		t.Fatalf("unexpected risk levels: %+v", s.RiskLevelsSeen)
	}
}
