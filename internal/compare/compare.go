// Package compare runs all three modes over the same frames and builds a
// side-by-side report of their timelines and summaries.
package compare

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sitewatch/internal/frames"
	"sitewatch/internal/models"
	"sitewatch/internal/pipeline"
)

// rawExcerptLen bounds how much naive-mode raw text the report carries per
// chunk.
const rawExcerptLen = 200

// Cell is one mode's view of one chunk.
type Cell struct {
	Activity     string              `json:"activity,omitempty"`
	Productivity models.Productivity `json:"productivity,omitempty"`
	Confidence   float64             `json:"confidence,omitempty"`
	RiskLevel    string              `json:"risk_level,omitempty"`
	RawExcerpt   string              `json:"raw_response,omitempty"`
}

// Entry aligns the three modes' results for one chunk index.
type Entry struct {
	Chunk int                  `json:"chunk"`
	Modes map[models.Mode]Cell `json:"modes"`
}

// Report is the full comparison artifact.
type Report struct {
	Modes      map[models.Mode]models.Summary `json:"modes"`
	SideBySide []Entry                        `json:"side_by_side"`
	// AccumulatedLandmarks carries memory mode's full landmark collection.
	AccumulatedLandmarks []models.Landmark `json:"accumulated_spatial_memory"`
}

// Run executes the driver once per mode, sequentially, and assembles the
// report. Each run still honors the fixed inter-chunk cadence.
func Run(ctx context.Context, driver *pipeline.Driver, frameList []frames.Frame, outputDir string, logger *slog.Logger) (Report, error) {
	outputs := make(map[models.Mode]models.RunOutput, len(models.Modes()))
	for _, mode := range models.Modes() {
		logger.Info("running comparison mode", "mode", mode)
		output, err := driver.Run(ctx, frameList, mode)
		if err != nil {
			return Report{}, fmt.Errorf("run %s mode: %w", mode, err)
		}
		if _, err := pipeline.WriteOutput(outputDir, output); err != nil {
			return Report{}, err
		}
		outputs[mode] = output
	}
	return Build(outputs), nil
}

// Build assembles a report from per-mode run outputs. Alignment stops at the
// shortest timeline so every entry covers all modes.
func Build(outputs map[models.Mode]models.RunOutput) Report {
	report := Report{
		Modes:                make(map[models.Mode]models.Summary, len(outputs)),
		AccumulatedLandmarks: []models.Landmark{},
	}

	minChunks := -1
	for mode, output := range outputs {
		report.Modes[mode] = output.Summary
		if minChunks < 0 || len(output.Timeline) < minChunks {
			minChunks = len(output.Timeline)
		}
		if mode == models.ModeMemory {
			report.AccumulatedLandmarks = output.Landmarks
		}
	}
	if minChunks < 0 {
		minChunks = 0
	}

	for i := 0; i < minChunks; i++ {
		entry := Entry{Chunk: i, Modes: make(map[models.Mode]Cell, len(outputs))}
		for mode, output := range outputs {
			entry.Modes[mode] = cellFor(mode, output.Timeline[i])
		}
		report.SideBySide = append(report.SideBySide, entry)
	}
	return report
}

func cellFor(mode models.Mode, res models.ChunkResult) Cell {
	if mode == models.ModeNaive {
		return Cell{RawExcerpt: truncateRunes(res.RawResponse, rawExcerptLen)}
	}
	risk := res.Hazards.RiskLevel
	if risk == "" {
		risk = "?"
	}
	return Cell{
		Activity:     res.Activity,
		Productivity: res.Productivity,
		Confidence:   res.Confidence,
		RiskLevel:    risk,
	}
}

// truncateRunes cuts s to at most n runes, never splitting a multibyte
// character.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Write persists the report as comparison.json under outputDir.
func Write(outputDir string, report Report) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", outputDir, err)
	}
	path := filepath.Join(outputDir, "comparison.json")
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode comparison report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write comparison report %s: %w", path, err)
	}
	return path, nil
}
