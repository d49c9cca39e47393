// Package summary derives aggregate statistics from a completed timeline.
package summary

import (
	"math"

	"sitewatch/internal/models"
)

// idleStretchThreshold is the minimum run length reported as an idle
// stretch; single isolated IDLE segments are not stretches.
const idleStretchThreshold = 2

// Compile is a pure function over a completed timeline. An empty timeline
// yields zero percentages, not a division error.
func Compile(timeline models.Timeline) models.Summary {
	activities := make(map[string]int)
	counts := map[models.Productivity]int{
		models.Productive:   0,
		models.Transitional: 0,
		models.Idle:         0,
	}
	var hazards, riskLevels []string
	seenHazard := make(map[string]bool)
	seenRisk := make(map[string]bool)

	for _, entry := range timeline {
		activity := entry.Activity
		if activity == "" {
			activity = "unknown"
		}
		activities[activity]++

		if _, tracked := counts[entry.Productivity]; tracked {
			counts[entry.Productivity]++
		}

		for _, item := range entry.Hazards.Items {
			if !seenHazard[item] {
				seenHazard[item] = true
				hazards = append(hazards, item)
			}
		}
		if level := entry.Hazards.RiskLevel; level != "" && !seenRisk[level] {
			seenRisk[level] = true
			riskLevels = append(riskLevels, level)
		}
	}

	total := len(timeline)
	pct := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return math.Round(float64(n)/float64(total)*1000) / 10
	}

	return models.Summary{
		ActivityDistribution: activities,
		Productivity: models.ProductivityPcts{
			ProductivePct:   pct(counts[models.Productive]),
			TransitionalPct: pct(counts[models.Transitional]),
			IdlePct:         pct(counts[models.Idle]),
		},
		TotalSegments:  total,
		UniqueHazards:  hazards,
		RiskLevelsSeen: riskLevels,
		IdleStretches:  idleStretches(timeline),
	}
}

// idleStretches scans for maximal runs of consecutive IDLE segments at or
// above the reporting threshold.
func idleStretches(timeline models.Timeline) []models.IdleStretch {
	var stretches []models.IdleStretch
	streak := 0
	start := 0

	flush := func() {
		if streak >= idleStretchThreshold {
			stretches = append(stretches, models.IdleStretch{
				StartChunk:     start,
				EndChunk:       start + streak - 1,
				DurationChunks: streak,
				Timestamp:      timeline[start].TimestampRange,
			})
		}
		streak = 0
	}

	for i, entry := range timeline {
		if entry.Productivity == models.Idle {
			if streak == 0 {
				start = i
			}
			streak++
			continue
		}
		flush()
	}
	flush()
	return stretches
}
