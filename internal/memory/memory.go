// Package memory accumulates landmark observations across chunks of one run.
package memory

import (
	"fmt"
	"strings"

	"sitewatch/internal/models"
)

// renderWindow bounds how many of the most recent landmarks are folded into
// a prompt; older observations age out of the rendered summary but stay in
// the collection.
const renderWindow = 20

// Placeholder is rendered when nothing has been observed yet.
const Placeholder = "No prior observations."

// Accumulator holds the ordered, append-only landmark collection for a run.
// It is rebuilt from scratch each run and never persisted.
type Accumulator struct {
	landmarks []models.Landmark
}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Extend appends every landmark reported by a chunk result, stamping each
// with the chunk's timestamp range as its first sighting. Call this only
// after the chunk's model call has completed: a chunk must never see its own
// just-produced landmarks.
func (a *Accumulator) Extend(res models.ChunkResult) {
	for _, lm := range res.Landmarks {
		lm.FirstSeen = res.TimestampRange
		a.landmarks = append(a.landmarks, lm)
	}
}

// Render returns the most recent landmarks, oldest first, as a flat text
// summary for prompt construction.
func (a *Accumulator) Render() string {
	window := a.landmarks
	if len(window) > renderWindow {
		window = window[len(window)-renderWindow:]
	}
	if len(window) == 0 {
		return Placeholder
	}
	lines := make([]string, 0, len(window))
	for _, lm := range window {
		lines = append(lines, fmt.Sprintf("- %s (%s): %s", lm.Object, lm.Type, lm.Location))
	}
	return strings.Join(lines, "\n")
}

// Landmarks returns a copy of the full collection in observation order.
func (a *Accumulator) Landmarks() []models.Landmark {
	out := make([]models.Landmark, len(a.landmarks))
	copy(out, a.landmarks)
	return out
}

// Len reports how many landmarks have been accumulated.
func (a *Accumulator) Len() int {
	return len(a.landmarks)
}
