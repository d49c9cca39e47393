package models

import "fmt"

// Mode selects the prompt construction strategy for a pipeline run.
type Mode string

const (
	ModeNaive      Mode = "naive"
	ModeStructured Mode = "structured"
	ModeMemory     Mode = "memory"
)

// Modes lists all valid modes in comparison order.
func Modes() []Mode {
	return []Mode{ModeNaive, ModeStructured, ModeMemory}
}

// ParseMode validates a mode string from the CLI or a config file.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNaive, ModeStructured, ModeMemory:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want naive, structured, or memory)", s)
}

// Status records how a chunk's analysis terminated.
type Status string

const (
	StatusOK         Status = "ok"
	StatusParseError Status = "parse_error"
	StatusCallError  Status = "call_error"
)

// Productivity classifies a segment's work state.
type Productivity string

const (
	Productive   Productivity = "PRODUCTIVE"
	Transitional Productivity = "TRANSITIONAL"
	Idle         Productivity = "IDLE"
	// ProductivityUnknown is used for naive mode and failed chunks.
	ProductivityUnknown Productivity = "unknown"
)

// LandmarkType categorizes a remembered observation.
type LandmarkType string

const (
	LandmarkFixed  LandmarkType = "landmark"
	LandmarkHazard LandmarkType = "hazard"
	LandmarkTool   LandmarkType = "tool"
	LandmarkPerson LandmarkType = "person"
)

// Landmark is a remembered object observation carried forward across chunks.
// Once appended to a run's accumulator it is never mutated or removed.
type Landmark struct {
	Object    string       `json:"object"`
	Location  string       `json:"location"`
	Type      LandmarkType `json:"type"`
	FirstSeen string       `json:"first_seen,omitempty"`
}

// Hazards holds the safety assessment for one segment.
type Hazards struct {
	Items     []string `json:"items,omitempty"`
	RiskLevel string   `json:"risk_level,omitempty"`
	Details   string   `json:"details,omitempty"`
}

// Environment describes the immediate work area of a segment.
type Environment struct {
	StructureType string `json:"structure_type,omitempty"`
	Phase         string `json:"phase,omitempty"`
	Level         string `json:"level,omitempty"`
	Surface       string `json:"surface,omitempty"`
}

// ChunkResult is the analysis of one chunk of frames. Exactly one exists per
// (chunk index, mode) pair; it is written once and never mutated.
type ChunkResult struct {
	ChunkIndex     int          `json:"chunk_index"`
	TimestampRange string       `json:"timestamp_range"`
	Hands          string       `json:"hands,omitempty"`
	Tools          []string     `json:"tools,omitempty"`
	Materials      []string     `json:"materials,omitempty"`
	Environment    Environment  `json:"environment"`
	Hazards        Hazards      `json:"hazards"`
	Activity       string       `json:"activity"`
	Productivity   Productivity `json:"productivity"`
	Confidence     float64      `json:"confidence"`
	Reasoning      string       `json:"reasoning,omitempty"`
	Landmarks      []Landmark   `json:"spatial_memory,omitempty"`
	RawResponse    string       `json:"raw_response,omitempty"`
	Status         Status       `json:"status"`
	ErrorDetail    string       `json:"error_detail,omitempty"`
}

// Timeline is the ordered, chunk-index-aligned sequence of results for a run.
type Timeline []ChunkResult

// ProductivityPcts holds percentage shares out of total segments.
type ProductivityPcts struct {
	ProductivePct   float64 `json:"productive_pct"`
	TransitionalPct float64 `json:"transitional_pct"`
	IdlePct         float64 `json:"idle_pct"`
}

// IdleStretch is a maximal run of two or more consecutive IDLE segments.
type IdleStretch struct {
	StartChunk     int    `json:"start_chunk"`
	EndChunk       int    `json:"end_chunk"`
	DurationChunks int    `json:"duration_chunks"`
	Timestamp      string `json:"timestamp"`
}

// Summary is the derived aggregate over a completed timeline. It is stateless
// and always recomputed from its source timeline.
type Summary struct {
	ActivityDistribution map[string]int   `json:"activity_distribution"`
	Productivity         ProductivityPcts `json:"productivity"`
	TotalSegments        int              `json:"total_segments"`
	UniqueHazards        []string         `json:"unique_hazards"`
	RiskLevelsSeen       []string         `json:"risk_levels_seen"`
	IdleStretches        []IdleStretch    `json:"idle_stretches"`
}

// RunOutput is the persisted artifact for one completed pipeline run.
type RunOutput struct {
	RunID       string     `json:"run_id"`
	Mode        Mode       `json:"mode"`
	TotalFrames int        `json:"total_frames"`
	TotalChunks int        `json:"total_chunks"`
	Timeline    Timeline   `json:"timeline"`
	Landmarks   []Landmark `json:"spatial_memory"`
	Summary     Summary    `json:"summary"`
}
