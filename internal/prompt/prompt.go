// Package prompt builds the text prompts sent alongside frame batches.
package prompt

import "fmt"

// Naive is the unstructured baseline prompt.
const Naive = "What is happening in this video?"

// jsonSchema is the response shape the model is asked to fill in.
const jsonSchema = `{
  "timestamp_range": "start_sec - end_sec",
  "hands": "description of hand activity",
  "tools": ["tool1 (location)", "tool2 (location)"],
  "materials": ["material1 (location)", "material2 (location)"],
  "environment": {
    "structure_type": "wood frame / steel / concrete / other",
    "phase": "framing / sheathing / roofing / drywall / finishing / other",
    "level": "ground / upper floor / roof",
    "surface": "description"
  },
  "hazards": {
    "items": ["hazard1", "hazard2"],
    "risk_level": "LOW / MEDIUM / HIGH / CRITICAL",
    "details": "explanation"
  },
  "activity": "one of the categories above",
  "productivity": "PRODUCTIVE / TRANSITIONAL / IDLE",
  "confidence": 0.0,
  "reasoning": "brief explanation of classification",
  "spatial_memory": [
    {"object": "name", "location": "relative position", "type": "landmark/hazard/tool/person"}
  ]
}`

// Structured builds the stepwise analysis prompt for a chunk of nFrames
// frames sampled intervalSec seconds apart.
func Structured(nFrames, intervalSec int) string {
	return fmt.Sprintf(`You are analyzing egocentric construction footage from a worker's body camera.
Analyze these %d consecutive frames (taken %ds apart) and provide a structured analysis.

Follow these steps IN ORDER:

Step 1 - HANDS & BODY: What are the worker's hands doing? What are they holding, gripping, or touching? What body posture do you observe?

Step 2 - TOOLS & MATERIALS: List every tool and construction material visible. For each, note its approximate position relative to the worker (in hands, on floor nearby, on workbench, mounted on wall, etc).

Step 3 - ENVIRONMENT: Describe the immediate work area:
- What type of structure (wood frame, steel, concrete, etc)?
- What construction phase (foundation, framing, sheathing, roofing, drywall, finishing)?
- Are they indoors/outdoors/on an upper floor?
- What is the floor/surface they're standing on?

Step 4 - SPATIAL HAZARDS: Identify any safety concerns:
- Unguarded edges or floor openings
- Overhead hazards
- Trip hazards (loose materials, cords, debris)
- Ladder/scaffold safety issues
- Missing PPE (hard hat, harness, safety glasses, proper footwear)
- Proximity to power tools
Rate overall risk: LOW / MEDIUM / HIGH / CRITICAL

Step 5 - ACTIVITY: Based on steps 1-4, classify the primary activity into exactly ONE of:
[framing, sheathing, roofing, measuring, cutting, drilling/fastening, carrying/moving, climbing, planning/discussing, idle, walking, other]

Step 6 - PRODUCTIVITY: Is the worker:
- PRODUCTIVE: actively performing a construction task
- TRANSITIONAL: moving between tasks, setting up, getting materials
- IDLE: not working (break, phone, waiting)

Step 7 - SPATIAL MEMORY UPDATE: List any objects or landmarks that should be remembered for future frames, with their approximate location relative to the camera:
- Fixed landmarks (walls, columns, stairs, ladder positions)
- Hazards (edges, openings, overhead risks)
- Tool locations
- Other worker positions

Respond with ONLY valid JSON (no markdown, no backticks):
%s`, nFrames, intervalSec, jsonSchema)
}

// Memory prepends accumulated spatial context to the structured prompt.
func Memory(nFrames, intervalSec int, memorySummary string) string {
	return fmt.Sprintf(`SPATIAL MEMORY FROM PREVIOUS SEGMENTS:
The following objects and hazards have been observed earlier in this video.
The worker may have moved since these were recorded. Use this context to
understand the broader work environment.

%s

---

Now analyze the CURRENT frames:

%s`, memorySummary, Structured(nFrames, intervalSec))
}
