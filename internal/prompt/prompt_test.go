package prompt_test

import (
	"strings"
	"testing"

	"sitewatch/internal/prompt"
)

func TestStructuredMentionsChunkShape(t *testing.T) {
	p := prompt.Structured(4, 2)
	if !strings.Contains(p, "these 4 consecutive frames") {
		t.Fatal("frame count missing from prompt")
	}
	if !strings.Contains(p, "taken 2s apart") {
		t.Fatal("frame interval missing from prompt")
	}
	if !strings.Contains(p, `"productivity": "PRODUCTIVE / TRANSITIONAL / IDLE"`) {
		t.Fatal("response schema missing from prompt")
	}
}

func TestMemoryPrependsContext(t *testing.T) {
	p := prompt.Memory(4, 2, "- ladder (landmark): north wall")
	if !strings.Contains(p, "- ladder (landmark): north wall") {
		t.Fatal("memory summary missing from prompt")
	}
	if !strings.HasPrefix(p, "SPATIAL MEMORY FROM PREVIOUS SEGMENTS:") {
		t.Fatal("memory preamble must come first")
	}
	if !strings.Contains(p, prompt.Structured(4, 2)) {
		t.Fatal("memory prompt must embed the structured prompt")
	}
}
