// Package sanitize turns raw model output into decoded chunk results. The
// model occasionally truncates output near its token budget, usually
// mid-array or mid-object with no unmatched quote, so a simple
// bracket-balancing repair recovers most truncations.
package sanitize

import (
	"encoding/json"
	"fmt"
	"strings"

	"sitewatch/internal/models"
)

// StripFences removes leading/trailing markdown code-fence markers and an
// optional language tag from a model response.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		} else {
			s = s[3:]
		}
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "json") {
		s = strings.TrimSpace(s[4:])
	}
	return s
}

// Repair balances unmatched object and array delimiters in truncated JSON:
// strip one trailing comma, then append the closing delimiters needed to
// balance. Deeper truncation (an unterminated string literal, for instance)
// is left alone and will fail the retried decode.
func Repair(s string) string {
	openBraces := strings.Count(s, "{") - strings.Count(s, "}")
	openBrackets := strings.Count(s, "[") - strings.Count(s, "]")

	s = strings.TrimRight(s, " \t\r\n")
	s = strings.TrimSuffix(s, ",")

	if openBrackets > 0 {
		s += strings.Repeat("]", openBrackets)
	}
	if openBraces > 0 {
		s += strings.Repeat("}", openBraces)
	}
	return s
}

// Parse decodes a structured model response into a ChunkResult, applying one
// repair pass if the strict decode fails. The returned result carries no
// status; the caller stamps it.
func Parse(raw string) (models.ChunkResult, error) {
	cleaned := StripFences(raw)

	var res models.ChunkResult
	if err := json.Unmarshal([]byte(cleaned), &res); err != nil {
		if err2 := json.Unmarshal([]byte(Repair(cleaned)), &res); err2 != nil {
			return models.ChunkResult{}, fmt.Errorf("decode model response: %w", err)
		}
	}
	return res, nil
}
