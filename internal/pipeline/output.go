package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sitewatch/internal/models"
)

// OutputPath returns where a mode's timeline artifact lives under outputDir.
func OutputPath(outputDir string, mode models.Mode) string {
	return filepath.Join(outputDir, fmt.Sprintf("timeline_%s.json", mode))
}

// WriteOutput persists a completed run as one human-readable JSON artifact,
// keyed by mode. Returns the written path.
func WriteOutput(outputDir string, output models.RunOutput) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", outputDir, err)
	}
	path := OutputPath(outputDir, output.Mode)
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode run output: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write run output %s: %w", path, err)
	}
	return path, nil
}

// ReadOutput loads a previously written timeline artifact.
func ReadOutput(outputDir string, mode models.Mode) (models.RunOutput, error) {
	path := OutputPath(outputDir, mode)
	data, err := os.ReadFile(path)
	if err != nil {
		return models.RunOutput{}, fmt.Errorf("read run output %s: %w", path, err)
	}
	var output models.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return models.RunOutput{}, fmt.Errorf("decode run output %s: %w", path, err)
	}
	return output, nil
}
