// Package extractor shells out to ffmpeg to sample still frames from a video.
package extractor

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExtractFrames samples frames from videoPath into framesDir at the given
// rate, writing frame_0001.jpg onward. Stale frames from a previous
// extraction are removed first so the sequence stays gap-free. Returns the
// number of frames written.
func ExtractFrames(videoPath, framesDir string, fps float64, logger *slog.Logger) (int, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return 0, fmt.Errorf("video file does not exist at path: %q", videoPath)
	}
	if fps <= 0 {
		return 0, fmt.Errorf("fps must be positive, got %g", fps)
	}

	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return 0, fmt.Errorf("create frames directory %q: %w", framesDir, err)
	}
	if err := clearFrames(framesDir); err != nil {
		return 0, err
	}

	logger.Info("extracting frames", "video", videoPath, "dir", framesDir, "fps", fps)

	cmd := exec.Command(
		"ffmpeg", "-y",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=%g", fps),
		"-q:v", "3",
		filepath.Join(framesDir, "frame_%04d.jpg"),
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffmpeg failed: %w\noutput: %s", err, string(output))
	}

	n, err := countFrames(framesDir)
	if err != nil {
		return 0, err
	}
	logger.Info("extraction complete", "frames", n)
	return n, nil
}

func clearFrames(framesDir string) error {
	entries, err := os.ReadDir(framesDir)
	if err != nil {
		return fmt.Errorf("read frames directory %q: %w", framesDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "frame_") {
			continue
		}
		if err := os.Remove(filepath.Join(framesDir, entry.Name())); err != nil {
			return fmt.Errorf("remove stale frame %q: %w", entry.Name(), err)
		}
	}
	return nil
}

func countFrames(framesDir string) (int, error) {
	entries, err := os.ReadDir(framesDir)
	if err != nil {
		return 0, fmt.Errorf("read frames directory %q: %w", framesDir, err)
	}
	n := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), "frame_") {
			n++
		}
	}
	return n, nil
}
