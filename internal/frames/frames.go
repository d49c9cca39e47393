// Package frames discovers extracted video frames on disk and splits them
// into fixed-size chunks for batched inference calls.
package frames

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Frame is an ordered handle to one extracted still image. Number is the
// ordinal embedded in the filename; sequence order always follows it.
type Frame struct {
	Number int
	Path   string
}

// Load returns all frame_*.jpg files under dir, sorted by their embedded
// frame number. It fails when the directory holds no frames.
func Load(dir string) ([]Frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frames directory %q: %w", dir, err)
	}

	var out []Frame
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "frame_") || !strings.HasSuffix(strings.ToLower(name), ".jpg") {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(name, "frame_%d.jpg", &n); err != nil {
			continue
		}
		out = append(out, Frame{Number: n, Path: filepath.Join(dir, name)})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no frames found in %q", dir)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// Chunk splits frames into contiguous windows of size chunkSize; the final
// chunk may be shorter. Pure function: the input slice is not copied, only
// re-sliced. A non-positive chunkSize yields nil.
func Chunk(frames []Frame, chunkSize int) [][]Frame {
	if chunkSize < 1 || len(frames) == 0 {
		return nil
	}
	chunks := make([][]Frame, 0, (len(frames)+chunkSize-1)/chunkSize)
	for i := 0; i < len(frames); i += chunkSize {
		end := i + chunkSize
		if end > len(frames) {
			end = len(frames)
		}
		chunks = append(chunks, frames[i:end])
	}
	return chunks
}

// Paths returns the file paths of a chunk in order.
func Paths(chunk []Frame) []string {
	paths := make([]string, len(chunk))
	for i, f := range chunk {
		paths[i] = f.Path
	}
	return paths
}
