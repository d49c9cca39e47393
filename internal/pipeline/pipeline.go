// Package pipeline drives chunks through cache, inference, sanitation, and
// memory accumulation, producing the run's timeline.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sitewatch/internal/cache"
	"sitewatch/internal/frames"
	"sitewatch/internal/memory"
	"sitewatch/internal/models"
	"sitewatch/internal/prompt"
	"sitewatch/internal/sanitize"
	"sitewatch/internal/summary"
	"sitewatch/internal/vlm"
)

// Options carry the per-run knobs. There are no package-level settings.
type Options struct {
	ChunkSize        int
	FrameIntervalSec int
	// RequestDelay is the fixed pause after every chunk, cache hit or miss.
	// This fixed cadence is the primary rate-limit defense.
	RequestDelay time.Duration
	// MaxChunks caps the run when positive.
	MaxChunks int
	Params    vlm.Params
}

// Driver runs one mode over a frame sequence, strictly one chunk at a time:
// memory mode's prompt for chunk i+1 depends on chunk i's landmarks, so
// chunk i's full cycle completes before i+1 starts.
type Driver struct {
	client vlm.Client
	store  *cache.Store
	opts   Options
	logger *slog.Logger
}

func New(client vlm.Client, store *cache.Store, opts Options, logger *slog.Logger) *Driver {
	return &Driver{client: client, store: store, opts: opts, logger: logger}
}

// Run processes every chunk and returns the completed run output. Chunk
// failures degrade to error-status results in the timeline; only the caller
// decides whether anything is fatal.
func (d *Driver) Run(ctx context.Context, frameList []frames.Frame, mode models.Mode) (models.RunOutput, error) {
	if _, err := models.ParseMode(string(mode)); err != nil {
		return models.RunOutput{}, err
	}

	chunks := frames.Chunk(frameList, d.opts.ChunkSize)
	if d.opts.MaxChunks > 0 && len(chunks) > d.opts.MaxChunks {
		chunks = chunks[:d.opts.MaxChunks]
	}

	d.logger.Info("processing chunks",
		"chunks", len(chunks),
		"frames", len(frameList),
		"mode", mode)

	acc := memory.NewAccumulator()
	timeline := make(models.Timeline, 0, len(chunks))

	for i, chunk := range chunks {
		res, hit, err := d.store.Get(i, mode)
		if err != nil {
			d.logger.Warn("cache read failed, treating as miss", "chunk", i, "error", err)
			hit = false
		}

		if !hit {
			res = d.analyzeChunk(ctx, i, chunk, mode, acc)
			if err := d.store.Put(i, mode, res); err != nil {
				d.logger.Warn("cache write failed", "chunk", i, "error", err)
			}
		}

		timeline = append(timeline, res)

		// Extension happens strictly after the call that produced the
		// result, so a chunk never sees its own landmarks.
		if mode == models.ModeMemory && res.Status == models.StatusOK {
			acc.Extend(res)
		}

		d.logChunk(i, len(chunks), res, hit)

		time.Sleep(d.opts.RequestDelay)
	}

	landmarks := []models.Landmark{}
	if mode == models.ModeMemory {
		landmarks = acc.Landmarks()
	}

	return models.RunOutput{
		RunID:       uuid.NewString(),
		Mode:        mode,
		TotalFrames: len(frameList),
		TotalChunks: len(chunks),
		Timeline:    timeline,
		Landmarks:   landmarks,
		Summary:     summary.Compile(timeline),
	}, nil
}

func (d *Driver) analyzeChunk(ctx context.Context, chunkIndex int, chunk []frames.Frame, mode models.Mode, acc *memory.Accumulator) models.ChunkResult {
	ts := d.timestampRange(chunkIndex, len(chunk))

	var p string
	switch mode {
	case models.ModeNaive:
		p = prompt.Naive
	case models.ModeMemory:
		p = prompt.Memory(len(chunk), d.opts.FrameIntervalSec, acc.Render())
	default:
		p = prompt.Structured(len(chunk), d.opts.FrameIntervalSec)
	}

	raw, err := d.client.Infer(ctx, vlm.Request{
		Images: frames.Paths(chunk),
		Prompt: p,
		Params: d.opts.Params,
	})
	if err != nil {
		return models.ChunkResult{
			ChunkIndex:     chunkIndex,
			TimestampRange: ts,
			Activity:       "error",
			Productivity:   models.ProductivityUnknown,
			Status:         models.StatusCallError,
			ErrorDetail:    err.Error(),
		}
	}

	if mode == models.ModeNaive {
		return models.ChunkResult{
			ChunkIndex:     chunkIndex,
			TimestampRange: ts,
			Activity:       "unknown",
			Productivity:   models.ProductivityUnknown,
			Confidence:     0,
			RawResponse:    raw,
			Status:         models.StatusOK,
		}
	}

	res, parseErr := sanitize.Parse(raw)
	if parseErr != nil {
		return models.ChunkResult{
			ChunkIndex:     chunkIndex,
			TimestampRange: ts,
			Activity:       "parse_error",
			Productivity:   models.ProductivityUnknown,
			RawResponse:    raw,
			Status:         models.StatusParseError,
			ErrorDetail:    parseErr.Error(),
		}
	}

	res.ChunkIndex = chunkIndex
	res.TimestampRange = ts
	res.Status = models.StatusOK
	return res
}

// timestampRange derives the wall-clock span a chunk covers from its index
// and the extraction interval.
func (d *Driver) timestampRange(chunkIndex, chunkLen int) string {
	start := chunkIndex * d.opts.ChunkSize * d.opts.FrameIntervalSec
	end := start + chunkLen*d.opts.FrameIntervalSec
	return fmt.Sprintf("%ds - %ds", start, end)
}

func (d *Driver) logChunk(i, total int, res models.ChunkResult, hit bool) {
	attrs := []any{
		"chunk", fmt.Sprintf("%d/%d", i+1, total),
		"activity", res.Activity,
		"productivity", res.Productivity,
		"cached", hit,
	}
	switch res.Status {
	case models.StatusOK:
		d.logger.Info("chunk analyzed", attrs...)
	default:
		d.logger.Error("chunk failed", append(attrs, "status", res.Status, "detail", res.ErrorDetail)...)
	}
}
