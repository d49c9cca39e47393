package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sitewatch/internal/cache"
	"sitewatch/internal/frames"
	"sitewatch/internal/models"
	"sitewatch/internal/pipeline"
	"sitewatch/internal/vlm"
)

func newAnalyzeCommand(app *appContext) *cobra.Command {
	var modeFlag string
	var maxChunks int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the chunked analysis pipeline over extracted frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := models.ParseMode(modeFlag)
			if err != nil {
				return err
			}

			frameList, err := frames.Load(app.cfg.Paths.FramesDir)
			if err != nil {
				return err
			}

			driver, err := buildDriver(cmd.Context(), app, maxChunks)
			if err != nil {
				return err
			}

			output, err := driver.Run(cmd.Context(), frameList, mode)
			if err != nil {
				return err
			}

			path, err := pipeline.WriteOutput(app.cfg.Paths.OutputDir, output)
			if err != nil {
				return err
			}

			fmt.Println(renderSummary(mode, output.Summary))
			fmt.Printf("Saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", string(models.ModeMemory), "Analysis mode (naive, structured, memory)")
	cmd.Flags().IntVar(&maxChunks, "max-chunks", 0, "Limit the number of chunks processed (0 = all)")
	return cmd
}

// buildDriver wires the inference client, retry controller, cache store, and
// driver from the loaded config.
func buildDriver(ctx context.Context, app *appContext, maxChunks int) (*pipeline.Driver, error) {
	client, err := vlm.NewOllamaClient(ctx, vlm.OllamaOptions{
		BaseURL: app.cfg.Model.BaseURL,
		Port:    app.cfg.Model.Port,
		Model:   app.cfg.Model.Name,
	}, app.logger)
	if err != nil {
		return nil, err
	}

	retrier := vlm.NewRetrier(
		client,
		app.cfg.Pipeline.MaxAttempts,
		time.Duration(app.cfg.Pipeline.DefaultBackoffSec)*time.Second,
		app.logger,
	)

	store := cache.NewStore(app.cfg.Paths.CacheDir, app.logger)

	return pipeline.New(retrier, store, pipeline.Options{
		ChunkSize:        app.cfg.Pipeline.FramesPerChunk,
		FrameIntervalSec: app.cfg.Pipeline.FrameIntervalSec,
		RequestDelay:     time.Duration(app.cfg.Pipeline.RequestDelaySec) * time.Second,
		MaxChunks:        maxChunks,
		Params: vlm.Params{
			Temperature:     app.cfg.Model.Temperature,
			MaxOutputTokens: app.cfg.Model.MaxOutputTokens,
		},
	}, app.logger), nil
}
