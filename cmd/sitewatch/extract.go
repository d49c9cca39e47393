package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitewatch/internal/extractor"
)

func newExtractCommand(app *appContext) *cobra.Command {
	var fps float64

	cmd := &cobra.Command{
		Use:   "extract <video>",
		Short: "Extract frames from a video into the frames directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := extractor.ExtractFrames(args[0], app.cfg.Paths.FramesDir, fps, app.logger)
			if err != nil {
				return err
			}
			fmt.Printf("Extracted %d frames to %s\n", n, app.cfg.Paths.FramesDir)
			return nil
		},
	}

	cmd.Flags().Float64Var(&fps, "fps", 0.5, "Frames per second to sample")
	return cmd
}
