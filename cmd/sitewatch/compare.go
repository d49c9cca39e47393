package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitewatch/internal/compare"
	"sitewatch/internal/frames"
)

func newCompareCommand(app *appContext) *cobra.Command {
	var maxChunks int

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run all three modes and produce a side-by-side comparison",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			frameList, err := frames.Load(app.cfg.Paths.FramesDir)
			if err != nil {
				return err
			}

			driver, err := buildDriver(cmd.Context(), app, maxChunks)
			if err != nil {
				return err
			}

			report, err := compare.Run(cmd.Context(), driver, frameList, app.cfg.Paths.OutputDir, app.logger)
			if err != nil {
				return err
			}

			path, err := compare.Write(app.cfg.Paths.OutputDir, report)
			if err != nil {
				return err
			}

			fmt.Println(renderComparison(report))
			fmt.Printf("Saved comparison to %s\n", path)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxChunks, "max-chunks", 0, "Limit the number of chunks processed per mode (0 = all)")
	return cmd
}
