package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sitewatch/internal/models"
	"sitewatch/internal/pipeline"
	"sitewatch/internal/storage"
	"sitewatch/internal/vlm"
)

func newIndexCommand(app *appContext) *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index a saved timeline into PostgreSQL for semantic search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.cfg.Postgres.Enabled {
				return errors.New("postgres is not enabled in the config")
			}
			mode, err := models.ParseMode(modeFlag)
			if err != nil {
				return err
			}

			output, err := pipeline.ReadOutput(app.cfg.Paths.OutputDir, mode)
			if err != nil {
				return err
			}

			connString := app.cfg.Postgres.ConnString()
			if err := storage.InitSchema(cmd.Context(), connString); err != nil {
				return err
			}

			store, err := storage.New(cmd.Context(), connString, app.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			embedder := vlm.NewOllamaEmbedder(app.cfg.Model.BaseURL, app.cfg.Model.Port, app.cfg.Model.EmbeddingModel)
			embedSvc := storage.NewEmbedService(embedder, 4)
			defer embedSvc.Close()

			if err := store.IndexRun(cmd.Context(), output, embedSvc); err != nil {
				return err
			}

			fmt.Printf("Indexed run %s (%s mode)\n", output.RunID, output.Mode)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", string(models.ModeMemory), "Which mode's timeline to index")
	return cmd
}
