package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sitewatch/internal/storage"
	"sitewatch/internal/vlm"
)

func newSearchCommand(app *appContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Semantic search over indexed segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.cfg.Postgres.Enabled {
				return errors.New("postgres is not enabled in the config")
			}

			store, err := storage.New(cmd.Context(), app.cfg.Postgres.ConnString(), app.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			embedder := vlm.NewOllamaEmbedder(app.cfg.Model.BaseURL, app.cfg.Model.Port, app.cfg.Model.EmbeddingModel)
			embedSvc := storage.NewEmbedService(embedder, 1)
			defer embedSvc.Close()

			matches, err := store.Search(cmd.Context(), embedSvc, args[0], limit)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Println("No matching segments.")
				return nil
			}

			fmt.Println(renderMatches(matches))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of results")
	return cmd
}
