package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"sitewatch/internal/config"
)

// appContext carries the loaded configuration and logger to subcommands.
type appContext struct {
	configFlag *string
	levelFlag  *string

	cfg    config.Config
	logger *slog.Logger
	loaded bool
}

func (a *appContext) ensure() error {
	if a.loaded {
		return nil
	}

	level := slog.LevelInfo
	switch *a.levelFlag {
	case "debug":
		level = slog.LevelDebug
	case "info":
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", *a.levelFlag)
	}

	a.logger = slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	)

	cfg, resolved, exists, err := config.Load(*a.configFlag)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", resolved, err)
	}
	if !exists {
		a.logger.Debug("config file absent, using defaults", "path", resolved)
	}

	a.cfg = cfg
	a.loaded = true
	return nil
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var levelFlag string

	app := &appContext{configFlag: &configFlag, levelFlag: &levelFlag}

	rootCmd := &cobra.Command{
		Use:           "sitewatch",
		Short:         "Chunked vision analysis of worksite footage",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.ensure()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&levelFlag, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newExtractCommand(app))
	rootCmd.AddCommand(newAnalyzeCommand(app))
	rootCmd.AddCommand(newCompareCommand(app))
	rootCmd.AddCommand(newIndexCommand(app))
	rootCmd.AddCommand(newSearchCommand(app))

	return rootCmd
}
