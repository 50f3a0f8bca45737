package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/internal/config"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded configuration.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "taskform",
		Short: "Report center task creation form",
		Long: `taskform drives the report center task creation form from the terminal.

It collects a report name, goal, analysis type, background, time range and
catalog-backed metadata, validates them and submits the task through a
simulated backend.

Use "taskform new" for the interactive flow, "taskform preview" to render a
record, and "taskform validate" to check a JSON or YAML record file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			logger, err := cfg.InitLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			a.logger.Debug("configuration loaded",
				zap.String("config", a.configPath),
				zap.Duration("submit_delay", cfg.Submit.Delay),
				zap.String("theme", cfg.Theme.Name+"/"+cfg.Theme.Variant),
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newNewCmd(a),
		newPreviewCmd(a),
		newTemplateCmd(a),
		newValidateCmd(a),
		newSchemaCmd(a),
		newCatalogCmd(a),
	)
	return root
}
