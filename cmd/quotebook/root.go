package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotebook/internal/platform/config"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	profile   string
	configDir string
	ephemeral bool

	// cfg is loaded and validated before any command runs.
	cfg *config.Config
}

func defaultProfile() string {
	if p := os.Getenv("APP_ENVIRONMENT"); p != "" {
		return p
	}

	return "local"
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "quotebook",
		Short: "Keep, filter and share a list of quotes",
		Long: `quotebook keeps an ordered list of quotes in a local key-value store.
Without a subcommand it serves the quote page and JSON API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(opts.configDir, opts.profile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if opts.ephemeral {
				cfg.Storage.Backend = "memory"
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			opts.cfg = cfg

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.profile, "profile", defaultProfile(), "configuration profile (configs/<profile>.yaml)")
	flags.StringVar(&opts.configDir, "config-dir", config.DefaultConfigDir, "directory holding base.yaml and profile files")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep quotes in memory only")

	cmd.AddCommand(
		newServeCmd(opts),
		newRandomCmd(opts),
		newCategoriesCmd(opts),
		newAddCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newSyncCmd(opts),
	)

	return cmd
}

// loggingConfig adapts the log section of cfg for logging.New.
func loggingConfig(cfg *config.Config) *logging.Config {
	return &logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}
}
