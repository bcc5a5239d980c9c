// Package commands implements the newsboard command line.
package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/GyroZepelix/newsboard/internal/config"
)

var (
	// Global flags
	databaseURL string
	devMode     bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "newsboard",
	Short: "newsboard - a news aggregation and discussion API",
	Long: `newsboard serves a JSON API of topics, articles, comments and users
backed by PostgreSQL.

Configuration is read from NEWSBOARD_* environment variables and an optional
.env file in the working directory. Flags override the environment.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if cmd.Flags().Changed("database-url") {
			cfg.DatabaseURL = databaseURL
		}
		if cmd.Flags().Changed("dev") {
			cfg.DevMode = devMode
		}
		setupLogging(cfg.DevMode)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (overrides NEWSBOARD_DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Development mode (overrides NEWSBOARD_DEV_MODE)")
}

// setupLogging installs a JSON slog handler as the default logger.
func setupLogging(dev bool) {
	level := slog.LevelInfo
	if dev {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
}

func requireDatabaseURL() error {
	if cfg.DatabaseURL == "" {
		return errors.New("NEWSBOARD_DATABASE_URL or --database-url is required")
	}
	return nil
}
