package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/GyroZepelix/newsboard/internal/cache"
	"github.com/GyroZepelix/newsboard/internal/database"
	"github.com/GyroZepelix/newsboard/internal/images"
	"github.com/GyroZepelix/newsboard/internal/seed"
	"github.com/GyroZepelix/newsboard/internal/topics"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all data with a fixture set",
	Long: `Truncate every table and load a fixture set in one transaction.

Without --file the embedded development data is used. The schema must
already be migrated.

Examples:
  newsboard seed
  newsboard seed --file ./fixtures/test.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireDatabaseURL(); err != nil {
			return err
		}
		return runSeed(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML fixture file (defaults to the embedded dev data)")
}

func runSeed(ctx context.Context) error {
	data, err := loadSeedData()
	if err != nil {
		return err
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	db, err := database.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := seed.Run(ctx, db, data); err != nil {
		return err
	}

	// Cached reference lists are stale after a reseed.
	if cfg.RedisURL != "" {
		c, err := cache.New(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			slog.Warn("redis unavailable, cached lists not invalidated", "error", err)
			return nil
		}
		defer c.Close()
		if err := c.Invalidate(ctx, topics.CacheKey, images.GalleryCacheKey, images.AvatarsCacheKey); err != nil {
			slog.Warn("failed to invalidate cached lists", "error", err)
		}
	}
	return nil
}

func loadSeedData() (*seed.Data, error) {
	if seedFile == "" {
		return seed.Dev()
	}
	f, err := os.Open(seedFile)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()
	return seed.Load(f)
}
