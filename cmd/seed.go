package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reelrent/reelrent/catalog"
	"github.com/reelrent/reelrent/config"
	"github.com/reelrent/reelrent/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the catalog",
	Long:  `Load the built-in catalog into an empty database. A database that already holds movies is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint:errcheck

		cat := catalog.New(db, cfg.Cache.TTL)
		if err := cat.Initialize(cmd.Context()); err != nil {
			return err
		}

		stats, err := db.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get database stats: %w", err)
		}
		fmt.Printf("Catalog ready: %d movies, %d tv shows, %d genres\n", stats.Movies, stats.Shows, stats.Genres)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
