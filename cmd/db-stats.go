package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reelrent/reelrent/config"
	"github.com/reelrent/reelrent/database"
)

var dbStatsCmd = &cobra.Command{
	Use:   "db-stats",
	Short: "Show database statistics",
	Long:  `Display row counts for the catalog tables.`,
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

		stats, err := db.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get database stats: %w", err)
		}

		fmt.Println("Database Statistics:")
		fmt.Printf("Movies: %d\n", stats.Movies)
		fmt.Printf("TV Shows: %d\n", stats.Shows)
		fmt.Printf("Genres: %d\n", stats.Genres)

		// Recent searches are a decent proxy for catalog usage.
		queries, err := db.RecentSearches(cmd.Context(), 5)
		if err == nil && len(queries) > 0 {
			fmt.Println("\nRecent Searches:")
			for _, query := range queries {
				fmt.Printf("  %s\n", query)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbStatsCmd)
}
