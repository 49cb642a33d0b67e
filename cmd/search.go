package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reelrent/reelrent/config"
	"github.com/reelrent/reelrent/database"
)

var searchCmdFlags struct {
	Genre     int
	MinRating float64
	Year      int
	Kind      string
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Long:  `Search movies and TV shows by title and overview, optionally narrowed by genre, rating, year or kind.`,
	Args:  cobra.MinimumNArgs(1),
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

		result, err := db.SearchContent(cmd.Context(), database.SearchFilters{
			Query:     strings.Join(args, " "),
			GenreID:   searchCmdFlags.Genre,
			MinRating: searchCmdFlags.MinRating,
			Year:      searchCmdFlags.Year,
			Kind:      database.MediaType(searchCmdFlags.Kind),
		})
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		for _, movie := range result.Movies {
			fmt.Printf("movie  %4d  %-40s %.1f\n", movie.ID, movie.Title, movie.VoteAverage)
		}
		for _, show := range result.Shows {
			fmt.Printf("tv     %4d  %-40s %.1f\n", show.ID, show.Name, show.VoteAverage)
		}
		fmt.Printf("%d results\n", result.Total)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchCmdFlags.Genre, "genre", 0, "Filter by genre id")
	searchCmd.Flags().Float64Var(&searchCmdFlags.MinRating, "min-rating", 0, "Filter by minimum vote average")
	searchCmd.Flags().IntVar(&searchCmdFlags.Year, "year", 0, "Filter by release year")
	searchCmd.Flags().StringVar(&searchCmdFlags.Kind, "kind", "", "Restrict to one media kind (movie or tv)")
	rootCmd.AddCommand(searchCmd)
}
