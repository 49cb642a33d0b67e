package cmd

import (
	"fmt"

	"github.com/mergestat/timediff"
	"github.com/spf13/cobra"

	"github.com/reelrent/reelrent/config"
	"github.com/reelrent/reelrent/database"
	"github.com/reelrent/reelrent/userdata"
)

var rentalsCmd = &cobra.Command{
	Use:   "rentals <user-id>",
	Short: "Show a user's rentals",
	Long:  `List a user's rental records with their remaining time.`,
	Args:  cobra.ExactArgs(1),
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

		user, err := db.GetUserByID(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to look up user: %w", err)
		}

		scope := userdata.NewScopes(db).Scope(user.ID)
		rentals, err := scope.Rentals.All(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load rentals: %w", err)
		}
		if len(rentals) == 0 {
			fmt.Printf("No rentals for %s\n", user.Email)
			return nil
		}

		fmt.Printf("Rentals for %s:\n", user.Email)
		for _, rental := range rentals {
			fmt.Printf("  %s (%s) $%.2f, rented %s, expires %s\n",
				rental.Title, rental.Kind, float64(rental.PriceCents)/100,
				timediff.TimeDiff(rental.RentedAt),
				timediff.TimeDiff(rental.ExpiresAt),
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rentalsCmd)
}
