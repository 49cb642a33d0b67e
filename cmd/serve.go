package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/reelrent/reelrent/api"
	"github.com/reelrent/reelrent/auth"
	"github.com/reelrent/reelrent/catalog"
	"github.com/reelrent/reelrent/config"
	"github.com/reelrent/reelrent/database"
	"github.com/reelrent/reelrent/userdata"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ReelRent server",
	Long:  `Start the ReelRent server to serve the catalog and the per-user rental, cart, history and favorites data.`,
	Example: `reelrent serve --config config.yml
reelrent serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	cat := catalog.New(db, cfg.Cache.TTL)
	if err := cat.Initialize(cmd.Context()); err != nil {
		log.Fatalf("failed to initialize catalog: %v", err)
	}

	sweeper, err := userdata.NewSweeper(db, cfg.Rentals.SweepInterval)
	if err != nil {
		log.Fatalf("failed to create rental sweeper: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop() //nolint:errcheck

	server, err := api.New(cfg, cat, auth.New(db))
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	// Start the API server in a goroutine
	go func() {
		log.Info("starting API server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("reelrent started successfully")
	<-c
	log.Info("shutting down gracefully...")

	// Give time for graceful shutdown
	time.Sleep(2 * time.Second)
}
