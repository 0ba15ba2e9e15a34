package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/liturgica/lectern/internal/config"
	"github.com/liturgica/lectern/internal/home"
	"github.com/liturgica/lectern/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Lectern server",
	Long: `Start the Lectern HTTP server.

The server keeps presentations in memory and writes exported decks to
the exports directory under the lectern home. Configuration is hot
reloaded, so image provider API keys can be changed without a restart.

Examples:
  lectern serve                  # Start on default port 8666
  lectern serve --port 3000      # Start on custom port
  lectern serve --host 0.0.0.0   # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		// Load configuration and watch for changes
		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		mgr.WatchConfig()

		cfg := mgr.Get()
		host := cfg.Server.Host
		port := cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			HomeDir:       h,
			ConfigManager: mgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().IntVar(&servePort, "port", 8666, "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
