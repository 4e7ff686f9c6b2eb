package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/claimpipe/claimpipe/internal/config"
	"github.com/claimpipe/claimpipe/internal/parser"
	"github.com/claimpipe/claimpipe/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the claimpipe server",
	Long: `Start the claimpipe HTTP server.

The server provides:
  - POST /v1/parse - Parse one claim email
  - GET  /health   - Basic server health check
  - GET  /ready    - Readiness check

The configuration file is watched; edits rebuild the pipeline without a
restart.

Examples:
  claimpipe serve                    # Start on default port 8080
  claimpipe serve --port 3000        # Start on custom port
  claimpipe serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}

		cfg := mgr.Get()
		host := serveHost
		if host == "" {
			host = cfg.Server.Host
		}
		port := servePort
		if port == "" {
			port = cfg.Server.Port
		}

		srv, err := server.New(server.Config{
			Host:           host,
			Port:           port,
			RequestTimeout: time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second,
			ConfigManager:  mgr,
			Factory: func(c *config.Config) (*parser.Pipeline, error) {
				return buildPipeline(c, logger)
			},
			Logger: logger,
		})
		if err != nil {
			return err
		}

		mgr.WatchConfig()

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
