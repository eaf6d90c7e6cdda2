// Package cmd - serve command
package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cleanplan/api"
	"cleanplan/internal/config"
	"cleanplan/internal/logging"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quoting and planning HTTP API",
	Long: `Serve the HTTP API:

  POST /api/v1/pricing/calculate
  POST /api/v1/planning/auto
  GET  /api/v1/pricing/settings
  GET  /api/v1/pricing/cities
  GET  /health
  GET  /version`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, src, err := openService(ctx)
	if err != nil {
		return err
	}
	defer src.Close()

	cfg := config.Get()
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	server := api.NewServer(svc, api.Options{
		Version:        Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logging.Named("api"),
	})
	return server.Run(ctx, addr)
}
