// Package main - Entry point for the cleanplan HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"cleanplan/adapters/storage"
	"cleanplan/api"
	"cleanplan/core/engine"
	"cleanplan/core/pricing"
	"cleanplan/internal/config"
	"cleanplan/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgFile := flag.String("config", "", "config file")
	addr := flag.String("addr", "", "server address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := run(cfg); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mode, err := pricing.ParseMode(cfg.Pricing.Mode)
	if err != nil {
		return err
	}

	src, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer src.Close()

	svc := engine.NewService(src, engine.Options{
		Mode:            mode,
		AverageSpeedKmh: cfg.Planning.AverageSpeedKmh,
	})

	logging.Info("starting cleanplan server",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("pricing_mode", string(mode)),
	)

	server := api.NewServer(svc, api.Options{
		Version:        version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	return server.Run(ctx, cfg.Server.Addr)
}
