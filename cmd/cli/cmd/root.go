// Package cmd provides the CLI commands for cleanplan.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cleanplan/adapters/storage"
	"cleanplan/core/engine"
	"cleanplan/core/output"
	"cleanplan/core/pricing"
	"cleanplan/internal/config"
	"cleanplan/internal/logging"
)

// Version is set at build time via -ldflags
var Version = "0.1.0"

var (
	cfgFile      string
	verbose      bool
	outputFormat string
	strictMode   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cleanplan",
	Short: "Price cleaning jobs and plan visit routes",
	Long: `cleanplan prices cleaning service requests against configurable rate
tables and orders a day's customer visits into a short route.

Examples:
  cleanplan quote --category pv --modules 24 --city Köln
  cleanplan quote --category stairwell --units 12 --frequency 2 --format json
  cleanplan plan --city Köln --service pv --employee 7
  cleanplan pricing show
  cleanplan serve`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./cleanplan.yaml or $HOME/.cleanplan/cleanplan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")
	rootCmd.PersistentFlags().BoolVar(&strictMode, "strict", false, "report rate table gaps as errors")

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if strictMode {
		cfg.Pricing.Mode = string(pricing.ModeStrict)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// openService wires the configured source into an engine service.
// The caller must close the returned source.
func openService(ctx context.Context) (*engine.Service, storage.Source, error) {
	cfg := config.Get()

	mode, err := pricing.ParseMode(cfg.Pricing.Mode)
	if err != nil {
		return nil, nil, err
	}

	src, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, err
	}

	svc := engine.NewService(src, engine.Options{
		Mode:            mode,
		AverageSpeedKmh: cfg.Planning.AverageSpeedKmh,
		Logger:          logging.Named("engine"),
	})
	return svc, src, nil
}

func formatter() (output.Formatter, error) {
	return output.New(output.Format(outputFormat), config.Get().Pricing.Currency)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cleanplan version %s\n", Version)
	},
}
