// Package cmd - pricing commands
package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cleanplan/core/types"
)

var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Inspect the rate table",
}

var pricingShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active rate table and city rules",
	Long: `Show the rate table and city travel-fee rules as read from the
configured storage backend. Missing sections show their defaults.`,
	Args: cobra.NoArgs,
	RunE: runPricingShow,
}

func init() {
	rootCmd.AddCommand(pricingCmd)
	pricingCmd.AddCommand(pricingShowCmd)
}

func runPricingShow(cmd *cobra.Command, args []string) error {
	fm, err := formatter()
	if err != nil {
		return err
	}

	ctx := context.Background()
	svc, src, err := openService(ctx)
	if err != nil {
		return err
	}
	defer src.Close()

	var (
		cfg    *types.PricingConfiguration
		cities []types.CityRule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cfg, err = svc.PricingConfiguration(gctx)
		return err
	})
	g.Go(func() (err error) {
		cities, err = svc.CityRules(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return fm.RenderSettings(cmd.OutOrStdout(), cfg, cities)
}
