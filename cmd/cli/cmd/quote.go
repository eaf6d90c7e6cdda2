// Package cmd - quote command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cleanplan/core/types"
)

var (
	quoteReq     types.QuoteRequest
	quoteInput   string
	quoteCatName string
	quoteGlass   string
)

// quoteCmd prices a single service request
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a cleaning service request",
	Long: `Price a single service request against the configured rate table.

The request is built from flags or read from a JSON file in the API wire
format (--input). Flags not relevant to the category are ignored.

Examples:
  cleanplan quote --category pv --modules 24 --difficult --city Köln
  cleanplan quote --category stairwell --units 12 --frequency 2
  cleanplan quote --category glass --glass-method sqm --glass-sqm-in 40 --frame
  cleanplan quote --category maintenance --hours 3.5 --existing
  cleanplan quote --input request.json --format json`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	f := quoteCmd.Flags()
	f.StringVarP(&quoteInput, "input", "i", "", "read the request from a JSON file")
	f.StringVarP(&quoteCatName, "category", "c", "", "service category (photovoltaic|pv, stairwell, glass, maintenance)")
	f.StringVar(&quoteReq.City, "city", "", "city for the travel fee")
	f.BoolVar(&quoteReq.ExistingCustomer, "existing", false, "existing customer (no travel fee)")

	f.IntVar(&quoteReq.ModuleCount, "modules", 0, "photovoltaic module count")
	f.BoolVar(&quoteReq.DifficultAccess, "difficult", false, "photovoltaic difficult access")
	f.BoolVar(&quoteReq.VeryDirty, "dirty", false, "photovoltaic heavy soiling")

	f.IntVar(&quoteReq.Units, "units", 0, "stairwell residential units")
	f.IntVar(&quoteReq.Floors, "floors", 0, "stairwell floors")
	f.Float64Var(&quoteReq.FrequencyPerMonth, "frequency", 0, "stairwell cleanings per month (default 4)")
	f.Var(decimalValue{&quoteReq.Area}, "sqm", "stairwell area in square meters")
	f.BoolVar(&quoteReq.HasCellar, "cellar", false, "stairwell includes cellar")
	f.IntVar(&quoteReq.WindowsCount, "windows", 0, "stairwell window count")

	f.StringVar(&quoteGlass, "glass-method", "", "glass pricing method (window, sqm)")
	f.IntVar(&quoteReq.GlassCountIn, "glass-in", 0, "glass windows cleaned inside")
	f.IntVar(&quoteReq.GlassCountOut, "glass-out", 0, "glass windows cleaned outside")
	f.Var(decimalValue{&quoteReq.GlassAreaIn}, "glass-sqm-in", "glass area inside")
	f.Var(decimalValue{&quoteReq.GlassAreaOut}, "glass-sqm-out", "glass area outside")
	f.BoolVar(&quoteReq.GlassHeightSurcharge, "height", false, "glass height surcharge")
	f.BoolVar(&quoteReq.GlassDifficultAccess, "glass-difficult", false, "glass difficult access")
	f.BoolVar(&quoteReq.FrameCleaning, "frame", false, "glass frame cleaning")

	f.Var(decimalValue{&quoteReq.MaintenanceArea}, "maintenance-sqm", "maintenance area")
	f.Var(decimalValue{&quoteReq.HoursEstimated}, "hours", "maintenance hours (takes precedence over area)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	req, err := buildQuoteRequest()
	if err != nil {
		return err
	}

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

	resp, err := svc.Quote(ctx, req)
	if err != nil {
		return err
	}
	return fm.RenderQuote(cmd.OutOrStdout(), resp)
}

func buildQuoteRequest() (*types.QuoteRequest, error) {
	if quoteInput != "" {
		data, err := os.ReadFile(quoteInput)
		if err != nil {
			return nil, fmt.Errorf("read request: %w", err)
		}
		var req types.QuoteRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("decode request %s: %w", quoteInput, err)
		}
		return &req, nil
	}

	if quoteCatName == "" {
		return nil, fmt.Errorf("--category is required")
	}
	req := quoteReq
	req.Category = types.ParseCategory(quoteCatName)

	method, err := types.ParseGlassMethod(quoteGlass)
	if err != nil {
		return nil, err
	}
	req.GlassMethod = method
	return &req, nil
}
