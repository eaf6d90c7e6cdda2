// Package cmd - plan command
package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"cleanplan/core/types"
)

var planReq types.PlanRequest

// planCmd orders a day's visits
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Order a day's customer visits into a route",
	Long: `Select active customers by city and service type, order them with a
nearest-neighbor heuristic starting near their centroid, and estimate the
total time at the configured average speed.

Examples:
  cleanplan plan --city Köln
  cleanplan plan --city Köln --service pv --date 2024-05-02 --employee 7
  cleanplan plan --format json`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planReq.Date, "date", "", "visit date YYYY-MM-DD (default today)")
	planCmd.Flags().StringVar(&planReq.EmployeeID, "employee", "", "employee id")
	planCmd.Flags().StringVar(&planReq.City, "city", "", "only customers in this city")
	planCmd.Flags().StringVar(&planReq.ServiceType, "service", "", "only customers with this service tag")
}

func runPlan(cmd *cobra.Command, args []string) error {
	fm, err := formatter()
	if err != nil {
		return err
	}

	req := planReq
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}

	ctx := context.Background()
	svc, src, err := openService(ctx)
	if err != nil {
		return err
	}
	defer src.Close()

	resp, err := svc.Plan(ctx, &req)
	if err != nil {
		return err
	}
	return fm.RenderPlan(cmd.OutOrStdout(), resp)
}
