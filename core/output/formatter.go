// Package output provides output formatting for quotes and plans.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"cleanplan/core/types"
	"cleanplan/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderQuote writes a priced quote
	RenderQuote(w io.Writer, quote *types.QuoteResponse) error

	// RenderPlan writes an ordered visit plan
	RenderPlan(w io.Writer, plan *types.PlanResponse) error

	// RenderSettings writes the rate table and city rules
	RenderSettings(w io.Writer, cfg *types.PricingConfiguration, cities []types.CityRule) error
}

// New returns the formatter for format. Currency labels CLI amounts.
func New(format Format, currency string) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return &CLIFormatter{Currency: currency}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	}
	return nil, errors.Newf(errors.TypeInput, "unknown output format %q", format)
}

// JSONFormatter writes indented JSON in the API wire format
type JSONFormatter struct{}

// Format implements Formatter
func (f *JSONFormatter) Format() Format { return FormatJSON }

// RenderQuote implements Formatter
func (f *JSONFormatter) RenderQuote(w io.Writer, quote *types.QuoteResponse) error {
	return writeJSON(w, quote)
}

// RenderPlan implements Formatter
func (f *JSONFormatter) RenderPlan(w io.Writer, plan *types.PlanResponse) error {
	return writeJSON(w, plan)
}

// RenderSettings implements Formatter
func (f *JSONFormatter) RenderSettings(w io.Writer, cfg *types.PricingConfiguration, cities []types.CityRule) error {
	return writeJSON(w, struct {
		*types.PricingConfiguration
		Cities []types.CityRule `json:"cities"`
	}{cfg, cities})
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// CLIFormatter writes aligned tables
type CLIFormatter struct {
	Currency string
}

// Format implements Formatter
func (f *CLIFormatter) Format() Format { return FormatCLI }

// RenderQuote implements Formatter
func (f *CLIFormatter) RenderQuote(w io.Writer, quote *types.QuoteResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Category\t%s\n", quote.Category)
	fmt.Fprintf(tw, "Net price\t%s\n", f.money(quote.NetPrice))
	fmt.Fprintf(tw, "Travel fee\t%s\n", f.money(quote.TravelFee))
	fmt.Fprintf(tw, "Total\t%s\n", f.money(quote.TotalPrice))

	if len(quote.Details) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Details")
		for _, key := range sortedKeys(quote.Details) {
			fmt.Fprintf(tw, "  %s\t%s\n", key, detailValue(quote.Details[key]))
		}
	}
	return tw.Flush()
}

// RenderPlan implements Formatter
func (f *CLIFormatter) RenderPlan(w io.Writer, plan *types.PlanResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(plan.OrderedCustomers) == 0 {
		fmt.Fprintln(tw, "No matching customers.")
		return tw.Flush()
	}

	fmt.Fprintln(tw, "#\tID\tName\tAddress\tCity\tMinutes")
	for i, c := range plan.OrderedCustomers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n", i+1, c.ID, c.Name, c.Address, c.City, c.ServiceMinutes())
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Distance\t%.1f km\n", plan.DistanceKm)
	fmt.Fprintf(tw, "Travel\t%s\n", minutes(plan.TravelMinutes))
	fmt.Fprintf(tw, "Service\t%s\n", minutes(plan.ServiceMinutes))
	fmt.Fprintf(tw, "Total\t%s\n", minutes(plan.TotalDurationMinutes))
	return tw.Flush()
}

// RenderSettings implements Formatter
func (f *CLIFormatter) RenderSettings(w io.Writer, cfg *types.PricingConfiguration, cities []types.CityRule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "Photovoltaic tiers")
	fmt.Fprintln(tw, "  Modules\tPrice per module")
	for _, t := range cfg.Photovoltaic.Tiers {
		fmt.Fprintf(tw, "  %d-%s\t%s\n", t.Min, t.Max, f.money(t.PricePerUnit))
	}
	fmt.Fprintf(tw, "  Difficult access\t%s%%\n", cfg.Photovoltaic.DifficultAccessSurchargePercent)
	fmt.Fprintf(tw, "  Very dirty\t%s\n", f.money(cfg.Photovoltaic.DirtySurchargeFixed))

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Stairwell\tmethod %s\n", cfg.Stairwell.Method)
	fmt.Fprintf(tw, "  Per unit weekly/biweekly/monthly\t%s / %s / %s\n",
		f.money(cfg.Stairwell.PricePerUnitWeekly), f.money(cfg.Stairwell.PricePerUnitBiweekly), f.money(cfg.Stairwell.PricePerUnitMonthly))
	fmt.Fprintf(tw, "  Per sqm up to/after %s sqm\t%s / %s\n",
		cfg.Stairwell.AreaThreshold, f.money(cfg.Stairwell.PriceAreaUpToThreshold), f.money(cfg.Stairwell.PriceAreaAfterThreshold))
	fmt.Fprintf(tw, "  Flat\t%s\n", f.money(cfg.Stairwell.FlatPrice))

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Glass per window in/out\t%s / %s\n", f.money(cfg.Glass.PriceWindowIn), f.money(cfg.Glass.PriceWindowOut))
	fmt.Fprintf(tw, "Glass per sqm in/out\t%s / %s\n", f.money(cfg.Glass.PriceAreaIn), f.money(cfg.Glass.PriceAreaOut))
	fmt.Fprintf(tw, "Maintenance hourly/per sqm\t%s / %s\n", f.money(cfg.Maintenance.HourlyRate), f.money(cfg.Maintenance.PricePerArea))

	if len(cities) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "City\tTravel fee\tMin order\tSurcharge")
		for _, c := range cities {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.CityName, f.money(c.TravelFee), f.optionalMoney(c.MinOrderValue), optionalPercent(c.SurchargePercent))
		}
	}
	return tw.Flush()
}

func (f *CLIFormatter) money(d decimal.Decimal) string {
	if f.Currency == "" {
		return d.StringFixed(2)
	}
	return d.StringFixed(2) + " " + f.Currency
}

func (f *CLIFormatter) optionalMoney(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return f.money(*d)
}

func optionalPercent(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.String() + "%"
}

func minutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%d min", m)
	}
	return fmt.Sprintf("%dh %02dmin", m/60, m%60)
}

func sortedKeys(d types.Details) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func detailValue(v interface{}) string {
	switch val := v.(type) {
	case decimal.Decimal:
		return val.String()
	case []string:
		return strings.Join(val, "; ")
	case float64:
		return decimal.NewFromFloat(val).String()
	}
	return fmt.Sprint(v)
}
