package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"cleanplan/core/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleQuote() *types.QuoteResponse {
	return &types.QuoteResponse{
		Category:   types.CategoryPhotovoltaic,
		NetPrice:   dec("77.5"),
		TravelFee:  dec("15"),
		TotalPrice: dec("92.5"),
		Details: types.Details{
			"count":                    15,
			"base":                     dec("75"),
			types.DetailTravel:         "flat rate for Köln",
			types.DetailConfigWarnings: []string{"a", "b"},
		},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  Format
		want    Format
		wantErr bool
	}{
		{format: "", want: FormatCLI},
		{format: FormatCLI, want: FormatCLI},
		{format: FormatJSON, want: FormatJSON},
		{format: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := New(tt.format, "EUR")
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr %v, got %v", tt.wantErr, err)
			}
			if err == nil && f.Format() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, f.Format())
			}
		})
	}
}

func TestCLIRenderQuote(t *testing.T) {
	var buf bytes.Buffer
	f := &CLIFormatter{Currency: "EUR"}
	if err := f.RenderQuote(&buf, sampleQuote()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"92.50 EUR", "77.50 EUR", "flat rate for Köln", "a; b"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "base") > strings.Index(out, "count") {
		t.Errorf("expected details sorted by key:\n%s", out)
	}
}

func TestCLIRenderPlan(t *testing.T) {
	minutes := 45
	plan := &types.PlanResponse{
		OrderedCustomers: []types.Customer{
			{ID: "7", Name: "Müller", City: "Köln", DurationMinutes: &minutes},
		},
		DistanceKm:           12.34,
		TravelMinutes:        25,
		ServiceMinutes:       45,
		TotalDurationMinutes: 70,
	}

	var buf bytes.Buffer
	if err := (&CLIFormatter{}).RenderPlan(&buf, plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Müller", "12.3 km", "1h 10min", "25 min"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := (&CLIFormatter{}).RenderPlan(&buf, &types.PlanResponse{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No matching customers") {
		t.Errorf("unexpected empty plan output %q", buf.String())
	}
}

func TestCLIRenderSettings(t *testing.T) {
	cfg := types.DefaultPricingConfiguration()
	surcharge := dec("10")
	cities := []types.CityRule{{CityName: "Köln", TravelFee: dec("15"), SurchargePercent: &surcharge}}

	var buf bytes.Buffer
	if err := (&CLIFormatter{}).RenderSettings(&buf, cfg, cities); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"0-∞", "Köln", "15.00", "10%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestJSONRenderQuote(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).RenderQuote(&buf, sampleQuote()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	// number or string depending on decimal.MarshalJSONWithoutQuotes
	if got := fmt.Sprint(decoded["total_price"]); got != "92.5" {
		t.Errorf("expected total_price 92.5, got %v", got)
	}
	if decoded["service_category"] != "photovoltaic" {
		t.Errorf("unexpected category %v", decoded["service_category"])
	}
}

func TestJSONRenderSettings(t *testing.T) {
	var buf bytes.Buffer
	cities := []types.CityRule{{CityName: "Bonn", TravelFee: dec("20")}}
	if err := (&JSONFormatter{}).RenderSettings(&buf, types.DefaultPricingConfiguration(), cities); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"pv_config", "stairwell_config", "glass_config", "maintenance_config", "cities"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("expected key %s", key)
		}
	}
}
