package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"cleanplan/core/types"
)

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestResolveTravelFee(t *testing.T) {
	rules := []types.CityRule{
		{CityName: "Köln", TravelFee: dec("15"), SurchargePercent: ptr(dec("10"))},
		{CityName: "Bonn", TravelFee: dec("25"), MinOrderValue: ptr(dec("150"))},
		{CityName: "bonn", TravelFee: dec("99")},
	}

	tests := []struct {
		name        string
		req         types.QuoteRequest
		net         string
		fee         string
		adjustedNet string
		travel      string
		warning     bool
		unmatched   bool
	}{
		{
			name:        "existing customer travels free",
			req:         types.QuoteRequest{City: "Köln", ExistingCustomer: true},
			net:         "100",
			fee:         "0",
			adjustedNet: "100",
			travel:      TravelExisting,
		},
		{
			name:        "no city is standard",
			req:         types.QuoteRequest{},
			net:         "100",
			fee:         "0",
			adjustedNet: "100",
			travel:      TravelStandard,
		},
		{
			name:        "surcharge raises net price",
			req:         types.QuoteRequest{City: "  KÖLN "},
			net:         "100",
			fee:         "15",
			adjustedNet: "110",
			travel:      "flat rate for Köln",
		},
		{
			name:        "minimum order warning does not change price",
			req:         types.QuoteRequest{City: "bonn"},
			net:         "100",
			fee:         "25",
			adjustedNet: "100",
			travel:      "flat rate for Bonn",
			warning:     true,
		},
		{
			name:        "minimum order reached",
			req:         types.QuoteRequest{City: "Bonn"},
			net:         "150",
			fee:         "25",
			adjustedNet: "150",
			travel:      "flat rate for Bonn",
		},
		{
			name:        "unknown city",
			req:         types.QuoteRequest{City: "Aachen"},
			net:         "100",
			fee:         "0",
			adjustedNet: "100",
			travel:      TravelStandard,
			unmatched:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolveTravelFee(&tt.req, rules, dec(tt.net))

			if !result.Fee.Equal(dec(tt.fee)) {
				t.Errorf("expected fee %s, got %s", tt.fee, result.Fee)
			}
			if !result.NetPrice.Equal(dec(tt.adjustedNet)) {
				t.Errorf("expected net %s, got %s", tt.adjustedNet, result.NetPrice)
			}
			if result.Details[types.DetailTravel] != tt.travel {
				t.Errorf("expected travel details %q, got %v", tt.travel, result.Details[types.DetailTravel])
			}
			if _, ok := result.Details[types.DetailWarning]; ok != tt.warning {
				t.Errorf("expected warning=%v, got details %v", tt.warning, result.Details)
			}
			if result.Unmatched != tt.unmatched {
				t.Errorf("expected unmatched=%v, got %v", tt.unmatched, result.Unmatched)
			}
		})
	}
}
