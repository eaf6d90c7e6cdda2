package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"cleanplan/core/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestResolveTier(t *testing.T) {
	tiers := []types.Tier{
		{Min: 0, Max: 10, PricePerUnit: dec("10.0")},
		{Min: 11, Max: types.Unbounded, PricePerUnit: dec("8.0")},
	}
	gapped := []types.Tier{
		{Min: 0, Max: 10, PricePerUnit: dec("10.0")},
		{Min: 20, Max: types.Unbounded, PricePerUnit: dec("8.0")},
	}

	tests := []struct {
		name      string
		tiers     []types.Tier
		quantity  int
		expected  string
		wantMatch bool
	}{
		{name: "first tier", tiers: tiers, quantity: 5, expected: "10", wantMatch: true},
		{name: "lower bound inclusive", tiers: tiers, quantity: 0, expected: "10", wantMatch: true},
		{name: "upper bound inclusive", tiers: tiers, quantity: 10, expected: "10", wantMatch: true},
		{name: "unbounded tier", tiers: tiers, quantity: 50, expected: "8", wantMatch: true},
		{name: "negative quantity", tiers: tiers, quantity: -1, expected: "0", wantMatch: false},
		{name: "quantity in gap", tiers: gapped, quantity: 15, expected: "0", wantMatch: false},
		{name: "no tiers", tiers: nil, quantity: 3, expected: "0", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, tier := ResolveTier(tt.tiers, tt.quantity)
			if !price.Equal(dec(tt.expected)) {
				t.Errorf("expected unit price %s, got %s", tt.expected, price)
			}
			if (tier != nil) != tt.wantMatch {
				t.Errorf("expected match=%v, got tier %v", tt.wantMatch, tier)
			}
		})
	}
}

func TestResolveTierFirstMatchWins(t *testing.T) {
	overlapping := []types.Tier{
		{Min: 0, Max: 20, PricePerUnit: dec("9")},
		{Min: 10, Max: types.Unbounded, PricePerUnit: dec("7")},
	}

	price, _ := ResolveTier(overlapping, 15)
	if !price.Equal(dec("9")) {
		t.Errorf("expected first matching tier price 9, got %s", price)
	}
}
