// Package pricing turns service requests and rate tables into priced quotes.
// Everything in this package is a pure function of its inputs.
package pricing

import (
	"github.com/shopspring/decimal"

	"cleanplan/core/types"
)

// ResolveTier returns the unit price of the first tier, in list order,
// whose inclusive range contains quantity. When no tier matches the
// unit price is zero and the returned tier is nil.
func ResolveTier(tiers []types.Tier, quantity int) (decimal.Decimal, *types.Tier) {
	if quantity < 0 {
		return decimal.Zero, nil
	}
	for i := range tiers {
		if tiers[i].Contains(quantity) {
			return tiers[i].PricePerUnit, &tiers[i]
		}
	}
	return decimal.Zero, nil
}

// percentOf returns amount × percent / 100
func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(decimal.NewFromInt(100))
}

// nonNegative clamps malformed negative quantities to zero
func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func nonNegativeDecimal(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
