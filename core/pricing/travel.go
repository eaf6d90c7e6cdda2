package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cleanplan/core/types"
)

// Travel detail labels
const (
	TravelStandard = "standard"
	TravelExisting = "existing customer (free)"
)

// TravelFee is the outcome of travel fee resolution
type TravelFee struct {
	// Fee is the flat travel charge
	Fee decimal.Decimal

	// NetPrice is the category net price after any city surcharge
	NetPrice decimal.Decimal

	// Rule is the matched city rule, nil when none applied
	Rule *types.CityRule

	// Details carries travel_details and any warning or surcharge
	Details types.Details

	// Unmatched is set when a city was given but no rule matched
	Unmatched bool
}

// ResolveTravelFee applies the city travel-fee rules to a net price.
// Existing customers travel free regardless of city. A matching rule may
// attach a minimum-order warning and may raise the net price by a
// percentage surcharge; neither blocks the quote.
func ResolveTravelFee(req *types.QuoteRequest, rules []types.CityRule, net decimal.Decimal) TravelFee {
	result := TravelFee{
		Fee:      decimal.Zero,
		NetPrice: net,
		Details:  types.Details{types.DetailTravel: TravelStandard},
	}

	if req.ExistingCustomer {
		result.Details[types.DetailTravel] = TravelExisting
		return result
	}
	if types.NormalizeName(req.City) == "" {
		return result
	}

	rule := findCityRule(rules, req.City)
	if rule == nil {
		result.Unmatched = true
		return result
	}

	result.Rule = rule
	result.Fee = rule.TravelFee
	result.Details[types.DetailTravel] = fmt.Sprintf("flat rate for %s", rule.CityName)

	if rule.MinOrderValue != nil && rule.MinOrderValue.IsPositive() && net.LessThan(*rule.MinOrderValue) {
		result.Details[types.DetailWarning] = fmt.Sprintf("minimum order value (%s) not reached", rule.MinOrderValue.StringFixed(2))
	}

	if rule.SurchargePercent != nil && !rule.SurchargePercent.IsZero() {
		addOn := percentOf(net, *rule.SurchargePercent)
		result.NetPrice = net.Add(addOn)
		result.Details[types.DetailCitySurcharge] = addOn
	}

	return result
}

// findCityRule returns the first rule whose normalized name matches city
func findCityRule(rules []types.CityRule, city string) *types.CityRule {
	for i := range rules {
		if rules[i].Matches(city) {
			return &rules[i]
		}
	}
	return nil
}
