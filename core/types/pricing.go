// Package types - Pricing configuration types
package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// TierLimit is the inclusive upper bound of a pricing tier
type TierLimit int

// Unbounded marks a tier without an upper limit
const Unbounded TierLimit = math.MaxInt

// IsUnbounded reports whether the limit is open-ended
func (l TierLimit) IsUnbounded() bool {
	return l == Unbounded
}

// String returns the limit or "∞"
func (l TierLimit) String() string {
	if l.IsUnbounded() {
		return "∞"
	}
	return strconv.Itoa(int(l))
}

// MarshalJSON encodes Unbounded as null
func (l TierLimit) MarshalJSON() ([]byte, error) {
	if l.IsUnbounded() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(l))), nil
}

// UnmarshalJSON decodes null as Unbounded
func (l *TierLimit) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = Unbounded
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = TierLimit(n)
	return nil
}

// Tier maps an inclusive quantity range to a unit price
type Tier struct {
	// Min is the lower bound (inclusive)
	Min int `json:"min"`

	// Max is the upper bound (inclusive, Unbounded = no limit)
	Max TierLimit `json:"max"`

	// PricePerUnit is the unit price within this tier
	PricePerUnit decimal.Decimal `json:"price"`
}

// Contains reports whether quantity falls inside the tier
func (t Tier) Contains(quantity int) bool {
	return t.Min <= quantity && quantity <= int(t.Max)
}

// UnmarshalJSON treats a missing "max" as Unbounded
func (t *Tier) UnmarshalJSON(data []byte) error {
	type plain Tier
	decoded := plain{Max: Unbounded}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*t = Tier(decoded)
	return nil
}

// PhotovoltaicConfig prices solar module cleaning by volume tier
type PhotovoltaicConfig struct {
	Tiers                           []Tier          `json:"tiers"`
	DifficultAccessSurchargePercent decimal.Decimal `json:"surcharge_difficult_percent"`
	DirtySurchargeFixed             decimal.Decimal `json:"surcharge_dirty_fix"`
}

// StairwellConfig prices stairwell and common-area cleaning
type StairwellConfig struct {
	Method StairwellMethod `json:"method"`

	// units method
	PricePerUnitWeekly   decimal.Decimal `json:"price_per_unit_weekly"`
	PricePerUnitBiweekly decimal.Decimal `json:"price_per_unit_biweekly"`
	PricePerUnitMonthly  decimal.Decimal `json:"price_per_unit_monthly"`
	BasePriceObject      decimal.Decimal `json:"base_price_obj"`

	// area method
	AreaThreshold           decimal.Decimal `json:"threshold_sqm"`
	PriceAreaUpToThreshold  decimal.Decimal `json:"price_sqm_upto"`
	PriceAreaAfterThreshold decimal.Decimal `json:"price_sqm_after"`
	BasePriceArea           decimal.Decimal `json:"base_price_sqm"`

	// flat method
	FlatPrice   decimal.Decimal `json:"flat_price"`
	CellarPrice decimal.Decimal `json:"cellar_price"`
	WindowPrice decimal.Decimal `json:"window_price"`
}

// UnitPrice returns the per-unit price for a frequency band
func (c StairwellConfig) UnitPrice(band FrequencyBand) decimal.Decimal {
	switch band {
	case FrequencyWeekly:
		return c.PricePerUnitWeekly
	case FrequencyBiweekly:
		return c.PricePerUnitBiweekly
	default:
		return c.PricePerUnitMonthly
	}
}

// GlassConfig prices window and glass-surface cleaning
type GlassConfig struct {
	PriceWindowIn                   decimal.Decimal `json:"price_window_in"`
	PriceWindowOut                  decimal.Decimal `json:"price_window_out"`
	HeightSurcharge                 decimal.Decimal `json:"surcharge_height"`
	DifficultAccessSurchargePercent decimal.Decimal `json:"surcharge_difficult_percent"`
	PriceAreaIn                     decimal.Decimal `json:"price_sqm_in"`
	PriceAreaOut                    decimal.Decimal `json:"price_sqm_out"`
	FrameSurchargePercent           decimal.Decimal `json:"surcharge_frame_percent"`
}

// MaintenanceConfig prices maintenance cleaning by hour or area
type MaintenanceConfig struct {
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	PricePerArea decimal.Decimal `json:"price_sqm"`
}

// PricingConfiguration is the rate-table snapshot used for one quote.
// It is never mutated by the engine.
type PricingConfiguration struct {
	Photovoltaic PhotovoltaicConfig `json:"pv_config"`
	Stairwell    StairwellConfig    `json:"stairwell_config"`
	Glass        GlassConfig        `json:"glass_config"`
	Maintenance  MaintenanceConfig  `json:"maintenance_config"`
}

// DefaultPricingConfiguration returns an all-zero rate table with one
// tier covering [0, ∞) and a 100 sqm stairwell threshold.
func DefaultPricingConfiguration() *PricingConfiguration {
	return &PricingConfiguration{
		Photovoltaic: PhotovoltaicConfig{
			Tiers: []Tier{{Min: 0, Max: Unbounded, PricePerUnit: decimal.Zero}},
		},
		Stairwell: StairwellConfig{
			Method:        StairwellUnits,
			AreaThreshold: decimal.NewFromInt(100),
		},
	}
}

// CityRule is a city-keyed travel fee with optional order constraints
type CityRule struct {
	CityName         string           `json:"city_name"`
	TravelFee        decimal.Decimal  `json:"travel_fee"`
	MinOrderValue    *decimal.Decimal `json:"min_order_value,omitempty"`
	SurchargePercent *decimal.Decimal `json:"surcharge_percent,omitempty"`
}

// Matches reports whether the rule applies to city
func (r CityRule) Matches(city string) bool {
	return NormalizeName(r.CityName) == NormalizeName(city)
}
