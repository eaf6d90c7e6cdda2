// Package types - Quote request and response types
package types

import "github.com/shopspring/decimal"

// QuoteRequest is a service request to be priced.
// Category-specific fields not relevant to the category are ignored;
// absent or negative quantities count as zero.
type QuoteRequest struct {
	Category         Category `json:"service_category" validate:"required"`
	City             string   `json:"city,omitempty"`
	ExistingCustomer bool     `json:"is_existing_customer"`

	// photovoltaic
	ModuleCount     int  `json:"pv_modules_count,omitempty"`
	DifficultAccess bool `json:"is_difficult_access"`
	VeryDirty       bool `json:"is_very_dirty"`

	// stairwell
	Units             int             `json:"units,omitempty"`
	Floors            int             `json:"floors,omitempty"`
	FrequencyPerMonth float64         `json:"frequency_per_month,omitempty"`
	Area              decimal.Decimal `json:"sqm"`
	HasCellar         bool            `json:"has_cellar"`
	WindowsCount      int             `json:"windows_count,omitempty"`

	// glass
	GlassMethod          GlassMethod     `json:"calculation_method,omitempty"`
	GlassAreaIn          decimal.Decimal `json:"glass_sqm_in"`
	GlassAreaOut         decimal.Decimal `json:"glass_sqm_out"`
	GlassCountIn         int             `json:"glass_count_in,omitempty"`
	GlassCountOut        int             `json:"glass_count_out,omitempty"`
	GlassHeightSurcharge bool            `json:"glass_height_surcharge"`
	GlassDifficultAccess bool            `json:"glass_difficult_access"`
	FrameCleaning        bool            `json:"frame_cleaning"`

	// maintenance
	MaintenanceArea decimal.Decimal `json:"maintenance_sqm"`
	HoursEstimated  decimal.Decimal `json:"hours_estimated"`
}

// Details records which branch, tier, and method produced a price.
// It is informational only and never drives control flow.
type Details map[string]interface{}

// Detail keys shared by the engine and its consumers
const (
	DetailError          = "error"
	DetailWarning        = "warning"
	DetailConfigWarnings = "config_warnings"
	DetailTravel         = "travel_details"
	DetailCitySurcharge  = "city_surcharge"
	DetailMethod         = "method"
)

// Merge copies other into d, overwriting existing keys
func (d Details) Merge(other Details) {
	for k, v := range other {
		d[k] = v
	}
}

// QuoteResponse is a priced quote. Each amount is rounded to two
// decimals on its own; TotalPrice is not re-derived from the rounded parts.
type QuoteResponse struct {
	Category   Category        `json:"service_category"`
	NetPrice   decimal.Decimal `json:"net_price"`
	TravelFee  decimal.Decimal `json:"travel_fee"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Details    Details         `json:"details"`
}
