// Package types - Service categories and calculation methods
package types

import (
	"fmt"
	"strings"
)

// Category identifies a service line with its own pricing rules
type Category string

const (
	CategoryPhotovoltaic Category = "photovoltaic"
	CategoryStairwell    Category = "stairwell"
	CategoryGlass        Category = "glass"
	CategoryMaintenance  Category = "maintenance"
)

// Categories lists every known category in display order
var Categories = []Category{
	CategoryPhotovoltaic,
	CategoryStairwell,
	CategoryGlass,
	CategoryMaintenance,
}

var categoryAliases = map[string]Category{
	"pv":           CategoryPhotovoltaic,
	"photovoltaic": CategoryPhotovoltaic,
	"stairwell":    CategoryStairwell,
	"glass":        CategoryGlass,
	"maintenance":  CategoryMaintenance,
}

// ParseCategory normalizes a category name.
// Unknown names are returned verbatim so the engine can report them.
func ParseCategory(s string) Category {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c
	}
	return Category(s)
}

// Known reports whether c is one of the four service categories
func (c Category) Known() bool {
	switch c {
	case CategoryPhotovoltaic, CategoryStairwell, CategoryGlass, CategoryMaintenance:
		return true
	}
	return false
}

// String returns the string representation
func (c Category) String() string {
	return string(c)
}

// UnmarshalText accepts aliases such as "pv"
func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}

// StairwellMethod selects how stairwell cleaning is priced
type StairwellMethod string

const (
	// StairwellUnits prices per residential unit by cleaning frequency
	StairwellUnits StairwellMethod = "units"

	// StairwellAreaBased prices per square meter with a threshold
	StairwellAreaBased StairwellMethod = "sqm"

	// StairwellFlat uses a flat price plus add-ons
	StairwellFlat StairwellMethod = "flat"
)

// ParseStairwellMethod parses a stairwell method. Empty means units.
func ParseStairwellMethod(s string) (StairwellMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "units", "unit":
		return StairwellUnits, nil
	case "sqm", "area", "areabased", "area_based":
		return StairwellAreaBased, nil
	case "flat":
		return StairwellFlat, nil
	}
	return "", fmt.Errorf("unknown stairwell method %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *StairwellMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseStairwellMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// GlassMethod selects how glass cleaning is priced
type GlassMethod string

const (
	// GlassPerWindow prices by window count
	GlassPerWindow GlassMethod = "window"

	// GlassPerArea prices by glass area
	GlassPerArea GlassMethod = "sqm"
)

// ParseGlassMethod parses a glass method. Empty means per-window.
func ParseGlassMethod(s string) (GlassMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "window", "windows", "per_window":
		return GlassPerWindow, nil
	case "sqm", "area", "per_area":
		return GlassPerArea, nil
	}
	return "", fmt.Errorf("unknown glass calculation method %q", s)
}

// OrDefault returns the method, falling back to per-window
func (m GlassMethod) OrDefault() GlassMethod {
	if m == "" {
		return GlassPerWindow
	}
	return m
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *GlassMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseGlassMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// FrequencyBand is the stairwell price band chosen from cleanings per month
type FrequencyBand string

const (
	FrequencyWeekly   FrequencyBand = "weekly"
	FrequencyBiweekly FrequencyBand = "biweekly"
	FrequencyMonthly  FrequencyBand = "monthly"
)

// DefaultFrequencyPerMonth is assumed when a request carries no frequency
const DefaultFrequencyPerMonth = 4.0

// BandForFrequency maps cleanings per month to a price band
func BandForFrequency(perMonth float64) FrequencyBand {
	switch {
	case perMonth >= 4:
		return FrequencyWeekly
	case perMonth >= 2:
		return FrequencyBiweekly
	default:
		return FrequencyMonthly
	}
}
