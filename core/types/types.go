// Package types defines core domain types shared across all layers.
package types

import "strings"

// NormalizeName trims and case-folds a city or tag for comparison
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
