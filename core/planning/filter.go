// Package planning orders a day's customer visits and estimates the time
// they take. The ordering is a greedy nearest-neighbor heuristic, not an
// optimal tour, and is intended for tens of stops per run.
package planning

import "cleanplan/core/types"

// FilterCustomers keeps active customers that match the optional city and
// service type. Matching ignores case and surrounding whitespace. The
// relative input order is preserved.
func FilterCustomers(customers []types.Customer, city, serviceType string) []types.Customer {
	wantCity := types.NormalizeName(city) != ""
	wantService := types.NormalizeName(serviceType) != ""

	out := make([]types.Customer, 0, len(customers))
	for i := range customers {
		c := &customers[i]
		if !c.IsActive {
			continue
		}
		if wantCity && !c.InCity(city) {
			continue
		}
		if wantService && !c.HasServiceTag(serviceType) {
			continue
		}
		out = append(out, *c)
	}
	return out
}
