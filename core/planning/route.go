package planning

import (
	"cleanplan/core/geo"
	"cleanplan/core/types"
)

// OrderRoute sequences customers with a nearest-neighbor heuristic.
//
// The tour starts at the customer closest to the centroid of all known
// positions and repeatedly moves to the closest unvisited customer. Ties go
// to the customer that appears first in the input. Customers without
// coordinates follow in their original relative order. With at most one
// customer, or fewer than two positioned customers, the input order is
// returned unchanged.
func OrderRoute(customers []types.Customer) []types.Customer {
	if len(customers) <= 1 {
		return customers
	}

	positioned := make([]int, 0, len(customers))
	unpositioned := make([]int, 0)
	coords := make([]types.Coordinates, len(customers))
	for i := range customers {
		if c, ok := customers[i].Coordinates(); ok {
			coords[i] = c
			positioned = append(positioned, i)
		} else {
			unpositioned = append(unpositioned, i)
		}
	}
	if len(positioned) < 2 {
		return customers
	}

	known := make([]types.Coordinates, len(positioned))
	for k, i := range positioned {
		known[k] = coords[i]
	}
	centroid, _ := geo.Centroid(known)

	current := nearest(centroid, positioned, coords)
	visited := make([]bool, len(customers))
	order := make([]int, 0, len(customers))

	for {
		visited[current] = true
		order = append(order, current)
		if len(order) == len(positioned) {
			break
		}

		remaining := make([]int, 0, len(positioned)-len(order))
		for _, i := range positioned {
			if !visited[i] {
				remaining = append(remaining, i)
			}
		}
		current = nearest(coords[current], remaining, coords)
	}

	order = append(order, unpositioned...)

	out := make([]types.Customer, 0, len(customers))
	for _, i := range order {
		out = append(out, customers[i])
	}
	return out
}

// nearest returns the candidate index closest to from; the first minimum wins
func nearest(from types.Coordinates, candidates []int, coords []types.Coordinates) int {
	best := candidates[0]
	bestDist := geo.DistanceKm(from, coords[best])
	for _, i := range candidates[1:] {
		if d := geo.DistanceKm(from, coords[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
