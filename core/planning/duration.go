package planning

import (
	"math"

	"cleanplan/core/geo"
	"cleanplan/core/types"
)

// Estimate is the time needed for an ordered visit list
type Estimate struct {
	DistanceKm     float64
	TravelMinutes  int
	ServiceMinutes int
	TotalMinutes   int
}

// EstimateDuration sums travel and service time along an ordered route.
// Travel distance chains consecutive positioned customers; a customer
// without coordinates is skipped and the chain resumes from the last known
// position. Missing service durations count as zero.
func EstimateDuration(ordered []types.Customer, speedKmh float64) Estimate {
	var est Estimate

	var prev *types.Coordinates
	for i := range ordered {
		c := &ordered[i]
		est.ServiceMinutes += c.ServiceMinutes()

		pos, ok := c.Coordinates()
		if !ok {
			continue
		}
		if prev != nil {
			est.DistanceKm += geo.DistanceKm(*prev, pos)
		}
		prev = &pos
	}

	est.TravelMinutes = int(math.Round(geo.TravelMinutes(est.DistanceKm, speedKmh)))
	est.TotalMinutes = est.ServiceMinutes + est.TravelMinutes
	return est
}
