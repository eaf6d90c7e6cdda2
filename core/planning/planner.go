package planning

import (
	"cleanplan/core/geo"
	"cleanplan/core/types"
)

// Planner builds visit plans. It holds only immutable settings and is safe
// for concurrent use.
type Planner struct {
	speedKmh float64
}

// NewPlanner creates a planner that assumes speedKmh between visits.
// Non-positive speeds fall back to geo.DefaultAverageSpeedKmh.
func NewPlanner(speedKmh float64) *Planner {
	if speedKmh <= 0 {
		speedKmh = geo.DefaultAverageSpeedKmh
	}
	return &Planner{speedKmh: speedKmh}
}

// SpeedKmh returns the assumed travel speed
func (p *Planner) SpeedKmh() float64 {
	return p.speedKmh
}

// Plan filters, orders and times the customers for req
func (p *Planner) Plan(customers []types.Customer, req *types.PlanRequest) *types.PlanResponse {
	var city, service string
	if req != nil {
		city, service = req.City, req.ServiceType
	}

	candidates := FilterCustomers(customers, city, service)
	ordered := OrderRoute(candidates)
	est := EstimateDuration(ordered, p.speedKmh)

	return &types.PlanResponse{
		OrderedCustomers:     ordered,
		TotalDurationMinutes: est.TotalMinutes,
		DistanceKm:           est.DistanceKm,
		TravelMinutes:        est.TravelMinutes,
		ServiceMinutes:       est.ServiceMinutes,
	}
}
