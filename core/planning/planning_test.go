package planning

import (
	"math"
	"reflect"
	"testing"

	"cleanplan/core/geo"
	"cleanplan/core/types"
)

func at(id string, lat, lng float64) types.Customer {
	return types.Customer{ID: id, Lat: &lat, Lng: &lng, IsActive: true}
}

func unplaced(id string) types.Customer {
	return types.Customer{ID: id, IsActive: true}
}

func withMinutes(c types.Customer, minutes int) types.Customer {
	c.DurationMinutes = &minutes
	return c
}

func ids(customers []types.Customer) []string {
	out := make([]string, len(customers))
	for i, c := range customers {
		out[i] = c.ID
	}
	return out
}

func TestFilterCustomers(t *testing.T) {
	customers := []types.Customer{
		{ID: "a", City: "Köln", ServiceTags: []string{" PV ", "glass"}, IsActive: true},
		{ID: "b", City: " köln ", ServiceTags: []string{"stairwell"}, IsActive: true},
		{ID: "c", City: "KÖLN", ServiceTags: []string{"pv"}, IsActive: false},
		{ID: "d", City: "Bonn", ServiceTags: []string{"pv"}, IsActive: true},
		{ID: "e", City: "Köln", IsActive: true},
	}

	tests := []struct {
		name     string
		city     string
		service  string
		expected []string
	}{
		{name: "no filters keeps active", expected: []string{"a", "b", "d", "e"}},
		{name: "city ignores case and whitespace", city: " Köln ", expected: []string{"a", "b", "e"}},
		{name: "service tag", service: "pv", expected: []string{"a", "d"}},
		{name: "city and service", city: "köln", service: " Pv", expected: []string{"a"}},
		{name: "no match", city: "Aachen", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterCustomers(customers, tt.city, tt.service))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestOrderRoute(t *testing.T) {
	input := []types.Customer{
		at("d", 50, 7.5),
		at("a", 50, 7.0),
		unplaced("x"),
		at("c", 50, 7.2),
		unplaced("y"),
		at("b", 50, 7.1),
	}

	got := ids(OrderRoute(input))
	expected := []string{"c", "b", "a", "d", "x", "y"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	again := ids(OrderRoute(input))
	if !reflect.DeepEqual(got, again) {
		t.Errorf("ordering is not deterministic: %v vs %v", got, again)
	}
}

func TestOrderRouteUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		input []types.Customer
	}{
		{name: "empty", input: nil},
		{name: "single customer", input: []types.Customer{at("a", 50, 7)}},
		{name: "one positioned customer", input: []types.Customer{unplaced("x"), at("a", 50, 7), unplaced("y")}},
		{name: "no positioned customers", input: []types.Customer{unplaced("x"), unplaced("y")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(OrderRoute(tt.input))
			if !reflect.DeepEqual(got, ids(tt.input)) {
				t.Errorf("expected input order %v, got %v", ids(tt.input), got)
			}
		})
	}
}

func TestOrderRouteUnplacedLast(t *testing.T) {
	input := []types.Customer{
		unplaced("z"),
		at("a", 51.0, 6.9),
		unplaced("y"),
		at("b", 50.9, 7.0),
		at("c", 50.7, 7.1),
		unplaced("x"),
	}

	got := ids(OrderRoute(input))
	tail := got[len(got)-3:]
	if !reflect.DeepEqual(tail, []string{"z", "y", "x"}) {
		t.Errorf("expected unplaced customers last in input order, got %v", got)
	}
}

func TestEstimateDuration(t *testing.T) {
	t.Run("collocated customers add no travel", func(t *testing.T) {
		ordered := []types.Customer{
			withMinutes(at("a", 50.9, 6.9), 30),
			withMinutes(at("b", 50.9, 6.9), 45),
			at("c", 50.9, 6.9),
		}
		est := EstimateDuration(ordered, geo.DefaultAverageSpeedKmh)
		if est.TravelMinutes != 0 {
			t.Errorf("expected zero travel minutes, got %d", est.TravelMinutes)
		}
		if est.TotalMinutes != 75 {
			t.Errorf("expected 75 minutes, got %d", est.TotalMinutes)
		}
	})

	t.Run("missing coordinates do not break the chain", func(t *testing.T) {
		a := at("a", 50, 7.0)
		b := at("b", 50, 7.1)
		ordered := []types.Customer{a, withMinutes(unplaced("x"), 60), b}

		est := EstimateDuration(ordered, 30)

		wantKm := geo.DistanceKm(types.Coordinates{Lat: 50, Lng: 7.0}, types.Coordinates{Lat: 50, Lng: 7.1})
		if math.Abs(est.DistanceKm-wantKm) > 1e-9 {
			t.Errorf("expected %.4f km, got %.4f", wantKm, est.DistanceKm)
		}
		wantTravel := int(math.Round(wantKm / 30 * 60))
		if est.TotalMinutes != 60+wantTravel {
			t.Errorf("expected %d minutes, got %d", 60+wantTravel, est.TotalMinutes)
		}
	})

	t.Run("empty route", func(t *testing.T) {
		if est := EstimateDuration(nil, 30); est.TotalMinutes != 0 {
			t.Errorf("expected zero, got %d", est.TotalMinutes)
		}
	})
}

func TestPlannerPlan(t *testing.T) {
	inactive := withMinutes(at("gone", 50, 7.3), 90)
	inactive.IsActive = false

	customers := []types.Customer{
		withMinutes(at("far", 50, 7.5), 30),
		withMinutes(at("west", 50, 7.0), 30),
		inactive,
		withMinutes(at("mid", 50, 7.2), 30),
	}
	for i := range customers {
		customers[i].City = "Köln"
	}

	resp := NewPlanner(0).Plan(customers, &types.PlanRequest{City: "köln"})

	got := ids(resp.OrderedCustomers)
	expected := []string{"mid", "west", "far"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
	if resp.ServiceMinutes != 90 {
		t.Errorf("expected 90 service minutes, got %d", resp.ServiceMinutes)
	}
	if resp.TotalDurationMinutes != resp.ServiceMinutes+resp.TravelMinutes {
		t.Errorf("total %d does not add up", resp.TotalDurationMinutes)
	}
	if resp.TravelMinutes <= 0 {
		t.Errorf("expected positive travel time, got %d", resp.TravelMinutes)
	}
}
