// Package geo provides great-circle distance helpers for route planning.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"cleanplan/core/types"
)

// DefaultAverageSpeedKmh is the assumed average travel speed between visits
const DefaultAverageSpeedKmh = 30.0

// DistanceKm returns the haversine distance between a and b in kilometers
func DistanceKm(a, b types.Coordinates) float64 {
	return geo.DistanceHaversine(toPoint(a), toPoint(b)) / 1000.0
}

// Centroid returns the arithmetic mean of the given coordinates.
// It returns false for an empty input.
func Centroid(points []types.Coordinates) (types.Coordinates, bool) {
	if len(points) == 0 {
		return types.Coordinates{}, false
	}

	var latSum, lngSum float64
	for _, p := range points {
		latSum += p.Lat
		lngSum += p.Lng
	}
	n := float64(len(points))
	return types.Coordinates{Lat: latSum / n, Lng: lngSum / n}, true
}

// TravelMinutes converts a distance into minutes at speedKmh.
// Non-positive speeds fall back to DefaultAverageSpeedKmh.
func TravelMinutes(distanceKm, speedKmh float64) float64 {
	if speedKmh <= 0 {
		speedKmh = DefaultAverageSpeedKmh
	}
	return distanceKm / speedKmh * 60
}

// orb points are [lng, lat]
func toPoint(c types.Coordinates) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}
