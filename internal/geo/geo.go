// Package geo holds the coordinate helpers used for hatchery site distances.
package geo

import (
	"fmt"
	"math"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by Haversine
const EarthRadiusKm = 6371.0

// Point is a WGS84 latitude/longitude pair in degrees
type Point struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// FromDomain converts a stored coordinate
func FromDomain(p domain.GeoPoint) Point {
	return Point{Latitude: p.Latitude, Longitude: p.Longitude}
}

// Domain converts back to the stored coordinate type
func (p Point) Domain() domain.GeoPoint {
	return domain.GeoPoint{Latitude: p.Latitude, Longitude: p.Longitude}
}

// Validate checks the coordinate ranges
func (p Point) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return fmt.Errorf("%w: coordinate is NaN", domain.ErrInvalidLocation)
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %.6f out of range", domain.ErrInvalidLocation, p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %.6f out of range", domain.ErrInvalidLocation, p.Longitude)
	}
	return nil
}

// Haversine returns the great-circle distance between a and b in kilometres
func Haversine(a, b Point) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceKm returns the distance between two optional stored points, or nil
// when either is missing
func DistanceKm(a, b *domain.GeoPoint) *float64 {
	if a == nil || b == nil {
		return nil
	}
	d := math.Round(Haversine(FromDomain(*a), FromDomain(*b))*1000) / 1000
	return &d
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
