package domain

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by the great-circle formula.
const EarthRadiusKm = 6371.0

// Method records which strategy produced a distance.
type Method int

const (
	MethodUnknown Method = iota
	MethodGeometryLibrary
	MethodNationalService
	MethodGreatCircle
)

func (m Method) String() string {
	switch m {
	case MethodGeometryLibrary:
		return "geometry_library"
	case MethodNationalService:
		return "national_service"
	case MethodGreatCircle:
		return "great_circle"
	default:
		return "unknown"
	}
}

func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	for _, c := range []Method{MethodGeometryLibrary, MethodNationalService, MethodGreatCircle} {
		if c.String() == string(text) {
			*m = c
			return nil
		}
	}
	return fmt.Errorf("unknown distance method %q", text)
}

// Distance is a rounded distance together with the strategy that produced it.
type Distance struct {
	Km     float64
	Meters float64
	Method Method
}

// NewDistance rounds a raw kilometer value. Meters are derived from the raw
// value, not from the rounded kilometers.
func NewDistance(rawKm float64, method Method) Distance {
	return Distance{
		Km:     math.Round(rawKm*1000) / 1000,
		Meters: math.Round(rawKm*1000*10) / 10,
		Method: method,
	}
}

// HaversineKm returns the great-circle distance between a and b in kilometers.
func HaversineKm(a, b Coordinate) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLon := degreesToRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(a.Lat))*math.Cos(degreesToRadians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h just past 1 for antipodal points.
	h = math.Min(h, 1)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceResult is the outcome of resolving the distance between two addresses.
type DistanceResult struct {
	AddressA   string     `json:"address1"`
	AddressB   string     `json:"address2"`
	CoordA     Coordinate `json:"coordinates1"`
	CoordB     Coordinate `json:"coordinates2"`
	DistanceKm float64    `json:"distance_km"`
	DistanceM  float64    `json:"distance_m"`
	Method     Method     `json:"method"`
}
