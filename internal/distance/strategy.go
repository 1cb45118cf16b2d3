package distance

import (
	"context"

	"github.com/umahmood/haversine"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
)

// Strategy is one way of computing a distance in kilometers. Returning
// domain.ErrStrategyUnavailable means the strategy is not configured and
// should be skipped without complaint.
type Strategy interface {
	Method() domain.Method
	TryCompute(ctx context.Context, a, b domain.Coordinate) (float64, error)
}

// GeometryLibrary computes spherical distances with a third-party geometry
// package. A nil *GeometryLibrary is unavailable.
type GeometryLibrary struct {
	distance func(p, q haversine.Coord) (mi, km float64)
}

// NewGeometryLibrary returns the strategy backed by github.com/umahmood/haversine.
func NewGeometryLibrary() *GeometryLibrary {
	return &GeometryLibrary{distance: haversine.Distance}
}

func (g *GeometryLibrary) Method() domain.Method { return domain.MethodGeometryLibrary }

func (g *GeometryLibrary) TryCompute(_ context.Context, a, b domain.Coordinate) (float64, error) {
	if g == nil || g.distance == nil {
		return 0, domain.ErrStrategyUnavailable
	}
	_, km := g.distance(haversine.Coord{Lat: a.Lat, Lon: a.Lon}, haversine.Coord{Lat: b.Lat, Lon: b.Lon})
	return km, nil
}

// DistanceService is a remote distance calculation service.
type DistanceService interface {
	DistanceKm(ctx context.Context, a, b domain.Coordinate) (float64, error)
}

// NationalService delegates to the national surveying calculation service.
type NationalService struct {
	service DistanceService
}

// NewNationalService wraps svc. A nil svc yields an unavailable strategy.
func NewNationalService(svc DistanceService) *NationalService {
	return &NationalService{service: svc}
}

func (n *NationalService) Method() domain.Method { return domain.MethodNationalService }

func (n *NationalService) TryCompute(ctx context.Context, a, b domain.Coordinate) (float64, error) {
	if n == nil || n.service == nil {
		return 0, domain.ErrStrategyUnavailable
	}
	return n.service.DistanceKm(ctx, a, b)
}

// GreatCircle is the haversine formula on a sphere of radius
// domain.EarthRadiusKm. It always succeeds.
type GreatCircle struct{}

func (GreatCircle) Method() domain.Method { return domain.MethodGreatCircle }

func (GreatCircle) TryCompute(_ context.Context, a, b domain.Coordinate) (float64, error) {
	return domain.HaversineKm(a, b), nil
}
