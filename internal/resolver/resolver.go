// Package resolver sequences geocoding and distance computation for a pair
// of addresses.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/observability"
)

const tracerName = "github.com/HorikawaTakumi/map-distance-calculator/internal/resolver"

// Calculator computes the distance between two coordinates. It never fails.
type Calculator interface {
	Compute(ctx context.Context, a, b domain.Coordinate) domain.Distance
}

// Resolver runs geocode A, geocode B, then compute, stopping at the first failure.
type Resolver struct {
	geocoder   domain.Geocoder
	calculator Calculator
	logger     *slog.Logger
	metrics    *observability.Metrics
	tracer     trace.Tracer
	ready      atomic.Bool
}

// New creates a Resolver. It reports not ready until SetReady(true).
func New(geocoder domain.Geocoder, calculator Calculator, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	return &Resolver{
		geocoder:   geocoder,
		calculator: calculator,
		logger:     logger,
		metrics:    metrics,
		tracer:     otel.Tracer(tracerName),
	}
}

// SetReady toggles readiness, typically once the listener is up and again
// when shutdown begins.
func (r *Resolver) SetReady(ready bool) {
	r.ready.Store(ready)
}

// CheckReadiness returns nil when the resolver is accepting requests.
func (r *Resolver) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("resolver is not accepting requests")
	}
	return nil
}

// ResolveDistance geocodes both addresses and computes the distance between
// them. Failures are returned as *domain.OrchestrationError naming the stage.
func (r *Resolver) ResolveDistance(ctx context.Context, addressA, addressB string) (domain.DistanceResult, error) {
	start := domain.Now()
	ctx, span := r.tracer.Start(ctx, "ResolveDistance")
	defer span.End()

	result, err := r.resolve(ctx, addressA, addressB)
	r.metrics.ResolveDuration.Observe(domain.Since(start).Seconds())

	if err != nil {
		var oerr *domain.OrchestrationError
		outcome := "error"
		if errors.As(err, &oerr) {
			outcome = string(oerr.Stage)
		}
		r.metrics.ResolveRequests.WithLabelValues(outcome).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		r.logger.Warn("distance resolution failed", "stage", outcome, "error", err)
		return domain.DistanceResult{}, err
	}

	r.metrics.ResolveRequests.WithLabelValues("success").Inc()
	span.SetAttributes(
		attribute.String("distance.method", result.Method.String()),
		attribute.Float64("distance.km", result.DistanceKm),
	)
	r.logger.Info("distance resolved",
		"address1", result.AddressA,
		"address2", result.AddressB,
		"distance_km", result.DistanceKm,
		"method", result.Method.String(),
	)
	return result, nil
}

func (r *Resolver) resolve(ctx context.Context, addressA, addressB string) (domain.DistanceResult, error) {
	coordA, err := r.geocode(ctx, domain.StageAddress1, addressA)
	if err != nil {
		return domain.DistanceResult{}, err
	}

	coordB, err := r.geocode(ctx, domain.StageAddress2, addressB)
	if err != nil {
		return domain.DistanceResult{}, err
	}

	if err := errors.Join(coordA.Validate(), coordB.Validate()); err != nil {
		return domain.DistanceResult{}, &domain.OrchestrationError{Stage: domain.StageDistance, Err: err}
	}

	ctx, span := r.tracer.Start(ctx, "compute distance")
	d := r.calculator.Compute(ctx, coordA, coordB)
	span.SetAttributes(attribute.String("distance.method", d.Method.String()))
	span.End()

	return domain.DistanceResult{
		AddressA:   addressA,
		AddressB:   addressB,
		CoordA:     coordA,
		CoordB:     coordB,
		DistanceKm: d.Km,
		DistanceM:  d.Meters,
		Method:     d.Method,
	}, nil
}

func (r *Resolver) geocode(ctx context.Context, stage domain.Stage, address string) (domain.Coordinate, error) {
	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("geocode %s", stage))
	defer span.End()

	coord, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocode failed")
		return domain.Coordinate{}, &domain.OrchestrationError{Stage: stage, Err: err}
	}
	return coord, nil
}
