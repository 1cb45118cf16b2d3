// Package distance computes straight-line distances through an ordered list
// of strategies, ending with the great-circle formula.
package distance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/observability"
)

// Calculator tries each strategy in order and returns the first usable value.
type Calculator struct {
	strategies []Strategy
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewCalculator creates a Calculator. GreatCircle is appended after the
// given strategies, so Compute always has an answer.
func NewCalculator(logger *slog.Logger, metrics *observability.Metrics, strategies ...Strategy) *Calculator {
	chain := make([]Strategy, 0, len(strategies)+1)
	for _, s := range strategies {
		if s != nil {
			chain = append(chain, s)
		}
	}
	chain = append(chain, GreatCircle{})

	return &Calculator{
		strategies: chain,
		logger:     logger,
		metrics:    metrics,
	}
}

// Methods lists the configured strategies in the order they are tried.
func (c *Calculator) Methods() []domain.Method {
	out := make([]domain.Method, len(c.strategies))
	for i, s := range c.strategies {
		out[i] = s.Method()
	}
	return out
}

// Compute returns the rounded distance between a and b. It never fails.
func (c *Calculator) Compute(ctx context.Context, a, b domain.Coordinate) domain.Distance {
	for _, s := range c.strategies {
		km, err := s.TryCompute(ctx, a, b)
		if err == nil {
			err = checkKm(km)
		}
		if errors.Is(err, domain.ErrStrategyUnavailable) {
			continue
		}
		if err != nil {
			c.logger.Warn("distance strategy failed, falling through",
				"method", s.Method().String(),
				"error", err,
			)
			c.metrics.DistanceStrategyFailures.WithLabelValues(s.Method().String()).Inc()
			continue
		}

		c.metrics.DistanceComputations.WithLabelValues(s.Method().String()).Inc()
		return domain.NewDistance(km, s.Method())
	}

	// Only reachable if GreatCircle itself produced a non-finite value.
	km := domain.HaversineKm(a, b)
	c.metrics.DistanceComputations.WithLabelValues(domain.MethodGreatCircle.String()).Inc()
	return domain.NewDistance(km, domain.MethodGreatCircle)
}

func checkKm(km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return fmt.Errorf("invalid distance %v km", km)
	}
	return nil
}
