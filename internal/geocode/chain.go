// Package geocode resolves addresses through an ordered chain of providers.
package geocode

import (
	"context"
	"errors"
	"log/slog"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/observability"
)

// Provider geocodes without credentials.
type Provider interface {
	Name() domain.Provider
	Geocode(ctx context.Context, address string) (domain.Coordinate, error)
}

// KeyedProvider geocodes with an API key supplied per call.
type KeyedProvider interface {
	Name() domain.Provider
	Geocode(ctx context.Context, key, address string) (domain.Coordinate, error)
}

// Chain tries the primary provider, then the secondary when the primary fails
// and a usable credential is available. It implements domain.Geocoder.
type Chain struct {
	primary     Provider
	secondary   KeyedProvider
	credentials domain.CredentialSource
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewChain creates a Chain. secondary and credentials may be nil, which
// disables the fallback.
func NewChain(primary Provider, secondary KeyedProvider, credentials domain.CredentialSource, logger *slog.Logger, metrics *observability.Metrics) *Chain {
	return &Chain{
		primary:     primary,
		secondary:   secondary,
		credentials: credentials,
		logger:      logger,
		metrics:     metrics,
	}
}

// Geocode resolves address to a coordinate. When every attempted provider
// fails it returns a *domain.GeocodeError listing each attempt.
func (c *Chain) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	normalized, err := domain.NormalizeAddress(address)
	if err != nil {
		return domain.Coordinate{}, err
	}

	coord, perr := c.attempt(ctx, c.primary.Name(), func(ctx context.Context) (domain.Coordinate, error) {
		return c.primary.Geocode(ctx, normalized)
	})
	if perr == nil {
		return coord, nil
	}

	gerr := &domain.GeocodeError{Address: normalized, Attempts: []*domain.ProviderError{perr}}

	key, ok := c.credential()
	if !ok {
		c.logger.Debug("secondary geocoder unavailable", "address", normalized, "primary_error", perr)
		return domain.Coordinate{}, gerr
	}
	if perr.Provider == c.secondary.Name() {
		// The failure already came from the secondary's service; asking it again would repeat it.
		return domain.Coordinate{}, gerr
	}

	c.logger.Warn("primary geocoder failed, trying secondary",
		"address", normalized,
		"primary", perr.Provider,
		"secondary", c.secondary.Name(),
		"error", perr,
	)
	c.metrics.GeocodeFallbacks.Inc()

	coord, perr = c.attempt(ctx, c.secondary.Name(), func(ctx context.Context) (domain.Coordinate, error) {
		return c.secondary.Geocode(ctx, key, normalized)
	})
	if perr == nil {
		return coord, nil
	}

	c.logger.Warn("secondary geocoder failed", "address", normalized, "provider", perr.Provider, "error", perr)
	gerr.Attempts = append(gerr.Attempts, perr)
	return domain.Coordinate{}, gerr
}

// credential reports the key to use with the secondary provider. The gauge
// tracks whether the fallback is currently possible.
func (c *Chain) credential() (string, bool) {
	if c.secondary == nil || c.credentials == nil {
		c.metrics.SecondaryEnabled.Set(0)
		return "", false
	}
	key, ok := c.credentials.Credential()
	if ok {
		c.metrics.SecondaryEnabled.Set(1)
	} else {
		c.metrics.SecondaryEnabled.Set(0)
	}
	return key, ok
}

// attempt runs one provider call with timing and outcome accounting.
func (c *Chain) attempt(ctx context.Context, name domain.Provider, call func(context.Context) (domain.Coordinate, error)) (domain.Coordinate, *domain.ProviderError) {
	start := domain.Now()
	coord, err := call(ctx)
	c.metrics.GeocodeAPIDuration.WithLabelValues(string(name)).Observe(domain.Since(start).Seconds())

	if err == nil {
		c.metrics.GeocodeRequests.WithLabelValues(string(name), "success").Inc()
		return coord, nil
	}

	outcome := "error"
	if errors.Is(err, domain.ErrNotFound) {
		outcome = "not_found"
	}
	c.metrics.GeocodeRequests.WithLabelValues(string(name), outcome).Inc()

	return domain.Coordinate{}, asProviderError(name, err)
}

// asProviderError attributes an arbitrary error to the provider that raised it.
func asProviderError(name domain.Provider, err error) *domain.ProviderError {
	var perr *domain.ProviderError
	if errors.As(err, &perr) {
		return perr
	}
	return &domain.ProviderError{
		Provider: name,
		Kind:     domain.KindUnknown,
		Reason:   "geocoding failed",
		Err:      err,
	}
}
