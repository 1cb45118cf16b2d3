package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "distcalc"

// Metrics holds the Prometheus counters, histograms, and gauges for distance resolution.
type Metrics struct {
	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec   // labels: provider={gsi,google_maps}, outcome={success,not_found,error}
	GeocodeFallbacks   prometheus.Counter       // secondary provider consulted after a primary failure
	GeocodeAPIDuration *prometheus.HistogramVec // labels: provider
	SecondaryEnabled   prometheus.Gauge

	// Distance metrics.
	DistanceComputations     *prometheus.CounterVec // labels: method
	DistanceStrategyFailures *prometheus.CounterVec // labels: method

	// Orchestration metrics.
	ResolveRequests *prometheus.CounterVec // labels: outcome={success,address1,address2,distance}
	ResolveDuration prometheus.Histogram
}

// NewMetrics creates all metrics and registers them with reg. The serve
// command passes prometheus.DefaultRegisterer so /metrics exposes them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()

	reg.MustRegister(
		m.GeocodeRequests,
		m.GeocodeFallbacks,
		m.GeocodeAPIDuration,
		m.SecondaryEnabled,
		m.DistanceComputations,
		m.DistanceStrategyFailures,
		m.ResolveRequests,
		m.ResolveDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		GeocodeFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_fallbacks_total",
			Help:      "Times the secondary geocoder was consulted after a primary failure.",
		}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Geocoding provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		SecondaryEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_secondary_enabled",
			Help:      "1 when a valid secondary provider credential is configured, 0 otherwise.",
		}),
		DistanceComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "distance_computations_total",
			Help:      "Distances computed, by the strategy that produced them.",
		}, []string{"method"}),
		DistanceStrategyFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "distance_strategy_failures_total",
			Help:      "Distance strategy attempts that failed and fell through.",
		}, []string{"method"}),
		ResolveRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolve_requests_total",
			Help:      "Distance resolutions by outcome (success or failing stage).",
		}, []string{"outcome"}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Duration of a complete geocode-geocode-compute resolution.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}
