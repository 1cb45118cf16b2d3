package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
)

// DistanceResolver geocodes two addresses and measures between them.
type DistanceResolver interface {
	ResolveDistance(ctx context.Context, addressA, addressB string) (domain.DistanceResult, error)
}

// ReverseGeocoder returns the provider's raw response for a coordinate.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, coord domain.Coordinate) (json.RawMessage, error)
}

// DistanceProxy returns the national distance service's raw response.
type DistanceProxy interface {
	Calculate(ctx context.Context, a, b domain.Coordinate) (json.RawMessage, error)
}

// CredentialStore manages the secondary provider's API key.
type CredentialStore interface {
	Get() string
	Set(key string)
	Clear()
	Credential() (string, bool)
}

// Services bundles the collaborators behind the API routes.
type Services struct {
	Resolver    DistanceResolver
	Reverse     ReverseGeocoder
	Proxy       DistanceProxy
	Credentials CredentialStore
}

// Server exposes the distance API alongside health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	svc        Services
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, svc Services, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			// A resolution may call up to four providers plus the distance service.
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:    svc,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/distance", s.handleDistance)
	mux.HandleFunc("GET /api/reverse", s.handleReverse)
	mux.HandleFunc("GET /api/proxy/gsi-distance", s.handleDistanceProxy)
	mux.HandleFunc("GET /api/credential", s.handleCredentialStatus)
	mux.HandleFunc("PUT /api/credential", s.handleCredentialSet)
	mux.HandleFunc("DELETE /api/credential", s.handleCredentialClear)

	s.httpServer.Handler = otelhttp.NewHandler(requestID(mux, logger), "distcalc")

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
