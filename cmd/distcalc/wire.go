package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/adapter/googlemaps"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/adapter/gsi"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/config"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/credential"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/distance"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/geocode"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/observability"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/resolver"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg            *config.Config
	logger         *slog.Logger
	metrics        *observability.Metrics
	credentials    *credential.Store
	gsiClient      *gsi.Client
	distanceClient *gsi.DistanceClient
	resolver       *resolver.Resolver
}

// newApp wires the components. Metrics register with reg; one-shot commands
// pass a private registry so repeated invocations in a process do not collide.
func newApp(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) *app {
	metrics := observability.NewMetrics(reg)
	store := credential.NewStore(cfg.GoogleMapsAPIKey)

	gsiClient := gsi.NewClient(cfg.GSISearchURL, cfg.GSIReverseURL, cfg.ProviderTimeout, logger)
	gmClient := googlemaps.NewClient(cfg.GoogleMapsGeocodeURL, cfg.ProviderTimeout, logger)
	distanceClient := gsi.NewDistanceClient(cfg.GSIDistanceURL, cfg.ProviderTimeout, logger)

	chain := geocode.NewChain(gsiClient, gmClient, store, logger, metrics)

	var strategies []distance.Strategy
	if cfg.GeometryLibraryEnabled {
		strategies = append(strategies, distance.NewGeometryLibrary())
	}
	if cfg.GSIDistanceEnabled {
		strategies = append(strategies, distance.NewNationalService(distanceClient))
	}
	calc := distance.NewCalculator(logger, metrics, strategies...)

	if _, ok := store.Credential(); ok {
		logger.Info("secondary geocoder enabled", "provider", gmClient.Name())
	} else {
		logger.Info("secondary geocoder disabled until an API key is set")
	}
	logger.Info("distance strategies configured", "methods", calc.Methods())

	return &app{
		cfg:            cfg,
		logger:         logger,
		metrics:        metrics,
		credentials:    store,
		gsiClient:      gsiClient,
		distanceClient: distanceClient,
		resolver:       resolver.New(chain, calc, logger, metrics),
	}
}
