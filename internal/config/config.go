package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Placeholder mirrors domain.PlaceholderCredential; config cannot import domain.
const placeholderAPIKey = "YOUR_API_KEY"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Provider endpoints and transport.
	ProviderTimeout    time.Duration
	GSISearchURL       string
	GSIReverseURL      string
	GSIDistanceURL     string
	GSIDistanceEnabled bool

	// Google Maps configuration.
	GoogleMapsAPIKey     string
	GoogleMapsGeocodeURL string

	GeometryLibraryEnabled bool

	OTLPEndpoint string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	providerTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("PROVIDER_TIMEOUT", "10s"))
	if err != nil || providerTimeout <= 0 {
		return nil, errors.New("invalid PROVIDER_TIMEOUT")
	}

	gsiDistanceEnabled, err := parseBool("GSI_DISTANCE_ENABLED", true)
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	geometryEnabled, err := parseBool("GEOMETRY_LIBRARY_ENABLED", apiKey != "" && apiKey != placeholderAPIKey)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ProviderTimeout:    providerTimeout,
		GSISearchURL:       sharedcfg.EnvOrDefault("GSI_SEARCH_URL", "https://msearch.gsi.go.jp/address-search/AddressSearch"),
		GSIReverseURL:      sharedcfg.EnvOrDefault("GSI_REVERSE_URL", "https://mreversegeocoder.gsi.go.jp/reverse-geocoder/LonLatToAddress"),
		GSIDistanceURL:     sharedcfg.EnvOrDefault("GSI_DISTANCE_URL", "https://vldb.gsi.go.jp/sokuchi/surveycalc/surveycalc/bl2st_calc.pl"),
		GSIDistanceEnabled: gsiDistanceEnabled,

		GoogleMapsAPIKey:     apiKey,
		GoogleMapsGeocodeURL: sharedcfg.EnvOrDefault("GOOGLE_MAPS_GEOCODE_URL", "https://maps.googleapis.com/maps/api/geocode/json"),

		GeometryLibraryEnabled: geometryEnabled,

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	for name, v := range map[string]string{
		"GSI_SEARCH_URL":          cfg.GSISearchURL,
		"GSI_REVERSE_URL":         cfg.GSIReverseURL,
		"GSI_DISTANCE_URL":        cfg.GSIDistanceURL,
		"GOOGLE_MAPS_GEOCODE_URL": cfg.GoogleMapsGeocodeURL,
	} {
		if err := validateURL(name, v); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func parseBool(name string, fallback bool) (bool, error) {
	s := os.Getenv(name)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", name, s)
	}
	return v, nil
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s: %q", name, raw)
	}
	return nil
}
