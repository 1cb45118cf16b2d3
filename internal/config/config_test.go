package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "AIza-test-key"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "https://msearch.gsi.go.jp/address-search/AddressSearch", cfg.GSISearchURL)
	assert.Equal(t, "https://mreversegeocoder.gsi.go.jp/reverse-geocoder/LonLatToAddress", cfg.GSIReverseURL)
	assert.Equal(t, "https://vldb.gsi.go.jp/sokuchi/surveycalc/surveycalc/bl2st_calc.pl", cfg.GSIDistanceURL)
	assert.True(t, cfg.GSIDistanceEnabled)
	assert.Empty(t, cfg.GoogleMapsAPIKey)
	assert.Equal(t, "https://maps.googleapis.com/maps/api/geocode/json", cfg.GoogleMapsGeocodeURL)
	assert.False(t, cfg.GeometryLibraryEnabled)
	assert.Empty(t, cfg.OTLPEndpoint)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("GSI_SEARCH_URL", "http://localhost:1/search")
	t.Setenv("GSI_REVERSE_URL", "http://localhost:1/reverse")
	t.Setenv("GSI_DISTANCE_URL", "http://localhost:1/distance")
	t.Setenv("GSI_DISTANCE_ENABLED", "false")
	t.Setenv("GOOGLE_MAPS_API_KEY", testAPIKey)
	t.Setenv("GOOGLE_MAPS_GEOCODE_URL", "http://localhost:2/geocode")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "http://localhost:1/search", cfg.GSISearchURL)
	assert.Equal(t, "http://localhost:1/reverse", cfg.GSIReverseURL)
	assert.Equal(t, "http://localhost:1/distance", cfg.GSIDistanceURL)
	assert.False(t, cfg.GSIDistanceEnabled)
	assert.Equal(t, testAPIKey, cfg.GoogleMapsAPIKey)
	assert.Equal(t, "http://localhost:2/geocode", cfg.GoogleMapsGeocodeURL)
	assert.True(t, cfg.GeometryLibraryEnabled)
	assert.Equal(t, "http://localhost:4318", cfg.OTLPEndpoint)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidProviderTimeout(t *testing.T) {
	for _, v := range []string{"bad", "0s", "-1s"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("PROVIDER_TIMEOUT", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "PROVIDER_TIMEOUT")
		})
	}
}

func TestLoad_InvalidBool(t *testing.T) {
	t.Setenv("GSI_DISTANCE_ENABLED", "maybe")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GSI_DISTANCE_ENABLED")
}

func TestLoad_InvalidURL(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_GEOCODE_URL", "not a url")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_MAPS_GEOCODE_URL")
}

func TestLoad_PlaceholderKeyLeavesGeometryDisabled(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "YOUR_API_KEY")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.GeometryLibraryEnabled)
}

func TestLoad_GeometryExplicitlyDisabled(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", testAPIKey)
	t.Setenv("GEOMETRY_LIBRARY_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.GeometryLibraryEnabled)
}

func TestLoad_GeometryExplicitlyEnabledWithoutKey(t *testing.T) {
	t.Setenv("GEOMETRY_LIBRARY_ENABLED", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.GeometryLibraryEnabled)
}
