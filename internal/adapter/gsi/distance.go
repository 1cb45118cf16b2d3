package gsi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
)

const DefaultDistanceURL = "https://vldb.gsi.go.jp/sokuchi/surveycalc/surveycalc/bl2st_calc.pl"

// DistanceClient queries the GSI surveying calculation service for the
// geodesic length between two points on the Bessel ellipsoid.
type DistanceClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewDistanceClient creates a client for the bl2st_calc endpoint.
func NewDistanceClient(baseURL string, timeout time.Duration, logger *slog.Logger) *DistanceClient {
	return &DistanceClient{
		httpClient: newHTTPClient(timeout),
		baseURL:    baseURL,
		logger:     logger,
	}
}

// Calculate returns the raw service response for the two points.
func (c *DistanceClient) Calculate(ctx context.Context, a, b domain.Coordinate) (json.RawMessage, error) {
	body, err := doGet(ctx, c.httpClient, c.baseURL, calcParams(a, b))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, malformed(fmt.Errorf("decode distance response: %w", err))
	}
	return raw, nil
}

// DistanceKm returns the geodesic length between a and b in kilometers.
func (c *DistanceClient) DistanceKm(ctx context.Context, a, b domain.Coordinate) (float64, error) {
	raw, err := c.Calculate(ctx, a, b)
	if err != nil {
		return 0, err
	}

	var resp distanceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, malformed(fmt.Errorf("decode distance response: %w", err))
	}
	if resp.OutputData == nil {
		return 0, malformed(fmt.Errorf("missing OutputData"))
	}

	meters, err := strconv.ParseFloat(strings.TrimSpace(resp.OutputData.GeoLength), 64)
	if err != nil {
		return 0, malformed(fmt.Errorf("parse geoLength %q: %w", resp.OutputData.GeoLength, err))
	}
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters < 0 {
		return 0, malformed(fmt.Errorf("geoLength out of range: %v", meters))
	}

	c.logger.Debug("gsi distance computed", "from", a.String(), "to", b.String(), "meters", meters)
	return meters / 1000, nil
}

func calcParams(a, b domain.Coordinate) url.Values {
	return url.Values{
		"outputType": {"json"},
		"ellipsoid":  {"bessel"},
		"latitude1":  {formatDegrees(a.Lat)},
		"longitude1": {formatDegrees(a.Lon)},
		"latitude2":  {formatDegrees(b.Lat)},
		"longitude2": {formatDegrees(b.Lon)},
	}
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// bl2st_calc response types. geoLength is a decimal string in meters.

type distanceResponse struct {
	OutputData *struct {
		GeoLength string `json:"geoLength"`
	} `json:"OutputData"`
}
