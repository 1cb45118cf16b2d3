package gsi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
)

const (
	DefaultSearchURL  = "https://msearch.gsi.go.jp/address-search/AddressSearch"
	DefaultReverseURL = "https://mreversegeocoder.gsi.go.jp/reverse-geocoder/LonLatToAddress"
)

// Client implements address search and reverse geocoding against the GSI
// (Geospatial Information Authority of Japan) public endpoints.
type Client struct {
	httpClient *http.Client
	searchURL  string
	reverseURL string
	logger     *slog.Logger
}

// NewClient creates a GSI geocoding client.
func NewClient(searchURL, reverseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: newHTTPClient(timeout),
		searchURL:  searchURL,
		reverseURL: reverseURL,
		logger:     logger,
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// Name identifies this provider in errors and metrics.
func (c *Client) Name() domain.Provider {
	return domain.ProviderGSI
}

// Geocode resolves an address to the first search hit.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	params := url.Values{"q": {address}}

	body, err := c.get(ctx, c.searchURL, params)
	if err != nil {
		return domain.Coordinate{}, err
	}
	defer body.Close()

	var features []feature
	if err := json.NewDecoder(body).Decode(&features); err != nil {
		return domain.Coordinate{}, malformed(fmt.Errorf("decode search response: %w", err))
	}

	if len(features) == 0 {
		return domain.Coordinate{}, domain.NotFoundError(domain.ProviderGSI, address)
	}

	// GSI uses lon,lat order.
	coords := features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinate{}, malformed(fmt.Errorf("expected 2 coordinates for %q, got %d", address, len(coords)))
	}

	coord := domain.Coordinate{Lat: coords[1], Lon: coords[0]}
	if err := coord.Validate(); err != nil {
		return domain.Coordinate{}, malformed(err)
	}

	c.logger.Debug("gsi address resolved", "address", address, "title", features[0].Properties.Title, "coord", coord.String())
	return coord, nil
}

// ReverseGeocode returns the provider's raw JSON for the given coordinate.
func (c *Client) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (json.RawMessage, error) {
	params := url.Values{
		"lon": {strconv.FormatFloat(coord.Lon, 'f', -1, 64)},
		"lat": {strconv.FormatFloat(coord.Lat, 'f', -1, 64)},
	}

	body, err := c.get(ctx, c.reverseURL, params)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, malformed(fmt.Errorf("decode reverse response: %w", err))
	}
	return raw, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (io.ReadCloser, error) {
	return doGet(ctx, c.httpClient, endpoint, params)
}

func doGet(ctx context.Context, client *http.Client, endpoint string, params url.Values) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &domain.ProviderError{
			Provider: domain.ProviderGSI,
			Kind:     domain.KindInvalidRequest,
			Reason:   "create request",
			Err:      err,
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{
			Provider: domain.ProviderGSI,
			Kind:     domain.KindTransport,
			Reason:   "request failed",
			Err:      err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		reason := "HTTP error"
		if msg := strings.TrimSpace(string(b)); msg != "" {
			reason += ": " + msg
		}
		return nil, &domain.ProviderError{
			Provider: domain.ProviderGSI,
			Kind:     domain.KindHTTPStatus,
			Status:   strconv.Itoa(resp.StatusCode),
			Reason:   reason,
		}
	}

	return resp.Body, nil
}

func malformed(err error) *domain.ProviderError {
	return &domain.ProviderError{
		Provider: domain.ProviderGSI,
		Kind:     domain.KindMalformedResponse,
		Reason:   "malformed response",
		Err:      err,
	}
}

// GSI address search response types.

type feature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geometry"`
	Properties struct {
		Title string `json:"title"`
	} `json:"properties"`
}
