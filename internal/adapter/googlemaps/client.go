package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
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

const DefaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Client implements keyed geocoding with the Google Maps Geocoding API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Google Maps geocoding client. The API key is supplied
// per call so that key rotation never requires a new client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// Name identifies this provider in errors and metrics.
func (c *Client) Name() domain.Provider {
	return domain.ProviderGoogleMaps
}

// Geocode resolves an address using the given API key.
func (c *Client) Geocode(ctx context.Context, key, address string) (domain.Coordinate, error) {
	params := url.Values{
		"address": {address},
		"key":     {key},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Coordinate{}, providerError(domain.KindInvalidRequest, "", "create request", err)
	}

	c.logger.Debug("calling google maps geocoding", "address", address)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Coordinate{}, providerError(domain.KindTransport, "", "request failed", redactKey(err, key))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return domain.Coordinate{}, providerError(domain.KindHTTPStatus, strconv.Itoa(resp.StatusCode), "HTTP error", nil)
	}

	var gmResp response
	if err := json.NewDecoder(resp.Body).Decode(&gmResp); err != nil {
		return domain.Coordinate{}, providerError(domain.KindMalformedResponse, "", "malformed response", fmt.Errorf("decode response: %w", err))
	}

	if err := classifyStatus(gmResp, address); err != nil {
		return domain.Coordinate{}, err
	}

	loc := gmResp.Results[0].Geometry.Location
	coord := domain.Coordinate{Lat: loc.Lat, Lon: loc.Lng}
	if err := coord.Validate(); err != nil {
		return domain.Coordinate{}, providerError(domain.KindMalformedResponse, "", "malformed response", err)
	}

	c.logger.Debug("google maps address resolved",
		"address", address,
		"formatted_address", gmResp.Results[0].FormattedAddress,
		"location_type", gmResp.Results[0].Geometry.LocationType,
	)
	return coord, nil
}

func providerError(kind domain.ErrorKind, status, reason string, err error) *domain.ProviderError {
	return &domain.ProviderError{
		Provider: domain.ProviderGoogleMaps,
		Kind:     kind,
		Status:   status,
		Reason:   reason,
		Err:      err,
	}
}

// redactKey strips the API key from transport errors, which embed the request
// URL with the key in its query-escaped form.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return &url.Error{Op: uerr.Op, URL: hideKey(uerr.URL, key), Err: uerr.Err}
	}
	if msg := hideKey(err.Error(), key); msg != err.Error() {
		return errors.New(msg)
	}
	return err
}

func hideKey(s, key string) string {
	s = strings.ReplaceAll(s, url.QueryEscape(key), "HIDDEN")
	return strings.ReplaceAll(s, key, "HIDDEN")
}

// Google Maps Geocoding API response types.

type response struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"` // ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}
