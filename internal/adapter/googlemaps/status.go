package googlemaps

import (
	"fmt"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
)

// Geocoding API status codes.
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusOverDailyLimit = "OVER_DAILY_LIMIT"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
	StatusRequestDenied  = "REQUEST_DENIED"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusUnknownError   = "UNKNOWN_ERROR"
)

// classifyStatus maps the response status to a typed failure, or nil when
// the response carries a usable result.
func classifyStatus(resp response, address string) *domain.ProviderError {
	switch resp.Status {
	case StatusOK:
		if len(resp.Results) == 0 {
			return notFound(resp.Status, address)
		}
		return nil
	case StatusRequestDenied:
		reason := "API key is invalid or the Geocoding API is not enabled"
		if resp.ErrorMessage != "" {
			reason = resp.ErrorMessage
		}
		return providerError(domain.KindRequestDenied, resp.Status, reason, nil)
	case StatusOverDailyLimit, StatusOverQueryLimit:
		return providerError(domain.KindRateLimit, resp.Status, "API usage limit reached", nil)
	case StatusInvalidRequest:
		return providerError(domain.KindInvalidRequest, resp.Status, "request is invalid", nil)
	case StatusUnknownError:
		return providerError(domain.KindServerError, resp.Status, "server error, try again later", nil)
	case StatusZeroResults:
		return notFound(resp.Status, address)
	default:
		return providerError(domain.KindUnknown, resp.Status, fmt.Sprintf("unexpected status %q", resp.Status), nil)
	}
}

func notFound(status, address string) *domain.ProviderError {
	e := domain.NotFoundError(domain.ProviderGoogleMaps, address)
	e.Status = status
	return e
}
