package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means no provider could resolve an address.
	ErrNotFound = errors.New("address not found")

	// ErrEmptyAddress is returned for addresses that are blank after normalization.
	ErrEmptyAddress = errors.New("address must be non-empty")

	// ErrStrategyUnavailable lets a distance strategy decline silently.
	ErrStrategyUnavailable = errors.New("distance strategy unavailable")
)

// Provider identifies an upstream geocoding service.
type Provider string

const (
	ProviderGSI        Provider = "gsi"
	ProviderGoogleMaps Provider = "google_maps"
)

// ErrorKind classifies a provider failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindRateLimit
	KindRequestDenied
	KindInvalidRequest
	KindServerError
	KindTransport
	KindHTTPStatus
	KindMalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindRateLimit:
		return "rate_limit"
	case KindRequestDenied:
		return "request_denied"
	case KindInvalidRequest:
		return "invalid_request"
	case KindServerError:
		return "server_error"
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// ProviderError is a failure reported by, or while talking to, one provider.
type ProviderError struct {
	Provider Provider
	Kind     ErrorKind
	Status   string // provider status code or HTTP status, when available
	Reason   string
	Err      error
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	b.WriteString(e.Reason)
	if e.Status != "" {
		fmt.Fprintf(&b, " (%s)", e.Status)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is reports not-found failures as ErrNotFound.
func (e *ProviderError) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// NotFoundError builds the not-found failure for a provider.
func NotFoundError(p Provider, address string) *ProviderError {
	return &ProviderError{
		Provider: p,
		Kind:     KindNotFound,
		Reason:   fmt.Sprintf("address not found: %s", address),
	}
}

// GeocodeError aggregates every provider attempt made for one address.
// Attempts are in the order they were tried: primary first.
type GeocodeError struct {
	Address  string
	Attempts []*ProviderError
}

func (e *GeocodeError) Error() string {
	roles := []string{"primary", "secondary"}
	parts := make([]string, 0, len(e.Attempts))
	for i, a := range e.Attempts {
		role := "fallback"
		if i < len(roles) {
			role = roles[i]
		}
		parts = append(parts, fmt.Sprintf("%s provider %s failed: %v", role, a.Provider, a))
	}
	return fmt.Sprintf("geocode %q: %s", e.Address, strings.Join(parts, "; "))
}

// Unwrap returns the last attempt, which decides the outcome.
func (e *GeocodeError) Unwrap() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1]
}

// Tried reports whether the given provider was attempted.
func (e *GeocodeError) Tried(p Provider) bool {
	for _, a := range e.Attempts {
		if a.Provider == p {
			return true
		}
	}
	return false
}

// Stage labels where orchestration failed.
type Stage string

const (
	StageAddress1 Stage = "address1"
	StageAddress2 Stage = "address2"
	StageDistance Stage = "distance"
)

// OrchestrationError wraps the first failure of a distance resolution.
type OrchestrationError struct {
	Stage Stage
	Err   error
}

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *OrchestrationError) Unwrap() error {
	return e.Err
}
