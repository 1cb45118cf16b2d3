package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderError_NotFoundIsErrNotFound(t *testing.T) {
	err := NotFoundError(ProviderGSI, "nowhere")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "address not found: nowhere", err.Error())
}

func TestProviderError_MessageIncludesStatusAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ProviderError{
		Provider: ProviderGoogleMaps,
		Kind:     KindTransport,
		Status:   "503",
		Reason:   "request failed",
		Err:      cause,
	}

	assert.Equal(t, "request failed (503): connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGeocodeError_SingleAttempt(t *testing.T) {
	err := &GeocodeError{
		Address:  "nowhere",
		Attempts: []*ProviderError{NotFoundError(ProviderGSI, "nowhere")},
	}

	assert.Equal(t, `geocode "nowhere": primary provider gsi failed: address not found: nowhere`, err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, err.Tried(ProviderGSI))
	assert.False(t, err.Tried(ProviderGoogleMaps))
}

func TestGeocodeError_BothAttempts(t *testing.T) {
	err := &GeocodeError{
		Address: "nowhere",
		Attempts: []*ProviderError{
			NotFoundError(ProviderGSI, "nowhere"),
			{Provider: ProviderGoogleMaps, Kind: KindRateLimit, Status: "OVER_QUERY_LIMIT", Reason: "API usage limit reached"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "primary provider gsi failed: address not found")
	assert.Contains(t, msg, "secondary provider google_maps failed: API usage limit reached (OVER_QUERY_LIMIT)")
	assert.NotErrorIs(t, err, ErrNotFound)

	var pe *ProviderError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, KindRateLimit, pe.Kind)
}

func TestOrchestrationError_Wraps(t *testing.T) {
	inner := &GeocodeError{
		Address:  "x",
		Attempts: []*ProviderError{NotFoundError(ProviderGSI, "x")},
	}
	err := fmt.Errorf("resolve: %w", &OrchestrationError{Stage: StageAddress1, Err: inner})

	var oe *OrchestrationError
	assert.ErrorAs(t, err, &oe)
	assert.Equal(t, StageAddress1, oe.Stage)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "address1: geocode")
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "rate_limit", KindRateLimit.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}
