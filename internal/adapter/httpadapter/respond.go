package httpadapter

import (
	"errors"
	"net/http"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-playground/validator/v10"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
)

type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func respondWithSuccess(w http.ResponseWriter, code int, message string, data any) {
	sharedobs.WriteJSON(w, code, successResponse{Status: "success", Message: message, Data: data})
}

func respondWithError(w http.ResponseWriter, code int, message string, errs []string) {
	sharedobs.WriteJSON(w, code, errorResponse{Status: "error", Message: message, Errors: errs})
}

// relayJSON writes an upstream JSON body as-is.
func relayJSON(w http.ResponseWriter, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// statusFor maps a resolution failure to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyAddress):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, len(verrs))
	for i, fe := range verrs {
		out[i] = formatValidationError(fe)
	}
	return out
}

func formatValidationError(fe validator.FieldError) string {
	return describeFieldError(fe.Field(), fe)
}

func describeFieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "latitude":
		return field + " must be a latitude between -90 and 90"
	case "longitude":
		return field + " must be a longitude between -180 and 180"
	case "max":
		return field + " must be at most " + fe.Param() + " characters long"
	default:
		return field + " failed " + fe.Tag() + " validation"
	}
}
