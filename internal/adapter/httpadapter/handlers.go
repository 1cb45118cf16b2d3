package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mmcloughlin/geohash"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
)

const (
	maxBodyBytes     = 64 << 10
	geohashPrecision = 9
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type distanceRequest struct {
	Address1 string `json:"address1" validate:"required,max=256"`
	Address2 string `json:"address2" validate:"required,max=256"`
}

type distanceResponse struct {
	domain.DistanceResult
	Geohash1 string `json:"geohash1"`
	Geohash2 string `json:"geohash2"`
}

type coordinateQuery struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lon float64 `json:"lon" validate:"longitude"`
}

type credentialRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

type credentialStatus struct {
	Configured bool `json:"configured"`
	Valid      bool `json:"valid"`
}

func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	var req distanceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed", validationMessages(err))
		return
	}

	res, err := s.svc.Resolver.ResolveDistance(r.Context(), req.Address1, req.Address2)
	if err != nil {
		respondWithError(w, statusFor(err), err.Error(), nil)
		return
	}

	respondWithSuccess(w, http.StatusOK, "Distance resolved", distanceResponse{
		DistanceResult: res,
		Geohash1:       geohash.EncodeWithPrecision(res.CoordA.Lat, res.CoordA.Lon, geohashPrecision),
		Geohash2:       geohash.EncodeWithPrecision(res.CoordB.Lat, res.CoordB.Lon, geohashPrecision),
	})
}

// handleReverse relays the national reverse geocoder's JSON unchanged.
func (s *Server) handleReverse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	coord, errs := parseCoordinate(q.Get("lat"), q.Get("lon"), "lat", "lon")
	if errs != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed", errs)
		return
	}

	raw, err := s.svc.Reverse.ReverseGeocode(r.Context(), coord)
	if err != nil {
		s.logger.Warn("reverse geocode failed", "coord", coord.String(), "error", err)
		respondWithError(w, http.StatusBadGateway, err.Error(), nil)
		return
	}

	relayJSON(w, raw)
}

// handleDistanceProxy forwards to the national distance service and relays
// its JSON unchanged.
func (s *Server) handleDistanceProxy(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var missing []string
	for _, name := range []string{"latitude1", "longitude1", "latitude2", "longitude2"} {
		if q.Get(name) == "" {
			missing = append(missing, name+" is required")
		}
	}
	if len(missing) > 0 {
		respondWithError(w, http.StatusBadRequest, "Missing required parameters", missing)
		return
	}

	a, errsA := parseCoordinate(q.Get("latitude1"), q.Get("longitude1"), "latitude1", "longitude1")
	b, errsB := parseCoordinate(q.Get("latitude2"), q.Get("longitude2"), "latitude2", "longitude2")
	if errs := append(errsA, errsB...); len(errs) > 0 {
		respondWithError(w, http.StatusBadRequest, "Validation failed", errs)
		return
	}

	raw, err := s.svc.Proxy.Calculate(r.Context(), a, b)
	if err != nil {
		s.logger.Warn("distance proxy failed", "error", err)
		respondWithError(w, http.StatusBadGateway, "Failed to fetch from national distance service", []string{err.Error()})
		return
	}

	relayJSON(w, raw)
}

func (s *Server) handleCredentialStatus(w http.ResponseWriter, _ *http.Request) {
	respondWithSuccess(w, http.StatusOK, "Credential status", s.credentialStatus())
}

func (s *Server) handleCredentialSet(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed", validationMessages(err))
		return
	}

	s.svc.Credentials.Set(strings.TrimSpace(req.APIKey))
	st := s.credentialStatus()
	s.logger.Info("api key updated", "valid", st.Valid)
	respondWithSuccess(w, http.StatusOK, "Credential saved", st)
}

func (s *Server) handleCredentialClear(w http.ResponseWriter, _ *http.Request) {
	s.svc.Credentials.Clear()
	s.logger.Info("api key cleared")
	respondWithSuccess(w, http.StatusOK, "Credential cleared", s.credentialStatus())
}

func (s *Server) credentialStatus() credentialStatus {
	_, ok := s.svc.Credentials.Credential()
	return credentialStatus{
		Configured: s.svc.Credentials.Get() != "",
		Valid:      ok,
	}
}

// parseCoordinate parses and range-checks a lat/lon pair, reporting problems
// under the given parameter names.
func parseCoordinate(latStr, lonStr, latName, lonName string) (domain.Coordinate, []string) {
	var errs []string

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		errs = append(errs, latName+" must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		errs = append(errs, lonName+" must be a number")
	}
	if len(errs) > 0 {
		return domain.Coordinate{}, errs
	}

	var verrs validator.ValidationErrors
	if err := validate.Struct(coordinateQuery{Lat: lat, Lon: lon}); errors.As(err, &verrs) {
		names := map[string]string{"lat": latName, "lon": lonName}
		for _, fe := range verrs {
			errs = append(errs, describeFieldError(names[fe.Field()], fe))
		}
		return domain.Coordinate{}, errs
	}
	return domain.Coordinate{Lat: lat, Lon: lon}, nil
}
