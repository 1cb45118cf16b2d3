package resolver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HorikawaTakumi/map-distance-calculator/internal/distance"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/domain"
	"github.com/HorikawaTakumi/map-distance-calculator/internal/observability"
)

const (
	addrTokyo   = "東京駅"
	addrShibuya = "渋谷駅"
)

var (
	tokyo   = domain.Coordinate{Lat: 35.681236, Lon: 139.767125}
	shibuya = domain.Coordinate{Lat: 35.658034, Lon: 139.701636}
)

type mockGeocoder struct {
	coords map[string]domain.Coordinate
	errs   map[string]error
	calls  []string
}

func (m *mockGeocoder) Geocode(_ context.Context, address string) (domain.Coordinate, error) {
	m.calls = append(m.calls, address)
	if err, ok := m.errs[address]; ok {
		return domain.Coordinate{}, err
	}
	if c, ok := m.coords[address]; ok {
		return c, nil
	}
	return domain.Coordinate{}, domain.NotFoundError(domain.ProviderGSI, address)
}

type countingCalculator struct {
	calls int
}

func (c *countingCalculator) Compute(_ context.Context, a, b domain.Coordinate) domain.Distance {
	c.calls++
	return domain.NewDistance(domain.HaversineKm(a, b), domain.MethodGreatCircle)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stationGeocoder() *mockGeocoder {
	return &mockGeocoder{coords: map[string]domain.Coordinate{
		addrTokyo:   tokyo,
		addrShibuya: shibuya,
	}}
}

func TestResolveDistance_TokyoShibuya(t *testing.T) {
	m := observability.NewMetricsForTesting()
	calc := distance.NewCalculator(discardLogger(), m)
	r := New(stationGeocoder(), calc, discardLogger(), m)

	res, err := r.ResolveDistance(context.Background(), addrTokyo, addrShibuya)
	require.NoError(t, err)

	assert.Equal(t, addrTokyo, res.AddressA)
	assert.Equal(t, addrShibuya, res.AddressB)
	assert.Equal(t, tokyo, res.CoordA)
	assert.Equal(t, shibuya, res.CoordB)
	assert.Equal(t, domain.MethodGreatCircle, res.Method)
	assert.InDelta(t, 6.45, res.DistanceKm, 0.1)
	assert.InDelta(t, res.DistanceKm*1000, res.DistanceM, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolveRequests.WithLabelValues("success")))
}

func TestResolveDistance_Address1NotFound(t *testing.T) {
	geo := stationGeocoder()
	calc := &countingCalculator{}
	m := observability.NewMetricsForTesting()
	r := New(geo, calc, discardLogger(), m)

	_, err := r.ResolveDistance(context.Background(), "存在しない住所", addrShibuya)
	require.Error(t, err)

	var oerr *domain.OrchestrationError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, domain.StageAddress1, oerr.Stage)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"存在しない住所"}, geo.calls)
	assert.Equal(t, 0, calc.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolveRequests.WithLabelValues("address1")))
}

func TestResolveDistance_Address2Failure(t *testing.T) {
	geo := stationGeocoder()
	geo.errs = map[string]error{"broken": errors.New("upstream timeout")}
	calc := &countingCalculator{}
	r := New(geo, calc, discardLogger(), observability.NewMetricsForTesting())

	_, err := r.ResolveDistance(context.Background(), addrTokyo, "broken")

	var oerr *domain.OrchestrationError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, domain.StageAddress2, oerr.Stage)
	assert.True(t, strings.HasPrefix(err.Error(), "address2: "))
	assert.Contains(t, err.Error(), "upstream timeout")
	assert.Equal(t, 0, calc.calls)
}

func TestResolveDistance_InvalidCoordinateIsDistanceStage(t *testing.T) {
	geo := stationGeocoder()
	geo.coords["nan"] = domain.Coordinate{Lat: math.NaN(), Lon: 0}
	calc := &countingCalculator{}
	r := New(geo, calc, discardLogger(), observability.NewMetricsForTesting())

	_, err := r.ResolveDistance(context.Background(), addrTokyo, "nan")

	var oerr *domain.OrchestrationError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, domain.StageDistance, oerr.Stage)
	assert.Equal(t, 0, calc.calls)
}

func TestResolveDistance_Idempotent(t *testing.T) {
	m := observability.NewMetricsForTesting()
	r := New(stationGeocoder(), distance.NewCalculator(discardLogger(), m), discardLogger(), m)

	first, err := r.ResolveDistance(context.Background(), addrTokyo, addrShibuya)
	require.NoError(t, err)
	second, err := r.ResolveDistance(context.Background(), addrTokyo, addrShibuya)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated resolution differs (-first +second):\n%s", diff)
	}
}

func TestResolveDistance_SameAddress(t *testing.T) {
	r := New(stationGeocoder(), &countingCalculator{}, discardLogger(), observability.NewMetricsForTesting())

	res, err := r.ResolveDistance(context.Background(), addrTokyo, addrTokyo)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.DistanceKm)
	assert.Equal(t, 0.0, res.DistanceM)
}

func TestCheckReadiness(t *testing.T) {
	r := New(stationGeocoder(), &countingCalculator{}, discardLogger(), observability.NewMetricsForTesting())

	require.Error(t, r.CheckReadiness(context.Background()))

	r.SetReady(true)
	require.NoError(t, r.CheckReadiness(context.Background()))

	r.SetReady(false)
	require.Error(t, r.CheckReadiness(context.Background()))
}
