package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinate_Validate(t *testing.T) {
	tests := []struct {
		name  string
		c     Coordinate
		valid bool
	}{
		{"tokyo", tokyoStation, true},
		{"origin", Coordinate{}, true},
		{"north pole", Coordinate{Lat: 90, Lon: 0}, true},
		{"south west corner", Coordinate{Lat: -90, Lon: -180}, true},
		{"north east corner", Coordinate{Lat: 90, Lon: 180}, true},
		{"lat too large", Coordinate{Lat: 90.5, Lon: 0}, false},
		{"lon too small", Coordinate{Lat: 0, Lon: -180.01}, false},
		{"nan", Coordinate{Lat: math.NaN(), Lon: 0}, false},
		{"inf", Coordinate{Lat: 0, Lon: math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	got, err := NormalizeAddress("  東京都　千代田区  丸の内１丁目  ")
	require.NoError(t, err)
	assert.Equal(t, "東京都 千代田区 丸の内1丁目", got)

	got, err = NormalizeAddress("ＡＢＣ　ビル")
	require.NoError(t, err)
	assert.Equal(t, "ABC ビル", got)
}

func TestNormalizeAddress_Empty(t *testing.T) {
	for _, s := range []string{"", "   ", "　\t"} {
		_, err := NormalizeAddress(s)
		assert.ErrorIs(t, err, ErrEmptyAddress, "%q", s)
	}
}

func TestValidCredential(t *testing.T) {
	assert.False(t, ValidCredential(""))
	assert.False(t, ValidCredential(PlaceholderCredential))
	assert.True(t, ValidCredential("AIza-test"))
}
