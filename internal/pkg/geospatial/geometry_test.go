package geospatial

import (
	"errors"
	"math"
	"testing"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"origin", 0, 0, false},
		{"upper bounds", 90, 180, false},
		{"lower bounds", -90, -180, false},
		{"lat too high", 91, 0, true},
		{"lat too low", -91, 0, true},
		{"lng too high", 0, 181, true},
		{"lng too low", 0, -181, true},
		{"lat NaN", math.NaN(), 0, true},
		{"lng NaN", 0, math.NaN(), true},
		{"lat +Inf", math.Inf(1), 0, true},
		{"lng -Inf", 0, math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.lat, tt.lng)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err), "expected validation error, got %T", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateBoundary_TooFewPoints(t *testing.T) {
	for n := 0; n < MinBoundaryPoints; n++ {
		pts := make([]domain.GeoPoint, n)
		_, err := ValidateBoundary(pts)
		require.Error(t, err, "%d points", n)
		assert.True(t, domain.IsValidation(err))
	}
}

func TestValidateBoundary_ExactlyThree(t *testing.T) {
	in := []domain.GeoPoint{{Latitude: 0, Longitude: 0}, {Latitude: 0, Longitude: 2}, {Latitude: 2, Longitude: 0}}
	out, err := ValidateBoundary(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// The result must not alias the input.
	out[0].Latitude = 10
	assert.Equal(t, 0.0, in[0].Latitude)
}

func TestValidateBoundary_BadPoint(t *testing.T) {
	in := []domain.GeoPoint{{Latitude: 0, Longitude: 0}, {Latitude: 95, Longitude: 2}, {Latitude: 2, Longitude: 0}}
	_, err := ValidateBoundary(in)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "boundaryCoordinates[1]")
}

func TestCentroid_Square(t *testing.T) {
	c, err := Centroid([]domain.GeoPoint{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 2},
		{Latitude: 2, Longitude: 0},
		{Latitude: 2, Longitude: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Latitude: 1, Longitude: 1}, c)
}

func TestCentroid_Triangle(t *testing.T) {
	c, err := Centroid([]domain.GeoPoint{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 2},
		{Latitude: 2, Longitude: 0},
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, c.Latitude, 1e-12)
	assert.InDelta(t, 2.0/3.0, c.Longitude, 1e-12)
}

func TestCentroid_Empty(t *testing.T) {
	_, err := Centroid(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
