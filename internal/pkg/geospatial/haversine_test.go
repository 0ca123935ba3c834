package geospatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

func TestDistanceKm_SamePointIsZero(t *testing.T) {
	points := [][2]float64{{0, 0}, {-27.4698, 153.0251}, {90, 180}, {-45.5, -170.25}}
	for _, p := range points {
		assert.Equal(t, 0.0, DistanceKm(p[0], p[1], p[0], p[1]), "point %v", p)
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	pairs := []struct{ a, b [2]float64 }{
		{[2]float64{-27.4698, 153.0251}, [2]float64{-27.4705, 153.0260}},
		{[2]float64{51.5074, -0.1278}, [2]float64{40.7128, -74.0060}},
		{[2]float64{0, 179.9}, [2]float64{0, -179.9}},
	}
	for _, tc := range pairs {
		ab := DistanceKm(tc.a[0], tc.a[1], tc.b[0], tc.b[1])
		ba := DistanceKm(tc.b[0], tc.b[1], tc.a[0], tc.a[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistanceKm_ShortLocalHop(t *testing.T) {
	d := DistanceKm(-27.4698, 153.0251, -27.4705, 153.0260)
	assert.GreaterOrEqual(t, d, 0.1)
	assert.LessOrEqual(t, d, 0.12)
}

func TestDistanceKm_KnownCityPair(t *testing.T) {
	// London to New York, roughly 5570 km.
	d := DistanceKm(51.5074, -0.1278, 40.7128, -74.0060)
	assert.InDelta(t, 5570, d, 15)
}

func TestDistanceKm_OneDegreeAtEquator(t *testing.T) {
	assert.InDelta(t, 111.19, DistanceKm(0, 0, 0, 1), 0.01)
}

func TestBoundingBox_ContainsRadius(t *testing.T) {
	b := BoundingBox(-27.47, 153.02, 10)
	assert.True(t, b.Contains(domain.GeoPoint{Latitude: -27.47, Longitude: 153.02}))

	// Edges should sit about radius away from the center.
	assert.InDelta(t, 10, DistanceKm(-27.47, 153.02, b.MaxLat, 153.02), 0.1)
	assert.InDelta(t, 10, DistanceKm(-27.47, 153.02, -27.47, b.MaxLon), 0.1)
	assert.False(t, b.Contains(domain.GeoPoint{Latitude: -27.47, Longitude: 153.5}))
}

func TestBoundingBox_ReachesPole(t *testing.T) {
	b := BoundingBox(89.99, 0, 50)
	assert.Equal(t, 90.0, b.MaxLat)
	assert.Less(t, b.MinLat, 89.99)
	assert.Equal(t, -180.0, b.MinLon)
	assert.Equal(t, 180.0, b.MaxLon)
}

func TestBoundingBox_CrossesAntimeridian(t *testing.T) {
	b := BoundingBox(-17.7, 179.9, 50)
	assert.Equal(t, -180.0, b.MinLon)
	assert.Equal(t, 180.0, b.MaxLon)
	assert.True(t, b.Contains(domain.GeoPoint{Latitude: -17.7, Longitude: -179.9}))
}

func TestBoundingBox_KeepsPointsNearTheRadius(t *testing.T) {
	cases := []struct {
		name               string
		lat, lon, radiusKm float64
		point              domain.GeoPoint
	}{
		{"due north on the equator", 0, 0, 10, domain.GeoPoint{Latitude: 0.0899, Longitude: 0}},
		{"due east at 60N", 60, 0, 10, domain.GeoPoint{Latitude: 60, Longitude: 0.1797}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.LessOrEqual(t, DistanceKm(tc.lat, tc.lon, tc.point.Latitude, tc.point.Longitude), tc.radiusKm)
			assert.True(t, BoundingBox(tc.lat, tc.lon, tc.radiusKm).Contains(tc.point))
		})
	}
}

func TestBoundingBox_CoversEveryBearing(t *testing.T) {
	for _, lat := range []float64{-75, -43.5, 0, 12.3, 60, 80} {
		for _, radius := range []float64{0.5, 10, 250, 1500} {
			b := BoundingBox(lat, 20, radius)
			for bearing := 0.0; bearing < 360; bearing += 7.5 {
				p := destination(lat, 20, bearing, radius*0.9999)
				assert.Truef(t, b.Contains(p), "lat=%v r=%v bearing=%v point=%+v box=%+v", lat, radius, bearing, p, b)
			}
		}
	}
}

// destination walks distKm from (lat, lon) along the initial bearing.
func destination(lat, lon, bearingDeg, distKm float64) domain.GeoPoint {
	ang := distKm / earthRadiusKm
	phi1, lambda1, theta := toRad(lat), toRad(lon), toRad(bearingDeg)
	phi2 := math.Asin(math.Sin(phi1)*math.Cos(ang) + math.Cos(phi1)*math.Sin(ang)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(math.Sin(theta)*math.Sin(ang)*math.Cos(phi1), math.Cos(ang)-math.Sin(phi1)*math.Sin(phi2))
	lon2 := math.Mod(toDeg(lambda2)+540, 360) - 180
	return domain.GeoPoint{Latitude: toDeg(phi2), Longitude: lon2}
}
