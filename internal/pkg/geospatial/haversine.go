package geospatial

import (
	"math"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

const earthRadiusKm = 6371.0

// DistanceKm calculates the great-circle distance in kilometers between two
// points given in degrees.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// BoundingBox returns the smallest lat/lng box holding every point whose
// DistanceKm from (lat, lon) is at most radiusKm. When the circle reaches a
// pole or crosses the antimeridian the box spans every longitude.
func BoundingBox(lat, lon, radiusKm float64) domain.Bounds {
	// Angular radius, padded so points sitting exactly on the circle survive
	// rounding.
	ang := radiusKm/earthRadiusKm + 1e-12
	latDelta := toDeg(ang)
	b := domain.Bounds{
		MinLat: math.Max(lat-latDelta, -90),
		MaxLat: math.Min(lat+latDelta, 90),
		MinLon: -180,
		MaxLon: 180,
	}
	if b.MinLat == -90 || b.MaxLat == 90 {
		return b
	}

	// Widest longitude reached by the great circle, not by the parallel.
	ratio := math.Sin(ang) / math.Cos(toRad(lat))
	if ratio >= 1 {
		return b
	}
	lonDelta := toDeg(math.Asin(ratio))
	if lon-lonDelta < -180 || lon+lonDelta > 180 {
		return b
	}
	b.MinLon, b.MaxLon = lon-lonDelta, lon+lonDelta
	return b
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
