package geospatial

import (
	"fmt"
	"math"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// MinBoundaryPoints is the smallest polygon a paddock boundary may have.
const MinBoundaryPoints = 3

// ValidateCoordinate fails with a *domain.ValidationError unless lat is in
// [-90, 90], lng is in [-180, 180] and both are finite.
func ValidateCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return domain.Invalid("latitude", "must be a finite number")
	}
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return domain.Invalid("longitude", "must be a finite number")
	}
	if lat < -90 || lat > 90 {
		return domain.Invalid("latitude", "%v out of range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return domain.Invalid("longitude", "%v out of range [-180, 180]", lng)
	}
	return nil
}

// ValidateBoundary checks that points form a usable polygon and returns a
// copy of the sequence. The caller's slice is never retained.
func ValidateBoundary(points []domain.GeoPoint) ([]domain.GeoPoint, error) {
	if len(points) < MinBoundaryPoints {
		return nil, domain.Invalid("boundaryCoordinates",
			"at least %d points required, got %d", MinBoundaryPoints, len(points))
	}
	out := make([]domain.GeoPoint, len(points))
	for i, p := range points {
		if err := ValidateCoordinate(p.Latitude, p.Longitude); err != nil {
			return nil, fmt.Errorf("boundaryCoordinates[%d]: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

// Centroid returns the arithmetic mean of points on each axis. This is an
// approximate center, not the area-weighted polygon centroid.
func Centroid(points []domain.GeoPoint) (domain.GeoPoint, error) {
	if len(points) == 0 {
		return domain.GeoPoint{}, fmt.Errorf("centroid of zero points: %w", domain.ErrInvalidInput)
	}
	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Latitude
		sumLng += p.Longitude
	}
	n := float64(len(points))
	return domain.GeoPoint{Latitude: sumLat / n, Longitude: sumLng / n}, nil
}
