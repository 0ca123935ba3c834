package geospatial

import (
	"sort"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// RankByDistance annotates a copy of paddocks with their distance (km) from
// (lat, lng) and orders them nearest first. Equal distances keep input order.
func RankByDistance(paddocks []domain.Paddock, lat, lng float64) []domain.Paddock {
	ranked := make([]domain.Paddock, len(paddocks))
	for i, p := range paddocks {
		d := DistanceKm(lat, lng, p.CenterLatitude, p.CenterLongitude)
		p.Distance = &d
		ranked[i] = p
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Distance < *ranked[j].Distance
	})
	return ranked
}

// WithinKm keeps the ranked paddocks whose distance is at most radiusKm.
// Input must come from RankByDistance.
func WithinKm(ranked []domain.Paddock, radiusKm float64) []domain.Paddock {
	cut := sort.Search(len(ranked), func(i int) bool {
		return *ranked[i].Distance > radiusKm
	})
	return ranked[:cut]
}

// InBounds keeps the paddocks whose center lies inside b, preserving order.
func InBounds(paddocks []domain.Paddock, b domain.Bounds) []domain.Paddock {
	out := make([]domain.Paddock, 0, len(paddocks))
	for _, p := range paddocks {
		if b.Contains(p.Center()) {
			out = append(out, p)
		}
	}
	return out
}
