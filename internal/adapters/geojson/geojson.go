// Package geojson converts paddock boundaries to and from GeoJSON.
// Positions are [longitude, latitude] and polygon rings are closed.
package geojson

import (
	"fmt"
	"time"

	gj "github.com/paulmach/go.geojson"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// PaddockFeature renders one paddock as a Polygon feature.
func PaddockFeature(p domain.Paddock) *gj.Feature {
	ring := make([][]float64, 0, len(p.Boundary)+1)
	for _, pt := range p.Boundary {
		ring = append(ring, []float64{pt.Longitude, pt.Latitude})
	}
	if n := len(p.Boundary); n > 0 && p.Boundary[0] != p.Boundary[n-1] {
		ring = append(ring, []float64{p.Boundary[0].Longitude, p.Boundary[0].Latitude})
	}

	f := gj.NewPolygonFeature([][][]float64{ring})
	f.ID = p.ID
	f.SetProperty("name", p.Name)
	f.SetProperty("farm", p.Farm)
	f.SetProperty("area", p.Area)
	f.SetProperty("centerLatitude", p.CenterLatitude)
	f.SetProperty("centerLongitude", p.CenterLongitude)
	f.SetProperty("createdAt", p.CreatedAt.UTC().Format(time.RFC3339))
	if p.Distance != nil {
		f.SetProperty("distance", *p.Distance)
	}
	return f
}

// PaddockCollection renders paddocks as a FeatureCollection in the given order.
func PaddockCollection(paddocks []domain.Paddock) *gj.FeatureCollection {
	fc := gj.NewFeatureCollection()
	for _, p := range paddocks {
		fc.AddFeature(PaddockFeature(p))
	}
	return fc
}

// ParsePaddocks reads a FeatureCollection of Polygon features into create
// inputs. Only the outer ring is used; a closing point equal to the first
// is dropped. Field validation is left to the paddock service.
func ParsePaddocks(data []byte) ([]domain.PaddockInput, error) {
	fc, err := gj.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, domain.Invalid("geojson", "not a FeatureCollection: %v", err)
	}

	inputs := make([]domain.PaddockInput, 0, len(fc.Features))
	for i, f := range fc.Features {
		field := fmt.Sprintf("features[%d]", i)
		if f.Geometry == nil || f.Geometry.Type != gj.GeometryPolygon {
			kind := "none"
			if f.Geometry != nil {
				kind = string(f.Geometry.Type)
			}
			return nil, domain.Invalid(field+".geometry", "must be a Polygon, got %s", kind)
		}
		if len(f.Geometry.Polygon) == 0 {
			return nil, domain.Invalid(field+".geometry", "polygon has no rings")
		}

		boundary, err := ringToPoints(f.Geometry.Polygon[0])
		if err != nil {
			return nil, domain.Invalid(field+".geometry", "%v", err)
		}

		inputs = append(inputs, domain.PaddockInput{
			Name:     f.PropertyMustString("name"),
			Farm:     f.PropertyMustString("farm"),
			Area:     f.PropertyMustFloat64("area"),
			Boundary: boundary,
		})
	}
	return inputs, nil
}

func ringToPoints(ring [][]float64) ([]domain.GeoPoint, error) {
	points := make([]domain.GeoPoint, 0, len(ring))
	for j, pos := range ring {
		if len(pos) < 2 {
			return nil, fmt.Errorf("position %d has %d values", j, len(pos))
		}
		points = append(points, domain.GeoPoint{Latitude: pos[1], Longitude: pos[0]})
	}
	if n := len(points); n > 1 && points[0] == points[n-1] {
		points = points[:n-1]
	}
	return points, nil
}
