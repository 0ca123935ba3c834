// Package report renders spray-application audit documents: PDFs with
// go-pdf/fpdf and the spray register workbook with excelize.
package report

import (
	"math"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassPoint names the 16-point compass direction for degrees.
func CompassPoint(degrees float64) string {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return compassPoints[int(math.Round(d/22.5))%16]
}

// Summary aggregates a batch of applications for the report cover page.
type Summary struct {
	Records          int
	TotalArea        float64 // hectares
	AverageWaterRate float64 // L/ha
	Operators        int
	Farms            int
}

// Summarize computes batch totals. AverageWaterRate is 0 for an empty batch.
func Summarize(apps []domain.Application) Summary {
	s := Summary{Records: len(apps)}
	operators := make(map[string]struct{})
	farms := make(map[string]struct{})
	var water float64
	for _, a := range apps {
		s.TotalArea += a.Area
		water += a.WaterRate
		operators[a.Operator] = struct{}{}
		farms[a.Farm] = struct{}{}
	}
	if len(apps) > 0 {
		s.AverageWaterRate = water / float64(len(apps))
	}
	s.Operators = len(operators)
	s.Farms = len(farms)
	return s
}

func paddockNames(ids []string, paddocks map[string]domain.Paddock) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := paddocks[id]; ok {
			names = append(names, p.Name)
		} else {
			names = append(names, "(deleted paddock)")
		}
	}
	return names
}
