package usecases

import (
	"fmt"
	"math"
	"strings"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/pkg/geospatial"
)

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.Invalid(field, "is required")
	}
	return nil
}

func validateArea(area float64) error {
	if !finite(area) || area <= 0 {
		return domain.Invalid("area", "must be a positive number of hectares")
	}
	return nil
}

// validateOptionalCenter range-checks a client-supplied center. Both axes
// must be given together.
func validateOptionalCenter(lat, lng *float64) error {
	switch {
	case lat == nil && lng == nil:
		return nil
	case lat == nil || lng == nil:
		return domain.Invalid("centerLatitude", "centerLatitude and centerLongitude must be provided together")
	}
	return geospatial.ValidateCoordinate(*lat, *lng)
}

func validateChemicals(chems []domain.Chemical) error {
	for i, c := range chems {
		field := fmt.Sprintf("chemicals[%d]", i)
		if strings.TrimSpace(c.Name) == "" {
			return domain.Invalid(field+".name", "is required")
		}
		if !finite(c.Rate) || c.Rate < 0 {
			return domain.Invalid(field+".rate", "must be a non-negative number")
		}
		if !c.Unit.Valid() {
			return domain.Invalid(field+".unit", "%q is not a recognised rate unit", c.Unit)
		}
	}
	return nil
}

func validateWeather(w *domain.WeatherSnapshot) error {
	if w == nil {
		return nil
	}
	if !finite(w.WindSpeed) || w.WindSpeed < 0 {
		return domain.Invalid("weather.windSpeed", "must be a non-negative number")
	}
	if !finite(w.WindDirection) || w.WindDirection < 0 || w.WindDirection > 360 {
		return domain.Invalid("weather.windDirection", "must be between 0 and 360 degrees")
	}
	if !finite(w.Temperature) {
		return domain.Invalid("weather.temperature", "must be a finite number")
	}
	if !finite(w.Humidity) || w.Humidity < 0 || w.Humidity > 100 {
		return domain.Invalid("weather.humidity", "must be between 0 and 100")
	}
	return nil
}

func validateGPS(g *domain.GPSFix) error {
	if g == nil {
		return nil
	}
	if err := geospatial.ValidateCoordinate(g.Latitude, g.Longitude); err != nil {
		return fmt.Errorf("gps: %w", err)
	}
	if !finite(g.Accuracy) || g.Accuracy < 0 {
		return domain.Invalid("gps.accuracy", "must be a non-negative number of meters")
	}
	return nil
}

func validateApplicationInput(in *domain.ApplicationInput) error {
	if len(in.PaddockIDs) == 0 {
		return domain.Invalid("paddockIds", "at least one paddock is required")
	}
	for i, id := range in.PaddockIDs {
		if strings.TrimSpace(id) == "" {
			return domain.Invalid(fmt.Sprintf("paddockIds[%d]", i), "must not be empty")
		}
	}
	if err := requireText("operator", in.Operator); err != nil {
		return err
	}
	if err := requireText("farm", in.Farm); err != nil {
		return err
	}
	if in.ApplicationDate.IsZero() {
		return domain.Invalid("applicationDate", "is required")
	}
	if !finite(in.WaterRate) || in.WaterRate < 0 {
		return domain.Invalid("waterRate", "must be a non-negative number")
	}
	if !finite(in.Area) || in.Area < 0 {
		return domain.Invalid("area", "must be a non-negative number")
	}
	if err := validateChemicals(in.Chemicals); err != nil {
		return err
	}
	if err := validateWeather(in.Weather); err != nil {
		return err
	}
	return validateGPS(in.GPS)
}
