package domain

import "time"

// Paddock is a fenced field identified by a GPS-captured boundary polygon.
type Paddock struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Farm            string     `json:"farm"`
	Area            float64    `json:"area"` // hectares
	Boundary        []GeoPoint `json:"boundaryCoordinates"`
	CenterLatitude  float64    `json:"centerLatitude"`
	CenterLongitude float64    `json:"centerLongitude"`
	Distance        *float64   `json:"distance,omitempty"` // km, computed by proximity queries
	CreatedAt       time.Time  `json:"createdAt"`
}

// Center returns the stored center as a point.
func (p *Paddock) Center() GeoPoint {
	return GeoPoint{Latitude: p.CenterLatitude, Longitude: p.CenterLongitude}
}

// PaddockInput is the payload accepted when a paddock is created.
// CenterLatitude/CenterLongitude are optional and only range-checked; the
// stored center is always derived from the boundary.
type PaddockInput struct {
	Name            string     `json:"name"`
	Farm            string     `json:"farm"`
	Area            float64    `json:"area"`
	Boundary        []GeoPoint `json:"boundaryCoordinates"`
	CenterLatitude  *float64   `json:"centerLatitude,omitempty"`
	CenterLongitude *float64   `json:"centerLongitude,omitempty"`
}

// PaddockPatch names only the fields a partial update provides.
type PaddockPatch struct {
	Name            *string     `json:"name,omitempty"`
	Farm            *string     `json:"farm,omitempty"`
	Area            *float64    `json:"area,omitempty"`
	Boundary        *[]GeoPoint `json:"boundaryCoordinates,omitempty"`
	CenterLatitude  *float64    `json:"centerLatitude,omitempty"`
	CenterLongitude *float64    `json:"centerLongitude,omitempty"`
}

// IsEmpty reports whether the patch provides no fields at all.
func (p PaddockPatch) IsEmpty() bool {
	return p.Name == nil && p.Farm == nil && p.Area == nil && p.Boundary == nil &&
		p.CenterLatitude == nil && p.CenterLongitude == nil
}

// RateUnit is an agricultural application rate unit.
type RateUnit string

const (
	UnitLitresPerHa        RateUnit = "L/ha"
	UnitMillilitresPerHa   RateUnit = "mL/ha"
	UnitGramsPerHa         RateUnit = "g/ha"
	UnitKilogramsPerHa     RateUnit = "kg/ha"
	UnitLitresPer100L      RateUnit = "L/100L"
	UnitMillilitresPer100L RateUnit = "mL/100L"
)

// RateUnits lists every recognised unit in display order.
var RateUnits = []RateUnit{
	UnitLitresPerHa, UnitMillilitresPerHa, UnitGramsPerHa,
	UnitKilogramsPerHa, UnitLitresPer100L, UnitMillilitresPer100L,
}

// Valid reports whether u is one of RateUnits.
func (u RateUnit) Valid() bool {
	for _, known := range RateUnits {
		if u == known {
			return true
		}
	}
	return false
}

// Chemical is one product in a tank mix.
type Chemical struct {
	Name string   `json:"name"`
	Rate float64  `json:"rate"`
	Unit RateUnit `json:"unit"`
}

// Wind speeds (m/s) outside this band are flagged on audit reports (3-15 km/h).
const (
	MinCompliantWindSpeed = 0.83
	MaxCompliantWindSpeed = 4.17
)

// WeatherSnapshot is the weather recorded at spray time.
type WeatherSnapshot struct {
	WindSpeed     float64 `json:"windSpeed"`     // m/s
	WindDirection float64 `json:"windDirection"` // degrees, 0-360
	Temperature   float64 `json:"temperature"`   // °C
	Humidity      float64 `json:"humidity"`      // %
}

// WindCompliant reports whether the wind speed sits in the spraying band.
func (w *WeatherSnapshot) WindCompliant() bool {
	return w.WindSpeed >= MinCompliantWindSpeed && w.WindSpeed <= MaxCompliantWindSpeed
}

// GPSFix is the operator's position when the record was captured.
type GPSFix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"` // meters
}

// Application is an immutable spray-application record.
type Application struct {
	ID              string           `json:"id"`
	PaddockIDs      []string         `json:"paddockIds"`
	Operator        string           `json:"operator"`
	Farm            string           `json:"farm"`
	ApplicationDate time.Time        `json:"applicationDate"`
	WaterRate       float64          `json:"waterRate"` // L/ha
	Area            float64          `json:"area"`      // hectares treated
	Chemicals       []Chemical       `json:"chemicals"`
	Weather         *WeatherSnapshot `json:"weather,omitempty"`
	GPS             *GPSFix          `json:"gps,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ApplicationInput is the payload accepted when an application is recorded.
type ApplicationInput struct {
	PaddockIDs      []string         `json:"paddockIds"`
	Operator        string           `json:"operator"`
	Farm            string           `json:"farm"`
	ApplicationDate time.Time        `json:"applicationDate"`
	WaterRate       float64          `json:"waterRate"`
	Area            float64          `json:"area"`
	Chemicals       []Chemical       `json:"chemicals"`
	Weather         *WeatherSnapshot `json:"weather,omitempty"`
	GPS             *GPSFix          `json:"gps,omitempty"`
}

// Priority ranks an agronomist recommendation.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is low, medium or high.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Recommendation is a note attached to an application by reference.
type Recommendation struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"applicationId"`
	Author        string    `json:"author"`
	Note          string    `json:"note"`
	Priority      Priority  `json:"priority"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RecommendationInput is the payload accepted for a new recommendation.
type RecommendationInput struct {
	Author   string   `json:"author"`
	Note     string   `json:"note"`
	Priority Priority `json:"priority"`
}

// Attachment is a file carried by an outgoing email.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// EmailMessage is a rendered report ready for delivery.
type EmailMessage struct {
	To          string       `json:"to"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments,omitempty"`
}
