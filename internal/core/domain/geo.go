package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UnmarshalJSON accepts numbers or numeric strings for either axis, so
// boundaries captured by clients that stringify coordinates still decode.
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var raw struct {
		Latitude  json.RawMessage `json:"latitude"`
		Longitude json.RawMessage `json:"longitude"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	lat, err := coerceFloat(raw.Latitude)
	if err != nil {
		return fmt.Errorf("latitude: %w", err)
	}
	lng, err := coerceFloat(raw.Longitude)
	if err != nil {
		return fmt.Errorf("longitude: %w", err)
	}
	p.Latitude, p.Longitude = lat, lng
	return nil
}

func coerceFloat(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("missing value")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	return f, nil
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLon float64 `json:"minLon"`
	MaxLat float64 `json:"maxLat"`
	MaxLon float64 `json:"maxLon"`
}

// Contains reports whether p lies inside the box (edges inclusive).
func (b Bounds) Contains(p GeoPoint) bool {
	return p.Latitude >= b.MinLat && p.Latitude <= b.MaxLat &&
		p.Longitude >= b.MinLon && p.Longitude <= b.MaxLon
}
