package http_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
)

// findOpenAPISpec locates api/openapi.yaml by walking up from the test directory.
func findOpenAPISpec(t *testing.T) string {
	t.Helper()
	dir, _ := os.Getwd()

	for i := 0; i < 5; i++ {
		candidate := filepath.Join(dir, "api", "openapi.yaml")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}

	t.Fatalf("could not find api/openapi.yaml")
	return ""
}

func loadSpec(t *testing.T) *openapi3.T {
	t.Helper()
	data, err := os.ReadFile(findOpenAPISpec(t))
	if err != nil {
		t.Fatalf("failed to read openapi.yaml: %v", err)
	}

	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI spec: %v", err)
	}
	return spec
}

// TestOpenAPISpec validates the document and checks it covers every route.
func TestOpenAPISpec(t *testing.T) {
	spec := loadSpec(t)

	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI spec validation failed: %v", err)
	}

	expectedPaths := []string{
		"/health",
		"/ready",
		"/api/paddocks",
		"/api/paddocks.geojson",
		"/api/paddocks/{id}",
		"/api/paddocks/{id}/geojson",
		"/api/applications",
		"/api/applications/export.pdf",
		"/api/applications/export.xlsx",
		"/api/applications/export/send-email",
		"/api/applications/{id}",
		"/api/applications/{id}/report.pdf",
		"/api/applications/{id}/send-email",
		"/api/applications/{id}/recommendations",
		"/graphql",
	}

	for _, path := range expectedPaths {
		if item := spec.Paths.Find(path); item == nil {
			t.Errorf("expected path %s not found in spec", path)
		}
	}

	expectedSchemas := []string{
		"APIError",
		"GeoPoint",
		"Paddock",
		"PaddockInput",
		"PaddockPatch",
		"Chemical",
		"Weather",
		"GPSFix",
		"Application",
		"ApplicationInput",
		"Recommendation",
		"RecommendationInput",
	}

	for _, schema := range expectedSchemas {
		if spec.Components.Schemas[schema] == nil {
			t.Errorf("expected schema %s not found", schema)
		}
	}

	t.Logf("OpenAPI spec valid: %d paths, %d schemas", len(spec.Paths.Map()), len(spec.Components.Schemas))
}

// TestOpenAPIChemicalUnits keeps the documented units in step with the domain.
func TestOpenAPIChemicalUnits(t *testing.T) {
	spec := loadSpec(t)

	unit := spec.Components.Schemas["Chemical"].Value.Properties["unit"].Value
	want := map[string]bool{"L/ha": true, "mL/ha": true, "g/ha": true, "kg/ha": true, "L/100L": true, "mL/100L": true}
	if len(unit.Enum) != len(want) {
		t.Fatalf("expected %d units, got %d", len(want), len(unit.Enum))
	}
	for _, v := range unit.Enum {
		if !want[v.(string)] {
			t.Errorf("unexpected unit %v", v)
		}
	}
}

// TestOpenAPIInfo verifies spec metadata.
func TestOpenAPIInfo(t *testing.T) {
	spec := loadSpec(t)

	if spec.Info.Title != "Spraylog API" {
		t.Errorf("expected title 'Spraylog API', got %q", spec.Info.Title)
	}
	if spec.Info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", spec.Info.Version)
	}
	if spec.Info.Description == "" {
		t.Error("expected non-empty description")
	}
	if len(spec.Servers) == 0 {
		t.Fatal("expected at least one server")
	}
}
