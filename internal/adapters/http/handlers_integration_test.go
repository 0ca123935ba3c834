//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	handler "github.com/samirrijal/spraylog/internal/adapters/http"
	"github.com/samirrijal/spraylog/internal/adapters/memory"
	"github.com/samirrijal/spraylog/internal/adapters/postgres"
	"github.com/samirrijal/spraylog/internal/adapters/report"
	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/core/usecases"
	"github.com/samirrijal/spraylog/internal/pkg/config"
)

// setupTestDB connects to the database named by SPRAYLOG_DATABASE_* and
// clears the spraylog tables. The schema must already be migrated.
func setupTestDB(t *testing.T) *postgres.DB {
	t.Helper()
	cfg, err := config.Load("spraylog-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := db.Pool.Exec(ctx, `TRUNCATE recommendations, applications, paddocks`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

// setupTestDeps wires real postgres repositories with an in-memory cache.
func setupTestDeps(db *postgres.DB) *handler.Dependencies {
	paddocks := postgres.NewPaddockRepo(db)
	apps := postgres.NewApplicationRepo(db)
	recs := postgres.NewRecommendationRepo(db)

	return &handler.Dependencies{
		Paddocks:        usecases.NewPaddockService(paddocks, nil, memory.NewCache()),
		Applications:    usecases.NewApplicationService(apps, paddocks, nil),
		Recommendations: usecases.NewRecommendationService(recs, nil),
		Reports: usecases.NewReportService(apps, paddocks,
			report.NewRenderer(time.UTC), report.NewRegisterWriter(), nil),
		Database: db,
	}
}

func integrationRequest(t *testing.T, app *fiber.App, method, path, body string, wantStatus int, out any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected %d, got %d", method, path, wantStatus, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
}

func TestIntegration_PaddockProximity(t *testing.T) {
	db := setupTestDB(t)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, setupTestDeps(db))

	var far, near domain.Paddock
	integrationRequest(t, app, "POST", "/api/paddocks", farPaddock, 201, &far)
	integrationRequest(t, app, "POST", "/api/paddocks", trianglePaddock, 201, &near)

	var ranked []domain.Paddock
	integrationRequest(t, app, "GET", "/api/paddocks?lat=0&lng=0", "", 200, &ranked)
	if len(ranked) != 2 || ranked[0].ID != near.ID {
		t.Fatalf("expected near paddock first, got %+v", ranked)
	}
	if len(ranked[0].Boundary) != 3 {
		t.Errorf("expected boundary to round-trip through jsonb, got %d points", len(ranked[0].Boundary))
	}

	var patched domain.Paddock
	integrationRequest(t, app, "PATCH", "/api/paddocks/"+near.ID, `{"area": 7.25}`, 200, &patched)
	if patched.Area != 7.25 || patched.Name != near.Name {
		t.Errorf("unexpected patch result: %+v", patched)
	}

	integrationRequest(t, app, "DELETE", "/api/paddocks/"+far.ID, "", 204, nil)
	integrationRequest(t, app, "GET", "/api/paddocks/"+far.ID, "", 404, nil)
}

func TestIntegration_ApplicationWithRecommendations(t *testing.T) {
	db := setupTestDB(t)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, setupTestDeps(db))

	var p domain.Paddock
	integrationRequest(t, app, "POST", "/api/paddocks", trianglePaddock, 201, &p)

	body := `{"paddockIds":["` + p.ID + `"],"operator":"Sam","farm":"Riverbend",
		"applicationDate":"2024-03-02T06:30:00Z","waterRate":80,"area":4.5,
		"chemicals":[{"name":"Glyphosate 450","rate":1.5,"unit":"L/ha"}]}`
	var created domain.Application
	integrationRequest(t, app, "POST", "/api/applications", body, 201, &created)

	var fetched domain.Application
	integrationRequest(t, app, "GET", "/api/applications/"+created.ID, "", 200, &fetched)
	if fetched.Weather != nil || fetched.GPS != nil {
		t.Errorf("expected absent weather and gps to stay absent")
	}
	if len(fetched.Chemicals) != 1 || fetched.Chemicals[0].Unit != domain.UnitLitresPerHa {
		t.Errorf("unexpected chemicals: %+v", fetched.Chemicals)
	}

	path := "/api/applications/" + created.ID + "/recommendations"
	integrationRequest(t, app, "POST", path, `{"author":"Dr Lee","note":"first","priority":"high"}`, 201, nil)
	integrationRequest(t, app, "POST", path, `{"author":"Dr Lee","note":"second"}`, 201, nil)

	var recs []domain.Recommendation
	integrationRequest(t, app, "GET", path, "", 200, &recs)
	if len(recs) != 2 || recs[0].Note != "first" || recs[1].Priority != domain.PriorityMedium {
		t.Errorf("unexpected recommendations: %+v", recs)
	}

	integrationRequest(t, app, "GET", "/ready", "", 200, nil)
}
