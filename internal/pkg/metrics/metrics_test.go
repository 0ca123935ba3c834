package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakePool struct{ acquired, idle, total int32 }

func (f fakePool) AcquiredConns() int32 { return f.acquired }
func (f fakePool) IdleConns() int32     { return f.idle }
func (f fakePool) TotalConns() int32    { return f.total }

func TestUpdateDBPoolMetrics(t *testing.T) {
	UpdateDBPoolMetrics(fakePool{acquired: 3, idle: 7, total: 10})

	if got := testutil.ToFloat64(DBPoolConnsAcquired); got != 3 {
		t.Errorf("acquired = %v, want 3", got)
	}
	if got := testutil.ToFloat64(DBPoolConnsIdle); got != 7 {
		t.Errorf("idle = %v, want 7", got)
	}
	if got := testutil.ToFloat64(DBPoolConnsOpen); got != 10 {
		t.Errorf("open = %v, want 10", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/metrics", Handler())
	app.Get("/api/paddocks", func(c *fiber.Ctx) error { return c.SendString("[]") })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/paddocks", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `spraylog_http_requests_total{method="GET",path="/api/paddocks",status="200"}`) {
		t.Errorf("expected request counter for /api/paddocks in output")
	}
}
