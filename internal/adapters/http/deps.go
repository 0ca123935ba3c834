package http

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/spraylog/internal/core/usecases"
)

// Pinger is a backing service that can report its connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Paddocks        *usecases.PaddockService
	Applications    *usecases.ApplicationService
	Recommendations *usecases.RecommendationService
	Reports         *usecases.ReportService

	// NATS feeds the WebSocket relay; nil disables /ws.
	NATS *nats.Conn

	// Readiness probes. A nil probe is reported as "not configured".
	Database Pinger
	Cache    Pinger
	Events   Pinger

	// SpecPath locates the OpenAPI document served under /docs.
	SpecPath string
}
