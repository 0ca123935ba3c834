package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/samirrijal/spraylog/internal/adapters/geojson"
	"github.com/samirrijal/spraylog/internal/adapters/memory"
	natsadapter "github.com/samirrijal/spraylog/internal/adapters/nats"
	"github.com/samirrijal/spraylog/internal/adapters/storage"
	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/core/ports"
	"github.com/samirrijal/spraylog/internal/core/usecases"
	"github.com/samirrijal/spraylog/internal/pkg/config"
	"github.com/samirrijal/spraylog/internal/pkg/logging"
)

// Usage: importer paddocks.geojson [farm]
//
// Every Polygon feature becomes one paddock. Features read name, farm and
// area from their properties; a farm argument overrides the property.
func main() {
	cfg, err := config.Load("spraylog-importer")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Telemetry.ServiceName)

	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <paddocks.geojson> [farm]", os.Args[0])
	}
	var farm string
	if len(os.Args) > 2 {
		farm = os.Args[2]
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("read geojson: %v", err)
	}
	inputs, err := geojson.ParsePaddocks(data)
	if err != nil {
		log.Fatalf("parse geojson: %v", err)
	}

	ctx := context.Background()

	store, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer store.Close()
	if !store.Persistent() {
		log.Fatalf("importer needs a persistent database driver, got %q", store.Driver)
	}

	var events ports.EventPublisher
	if pub, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, import events not published", "error", err)
	} else {
		defer pub.Close()
		events = pub
	}

	svc := usecases.NewPaddockService(store.Paddocks, events, memory.NewCache())
	res := importPaddocks(ctx, svc, inputs, farm)

	slog.Info("import finished", "file", os.Args[1], "created", res.Created, "rejected", len(res.Rejected))
	if len(res.Rejected) > 0 {
		os.Exit(1)
	}
}

type paddockCreator interface {
	Create(ctx context.Context, in domain.PaddockInput) (*domain.Paddock, error)
}

// Rejection is a feature the service refused to store.
type Rejection struct {
	Index int
	Name  string
	Err   error
}

type importResult struct {
	Created  int
	Rejected []Rejection
}

// importPaddocks creates each input in order. A rejected feature is logged
// and skipped so one bad polygon does not block the rest of the file.
func importPaddocks(ctx context.Context, svc paddockCreator, inputs []domain.PaddockInput, farm string) importResult {
	var res importResult
	for i, in := range inputs {
		if f := strings.TrimSpace(farm); f != "" {
			in.Farm = f
		}
		p, err := svc.Create(ctx, in)
		if err != nil {
			slog.Warn("feature rejected", "index", i, "name", in.Name, "error", err)
			res.Rejected = append(res.Rejected, Rejection{Index: i, Name: in.Name, Err: err})
			continue
		}
		slog.Info("paddock imported", "id", p.ID, "name", p.Name, "area_ha", p.Area)
		res.Created++
	}
	return res
}
