package telemetry

import (
	"context"
	"testing"
)

func TestInitTracer_UnsupportedExporter(t *testing.T) {
	_, err := InitTracer(context.Background(), Config{ServiceName: "test", Exporter: "zipkin"})
	if err == nil {
		t.Fatal("expected error for unsupported exporter")
	}
}

func TestInitTracer_Stdout(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), Config{ServiceName: "test", Exporter: "stdout", SampleRatio: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, span := Tracer().Start(context.Background(), "paddock.list")
	if !span.SpanContext().IsValid() {
		t.Error("expected a recording span from the installed provider")
	}
	span.End()
	shutdown()
}
