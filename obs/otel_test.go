package obs

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

func TestInitTracerWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "soundwalk", "", "test")
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestResourceAttributes(t *testing.T) {
	res := Resource("soundwalk", "prod")
	set := res.Set()
	if v, ok := set.Value(attribute.Key("service.name")); !ok || v.AsString() != "soundwalk" {
		t.Fatalf("service.name = %v", v)
	}
	if v, ok := set.Value(attribute.Key("deployment.environment")); !ok || v.AsString() != "prod" {
		t.Fatalf("deployment.environment = %v", v)
	}
}

func TestExporterOptions(t *testing.T) {
	for _, endpoint := range []string{"collector:4317", "http://collector:4317", "https://otel.example.com:4317"} {
		opts, err := exporterOptions(endpoint)
		if err != nil || len(opts) == 0 {
			t.Fatalf("exporterOptions(%q) = %d opts, %v", endpoint, len(opts), err)
		}
	}
	for _, endpoint := range []string{"http://", "http://[::1"} {
		if _, err := exporterOptions(endpoint); err == nil {
			t.Fatalf("expected error for %q", endpoint)
		}
	}
}

func TestInitTracerWithURLEndpoint(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "soundwalk", "http://127.0.0.1:4317", "test")
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)

	if _, err := InitTracer(context.Background(), "soundwalk", "http://[::1", "test"); err == nil {
		t.Fatal("expected malformed endpoint to be rejected")
	}
}
