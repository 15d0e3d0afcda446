package telemetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/otel"

	"github.com/ghuser/laundry-inventory/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		ServiceName:    "test-service",
		ServiceVersion: "test",
		Environment:    "testing",
		ItemStore:      config.StoreMemory,
	}
}

func TestSetup_NoOtelEndpoint(t *testing.T) {
	p, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Metrics == nil {
		t.Fatal("expected non-nil metrics handler")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_MetricsHandlerServesRecordedCounters(t *testing.T) {
	p, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	counter, err := otel.Meter("test").Int64Counter("inventory.stock.adjustments")
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	counter.Add(context.Background(), 3)

	rr := httptest.NewRecorder()
	p.Metrics.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "inventory_stock_adjustments") {
		t.Errorf("expected stock counter in output, got:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Error("expected Go runtime collector output")
	}
}

func TestSetup_InstallsTraceContextPropagator(t *testing.T) {
	p, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	fields := otel.GetTextMapPropagator().Fields()
	found := false
	for _, f := range fields {
		if f == "traceparent" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected traceparent among propagator fields, got %v", fields)
	}
}

func TestSetupSentry_EmptyDSNIsNoop(t *testing.T) {
	if err := SetupSentry(baseConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	CaptureError(context.Background(), errors.New("boom"))
}

func TestScrubRequest(t *testing.T) {
	event := &sentry.Event{Request: &sentry.Request{Data: `{"supplier":"CleanCo"}`, Cookies: "sid=1"}}
	got := scrubRequest(event, nil)
	if got.Request.Data != "" || got.Request.Cookies != "" {
		t.Errorf("request not scrubbed: %+v", got.Request)
	}
	if scrubRequest(&sentry.Event{}, nil) == nil {
		t.Error("events without a request must pass through")
	}
}
