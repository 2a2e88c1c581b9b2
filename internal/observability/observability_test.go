package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/jkaninda/hesabu/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Facade ---

func TestNewNilConfigDisablesEverything(t *testing.T) {
	obs, err := New(nil, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs != nil {
		t.Fatal("nil config should yield a nil Observability")
	}
	// All nil-safe accessors must hold on the nil facade.
	if obs.MetricsOrNil() != nil {
		t.Error("MetricsOrNil on nil facade should be nil")
	}
	if obs.TracerOrNil() != nil {
		t.Error("TracerOrNil on nil facade should be nil")
	}
	obs.Shutdown(context.Background())
}

func TestNewMetricsOnly(t *testing.T) {
	obs, err := New(&config.ObservabilityConfig{
		Metrics: &config.MetricsConfig{Enabled: true},
	}, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs.Metrics == nil {
		t.Fatal("metrics should be enabled")
	}
	if obs.Tracer != nil {
		t.Error("tracer should be nil when tracing is not configured")
	}
	if obs.Health == nil {
		t.Error("health checker should always be created")
	}
}

func TestTracerNilSafe(t *testing.T) {
	var ts *TracerSetup
	if ts.Tracer() == nil {
		t.Error("nil TracerSetup must still return a usable tracer")
	}
	if err := ts.Shutdown(context.Background()); err != nil {
		t.Errorf("nil TracerSetup shutdown: %v", err)
	}
}

// --- Metrics ---

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("writing metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRoutingMetrics(t *testing.T) {
	m := NewMetricsCollector()

	m.RoutingQueriesTotal.WithLabelValues("pattern").Inc()
	m.RoutingQueriesTotal.WithLabelValues("pattern").Inc()
	m.RoutingQueriesTotal.WithLabelValues("keyword").Inc()
	m.RoutingDuration.WithLabelValues("pattern").Observe(0.0002)
	m.RoutingSuggestions.Observe(2)

	if got := counterValue(t, m.RoutingQueriesTotal.WithLabelValues("pattern")); got != 2 {
		t.Errorf("pattern queries = %v, want 2", got)
	}
	if got := counterValue(t, m.RoutingQueriesTotal.WithLabelValues("keyword")); got != 1 {
		t.Errorf("keyword queries = %v, want 1", got)
	}
}

func TestRecordToolCall(t *testing.T) {
	m := NewMetricsCollector()
	m.RecordToolCall("invoice_list_sales", "ok", 0.12)
	m.RecordToolCall("invoice_list_sales", "error", 0.05)

	if got := counterValue(t, m.ToolCallsTotal.WithLabelValues("invoice_list_sales", "ok")); got != 1 {
		t.Errorf("ok calls = %v, want 1", got)
	}
	if got := counterValue(t, m.ToolCallsTotal.WithLabelValues("invoice_list_sales", "error")); got != 1 {
		t.Errorf("error calls = %v, want 1", got)
	}

	// Nil collector is a no-op, not a panic.
	var nilM *MetricsCollector
	nilM.RecordToolCall("x", "ok", 0)
}

// --- Health ---

func TestHealthCheckerReady(t *testing.T) {
	h := NewHealthChecker(discardLogger())

	if got := h.CheckReady(context.Background()); got.Status != "ok" {
		t.Errorf("no checks: status = %q, want ok", got.Status)
	}

	h.AddCheck("router", func(context.Context) error { return nil })
	h.AddCheck("backend", func(context.Context) error { return errors.New("unreachable") })

	got := h.CheckReady(context.Background())
	if got.Status != "degraded" {
		t.Errorf("status = %q, want degraded", got.Status)
	}
	if got.Checks["router"].Status != "ok" {
		t.Errorf("router check = %q, want ok", got.Checks["router"].Status)
	}
	if got.Checks["backend"].Status != "fail" {
		t.Errorf("backend check = %q, want fail", got.Checks["backend"].Status)
	}
}
