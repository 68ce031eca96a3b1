package consoleapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// spanAttrs runs one request with a recording span in context and returns
// the attributes the handler set on it.
func spanAttrs(t *testing.T, d *testDeps, method, path string) map[attribute.Key]attribute.Value {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "http.server")
	req := httptest.NewRequest(method, path, nil).WithContext(trace.ContextWithSpan(ctx, span))
	rec := httptest.NewRecorder()
	d.router.ServeHTTP(rec, req)
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded spans = %d, want 1", len(spans))
	}
	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	return attrs
}

func TestSpanAttributes_GetAlert(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)
	attrs := spanAttrs(t, d, http.MethodGet, "/api/v1/alerts/ALT-8821")

	if v, ok := attrs["sentinel.alert.id"]; !ok || v.AsString() != "ALT-8821" {
		t.Errorf("sentinel.alert.id = %v, want ALT-8821", v.Emit())
	}
}

func TestSpanAttributes_ListAlerts(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)
	attrs := spanAttrs(t, d, http.MethodGet, "/api/v1/alerts?minRisk=80")

	if v, ok := attrs["sentinel.queue.visible"]; !ok || v.AsInt64() != 1 {
		t.Errorf("sentinel.queue.visible = %v, want 1", v.Emit())
	}
}

func TestSpanAttributes_Session(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t, nil)
	attrs := spanAttrs(t, d, http.MethodGet, "/api/v1/session")

	if v, ok := attrs["sentinel.session.state"]; !ok || v.AsString() != "IDLE" {
		t.Errorf("sentinel.session.state = %v, want IDLE", v.Emit())
	}
}
