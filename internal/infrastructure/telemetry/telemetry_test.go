package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		logger, err := NewLogger(env)
		if err != nil || logger == nil {
			t.Fatalf("%s: unexpected error %v", env, err)
		}
	}
}

func TestInitTracing_NoEndpoint(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), "cargo-underwriting", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}

func TestTracingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(TracingMiddleware("cargo-underwriting", zap.New(core)))
	r.GET("/v1/quotes/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/quotes/q-1", nil))

	if w.Header().Get("X-Trace-ID") == "" {
		t.Fatalf("expected trace id header")
	}
	spans := recorder.Ended()
	if len(spans) != 1 || spans[0].Name() != "GET /v1/quotes/:id" {
		t.Fatalf("unexpected spans %v", spans)
	}
	if logs.Len() != 1 || logs.All()[0].ContextMap()["status"] != int64(http.StatusNoContent) {
		t.Fatalf("unexpected logs %v", logs.All())
	}
}
