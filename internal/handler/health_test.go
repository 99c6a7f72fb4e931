package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/subnets-service/internal/handler"
)

// stubPinger implements handler.Pinger for health endpoints.
type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func newHealthEngine(checks ...handler.HealthCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)
	// nil services: only health and docs routes are exercised here
	return handler.NewEngine(handler.Deps{Checks: checks, Logger: zerolog.New(io.Discard)})
}

func TestReadiness_OK(t *testing.T) {
	r := newHealthEngine(handler.HealthCheck{Name: "postgres", Pinger: stubPinger{}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestReadiness_Unavailable(t *testing.T) {
	r := newHealthEngine(
		handler.HealthCheck{Name: "postgres", Pinger: stubPinger{}},
		handler.HealthCheck{Name: "page_links", Pinger: stubPinger{err: errors.New("redis down")}},
	)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestLivenessRoot_OK(t *testing.T) {
	r := newHealthEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestReadinessRoot_OK(t *testing.T) {
	r := newHealthEngine(handler.HealthCheck{Name: "postgres", Pinger: stubPinger{}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestDocsAndMetrics(t *testing.T) {
	r := newHealthEngine()
	for _, path := range []string{"/openapi.yaml", "/docs", "/metrics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK || w.Body.Len() == 0 {
			t.Fatalf("%s: expected non-empty 200, got %d", path, w.Code)
		}
	}
}
