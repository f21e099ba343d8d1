package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fd1az/cap-alpha/internal/logger"
)

func TestHealth_AllHealthy(t *testing.T) {
	s := NewServer(0, "0.1.0", logger.NewDiscard())
	s.RegisterCheck("roster", func(ctx context.Context) (bool, string) { return true, "32 teams" })

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body Status
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Version != "0.1.0" || body.Checks["roster"].Message != "32 teams" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestHealth_Degraded(t *testing.T) {
	s := NewServer(0, "", logger.NewDiscard())
	s.RegisterCheck("roster", func(ctx context.Context) (bool, string) { return true, "" })
	s.RegisterCheck("evaluator", func(ctx context.Context) (bool, string) { return false, "circuit open" })

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}

	ready := httptest.NewRecorder()
	s.Handler().ServeHTTP(ready, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if ready.Code != http.StatusServiceUnavailable || ready.Body.String() != "not ready" {
		t.Errorf("ready = %d %q", ready.Code, ready.Body.String())
	}
}

func TestLive(t *testing.T) {
	s := NewServer(0, "", logger.NewDiscard())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "alive" {
		t.Errorf("live = %d %q", rec.Code, rec.Body.String())
	}
}
