package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aurex-exteriors/site/internal/service/backend"
)

type checkerFunc func(ctx context.Context) (*backend.Health, error)

func (f checkerFunc) Health(ctx context.Context) (*backend.Health, error) { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	Handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.Code)
	}

	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var h Response
	if err := json.Unmarshal(resp.Body.Bytes(), &h); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if h.Status != "healthy" {
		t.Fatalf("expected status 'healthy', got %s", h.Status)
	}
}

func TestReadyHandler(t *testing.T) {
	resp := httptest.NewRecorder()
	Ready(backend.NewMock())(resp, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.Code)
	}
	var h Response
	if err := json.Unmarshal(resp.Body.Bytes(), &h); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if h.Status != "ready" || h.Backend != "healthy" {
		t.Fatalf("unexpected response %+v", h)
	}
}

func TestReadyHandlerBackendDown(t *testing.T) {
	down := checkerFunc(func(context.Context) (*backend.Health, error) {
		return nil, errors.New("connection refused")
	})
	resp := httptest.NewRecorder()
	Ready(down)(resp, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestReadyHandlerBoundsCheck(t *testing.T) {
	var hasDeadline bool
	probe := checkerFunc(func(ctx context.Context) (*backend.Health, error) {
		_, hasDeadline = ctx.Deadline()
		return &backend.Health{Status: "healthy"}, nil
	})
	Ready(probe)(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ready", nil))

	if !hasDeadline {
		t.Fatal("expected the backend check to carry a deadline")
	}
}
