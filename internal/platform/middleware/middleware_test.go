package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func containsHeader(headerValue, target string) bool {
	for part := range strings.SplitSeq(headerValue, ",") {
		if strings.EqualFold(strings.TrimSpace(part), target) {
			return true
		}
	}
	return false
}

func TestCORSDefaultsToAnyOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://localhost/v1/services", nil)
	req.Header.Set("Origin", "http://example.com")
	resp := httptest.NewRecorder()

	CORS()(okHandler()).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected '*', got %q", got)
	}
	exposed := resp.Header().Get("Access-Control-Expose-Headers")
	for _, h := range []string{"Link", "Location", "X-Request-Id"} {
		if !containsHeader(exposed, h) {
			t.Fatalf("expected exposed header %q, got %q", h, exposed)
		}
	}
}

func TestCORSRestrictsConfiguredOrigins(t *testing.T) {
	h := CORS("https://aurexexteriors.com.au")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "http://localhost/v1/services", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin for foreign origin, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "http://localhost/v1/services", nil)
	req.Header.Set("Origin", "https://aurexexteriors.com.au")
	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://aurexexteriors.com.au" {
		t.Fatalf("expected configured origin echoed, got %q", got)
	}
}

func TestCORSPreflightAllowsPatch(t *testing.T) {
	called := false
	h := CORS()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodOptions, "http://localhost/v1/forms/abc/fields/name", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if called {
		t.Fatal("preflight must not reach the handler")
	}
	if !containsHeader(resp.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch) {
		t.Fatalf("expected PATCH allowed, got %q", resp.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestVarySetsAccept(t *testing.T) {
	resp := httptest.NewRecorder()
	Vary()(okHandler()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := resp.Header().Get("Vary"); got != "Accept" {
		t.Fatalf("expected Vary: Accept, got %q", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	resp := httptest.NewRecorder()
	Security("/api-docs")(okHandler()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/forms/x", nil))

	expect := map[string]string{
		"Cache-Control":          "no-store",
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	}
	for k, v := range expect {
		if got := resp.Header().Get(k); got != v {
			t.Fatalf("%s: expected %q, got %q", k, v, got)
		}
	}
}

func TestSecuritySkipsDocs(t *testing.T) {
	resp := httptest.NewRecorder()
	Security("/api-docs")(okHandler()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api-docs", nil))
	if got := resp.Header().Get("X-Frame-Options"); got != "" {
		t.Fatalf("expected docs path to be skipped, got %q", got)
	}
}

func TestRequestIDGeneratesUUID(t *testing.T) {
	var ctxID string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = chimiddleware.GetReqID(r.Context())
	}))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	header := resp.Header().Get(chimiddleware.RequestIDHeader)
	if _, err := uuid.Parse(header); err != nil {
		t.Fatalf("expected UUID header, got %q", header)
	}
	if ctxID != header {
		t.Fatalf("context ID %q does not match header %q", ctxID, header)
	}
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "client-req-1")
	resp := httptest.NewRecorder()
	RequestID()(okHandler()).ServeHTTP(resp, req)

	if got := resp.Header().Get(chimiddleware.RequestIDHeader); got != "client-req-1" {
		t.Fatalf("expected client-req-1, got %q", got)
	}
}

func TestIsValidRequestID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"abc-123", true},
		{"", false},
		{"line\nbreak", false},
		{"tab\there", false},
		{"caf\xc3\xa9", false},
		{strings.Repeat("a", maxRequestIDLength), true},
		{strings.Repeat("a", maxRequestIDLength+1), false},
	}
	for _, tt := range tests {
		if got := isValidRequestID(tt.id); got != tt.valid {
			t.Fatalf("isValidRequestID(%q) = %v, want %v", tt.id, got, tt.valid)
		}
	}
}
