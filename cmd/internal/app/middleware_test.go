package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestWithRequestLoggingRecordsOutcome(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	h := WithRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}), log, NewMetrics())

	req := httptest.NewRequest(http.MethodGet, "/teapot", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status not propagated: %d", rr.Code)
	}
	if rr.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("missing %s header", RequestIDHeader)
	}

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "http.request" {
		t.Fatalf("unexpected log msg: %v", rec["msg"])
	}
	if rec["status"] != float64(http.StatusTeapot) {
		t.Fatalf("unexpected logged status: %v", rec["status"])
	}
	if rec["path"] != "/teapot" {
		t.Fatalf("unexpected logged path: %v", rec["path"])
	}
	if rec["bytes"] != float64(len("short and stout")) {
		t.Fatalf("unexpected logged bytes: %v", rec["bytes"])
	}
	if rec["request_id"] == "" || rec["request_id"] == nil {
		t.Fatalf("missing request_id in log record")
	}
}

func TestWithRequestLoggingRequestIDsAreUnique(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := WithRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), log, nil)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rr.Header().Get(RequestIDHeader)
		if id == "" {
			t.Fatalf("empty request id on iteration %d", i)
		}
		if seen[id] {
			t.Fatalf("duplicate request id %q", id)
		}
		seen[id] = true
	}
}

func TestWithSecurityHeaders(t *testing.T) {
	t.Parallel()

	h := WithSecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("missing nosniff: %q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("missing frame options: %q", got)
	}
	if got := rr.Header().Get("Referrer-Policy"); got != "no-referrer" {
		t.Fatalf("missing referrer policy: %q", got)
	}
}

func TestMetricsExposition(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveRequest(http.MethodGet, "GET /about", http.StatusOK, 12*time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "portfolio_http_requests_total") {
		t.Fatalf("request counter missing from exposition:\n%s", body)
	}
	if !strings.Contains(body, `route="GET /about"`) {
		t.Fatalf("observed labels missing from exposition:\n%s", body)
	}
}

func TestMetricsLabeledByRoutePattern(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewMetrics()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/blogs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := WithRequestLogging(mux, log, m)

	// Distinct ids must collapse into one route label.
	for _, path := range []string{"/api/blogs/1", "/api/blogs/2", "/api/blogs/999"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	}
	// Unmatched paths get a fixed bucket, not their raw path.
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/wp-admin/setup.php", nil))

	rr = httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rr.Body.String()

	if !strings.Contains(body, `route="GET /api/blogs/{id}"`) {
		t.Fatalf("matched requests must be labeled by pattern:\n%s", body)
	}
	if strings.Contains(body, `route="/api/blogs/1"`) {
		t.Fatalf("raw paths must not appear as route labels:\n%s", body)
	}
	if !strings.Contains(body, `route="unmatched"`) {
		t.Fatalf("unmatched requests must share one label:\n%s", body)
	}
	if strings.Contains(body, "wp-admin") {
		t.Fatalf("scanner path leaked into labels:\n%s", body)
	}
}
