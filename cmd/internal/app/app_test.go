package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	t.Setenv("PORTFOLIO_SESSION_SECRET", strings.Repeat("k", 32))
	// Keep hashing cheap in tests.
	t.Setenv("PORTFOLIO_PBKDF2_ITERATIONS", "10000")

	cfg := LoadConfig()
	cfg.DatabaseURL = ""
	cfg.StaticDir = ""

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := New(context.Background(), cfg, log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func testMux(t *testing.T, a *App) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.metrics, a.web, a.api)
	return mux
}

func TestAppHealthAndReadiness(t *testing.T) {
	a := newTestApp(t)
	mux := testMux(t, a)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz status: %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("readyz status without db requirement: %d", rr.Code)
	}
}

func TestAppReadinessRequiresDB(t *testing.T) {
	a := newTestApp(t)
	a.cfg.ReadinessRequireDB = true
	mux := testMux(t, a)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz must fail when db is required but absent: %d", rr.Code)
	}
}

func TestAppServesMetrics(t *testing.T) {
	a := newTestApp(t)
	mux := testMux(t, a)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
}

func TestAppServesPagesAndAPI(t *testing.T) {
	a := newTestApp(t)
	mux := testMux(t, a)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/about", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("about page status: %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/routine/posts", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("routine posts status: %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("expected JSON content type, got %q", ct)
	}
}

func TestAppRootRedirectsToAbout(t *testing.T) {
	a := newTestApp(t)
	mux := testMux(t, a)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("root redirect status: %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/about" {
		t.Fatalf("root redirect location: %q", loc)
	}
}
