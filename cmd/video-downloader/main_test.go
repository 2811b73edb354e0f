package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"video-downloader/internal/extraction"
	"video-downloader/internal/handlers"
	"video-downloader/internal/media"
	"video-downloader/internal/startup"
	"video-downloader/internal/transcoder"

	"github.com/gorilla/mux"
)

type stubExtractor struct{}

func (stubExtractor) Extract(context.Context, string) (*media.Info, error) {
	return &media.Info{}, nil
}

func newTestRouter() *mux.Router {
	svc := extraction.NewService(stubExtractor{})
	trans := transcoder.New(transcoder.DefaultConfig())
	return setupRouter(handlers.New(svc, trans))
}

func testConfig() *startup.Config {
	return &startup.Config{CORSOrigins: []string{"*"}}
}

func TestSetupRouter(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		path   string
		match  bool
	}{
		{"GET", "/", true},
		{"HEAD", "/", true},
		{"GET", "/healthz", true},
		{"GET", "/livez", true},
		{"GET", "/version", true},
		{"POST", "/extract-video", true},
		{"POST", "/stream-download", true},
		{"GET", "/extract-video", false},
		{"GET", "/stream-download", false},
		{"POST", "/", false},
		{"GET", "/unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			var m mux.RouteMatch
			matched := router.Match(req, &m) && m.MatchErr == nil
			if matched != tt.match {
				t.Errorf("Match(%s %s) = %v, want %v", tt.method, tt.path, matched, tt.match)
			}
		})
	}
}

func TestSetupRouterMethodNotAllowed(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/extract-video", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestBuildHandlerStatus(t *testing.T) {
	handler := buildHandler(newTestRouter(), testConfig())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if !strings.Contains(w.Body.String(), `"status":"online"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func preflight(handler http.Handler, method, headers string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/extract-video", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", method)
	req.Header.Set("Access-Control-Request-Headers", headers)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestBuildHandlerPreflight(t *testing.T) {
	handler := buildHandler(newTestRouter(), testConfig())

	w := preflight(handler, "POST", "Content-Type")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Errorf("Access-Control-Allow-Headers = %q, want Content-Type", got)
	}
}

func TestBuildHandlerPreflightRejects(t *testing.T) {
	handler := buildHandler(newTestRouter(), testConfig())

	tests := []struct {
		name    string
		method  string
		headers string
		want    int
	}{
		{"method outside allowed set", "DELETE", "Content-Type", http.StatusMethodNotAllowed},
		{"header outside allowed set", "POST", "X-Api-Key", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := preflight(handler, tt.method, tt.headers); w.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestBuildHandlerInvalidBody(t *testing.T) {
	handler := buildHandler(newTestRouter(), testConfig())

	req := httptest.NewRequest(http.MethodPost, "/extract-video", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestBuildHandlerRecoversPanics(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	handler := buildHandler(panicking, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestSetupMetricsServer(t *testing.T) {
	srv := setupMetricsServer("9191")

	if srv.Addr != ":9191" {
		t.Errorf("Addr = %q, want :9191", srv.Addr)
	}
	if srv.WriteTimeout <= 0 || srv.ReadTimeout <= 0 {
		t.Error("metrics server timeouts should be positive")
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "video_downloader_") {
		t.Error("expected application metrics in /metrics output")
	}
}
