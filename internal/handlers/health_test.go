package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthCheck(t *testing.T) {
	h := newTestHandlers(t, &fakeExtractor{}, "ffmpeg")

	w := httptest.NewRecorder()
	h.HealthCheck(w, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected healthy, got %q", resp.Status)
	}
	if resp.ActiveStreams != 0 {
		t.Errorf("Expected 0 active streams, got %d", resp.ActiveStreams)
	}
	if resp.GoVersion == "" || resp.Uptime == "" {
		t.Errorf("Expected runtime fields to be set: %+v", resp)
	}
}

func TestLivenessCheck(t *testing.T) {
	tests := []struct {
		method   string
		wantBody bool
	}{
		{http.MethodGet, true},
		{http.MethodHead, false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			h := &Handlers{}
			w := httptest.NewRecorder()
			h.LivenessCheck(w, httptest.NewRequest(tt.method, "/livez", http.NoBody))

			if w.Code != http.StatusOK {
				t.Errorf("Expected status 200, got %d", w.Code)
			}
			if got := w.Body.Len() > 0; got != tt.wantBody {
				t.Errorf("body present = %v, want %v", got, tt.wantBody)
			}
		})
	}
}
