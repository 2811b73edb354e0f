package startup

import (
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
	if info.OS == "" || info.Arch == "" {
		t.Error("Expected OS and Arch to be set")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_SET_VAR", "custom")
	t.Setenv("TEST_EMPTY_VAR", "")

	if got := getEnv("TEST_SET_VAR", "default"); got != "custom" {
		t.Errorf("getEnv(set) = %q, want custom", got)
	}
	if got := getEnv("TEST_EMPTY_VAR", "default"); got != "default" {
		t.Errorf("getEnv(empty) = %q, want default", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"false", true, false},
		{"1", false, true},
		{"maybe", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := getEnvBool("TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 24},
		{"18", 18},
		{"abc", 24},
		{"0", 24},
		{"-3", 24},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			if got := getEnvInt("TEST_INT", 24); got != tt.want {
				t.Errorf("getEnvInt(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 5 * time.Second},
		{"250ms", 250 * time.Millisecond},
		{"0", 0},
		{"soon", 5 * time.Second},
		{"-1s", 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := getEnvDuration("TEST_DURATION", 5*time.Second); got != tt.want {
				t.Errorf("getEnvDuration(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_LIST", " https://a.example , ,https://b.example")
	want := []string{"https://a.example", "https://b.example"}
	if got := getEnvList("TEST_LIST", []string{"*"}); !reflect.DeepEqual(got, want) {
		t.Errorf("getEnvList() = %q, want %q", got, want)
	}

	t.Setenv("TEST_LIST", " , ")
	if got := getEnvList("TEST_LIST", []string{"*"}); !reflect.DeepEqual(got, []string{"*"}) {
		t.Errorf("getEnvList(blank) = %q, want default", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "METRICS_PORT", "METRICS_ENABLED", "EXTRACTOR_PATH", "FFMPEG_PATH",
		"TRANSCODE_PRESET", "TRANSCODE_CRF", "STREAM_CHUNK_SIZE", "STREAM_WRITE_TIMEOUT",
		"CORS_ORIGINS", "SHUTDOWN_TIMEOUT", "DIAGNOSTIC_LINES", "TRANSCODE_GRACE_PERIOD",
	} {
		t.Setenv(key, "")
	}

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Port != "5000" || config.MetricsPort != "9090" || !config.MetricsEnabled {
		t.Errorf("Unexpected server defaults %+v", config)
	}
	if config.ExtractorPath != "yt-dlp" || config.FFmpegPath != "ffmpeg" {
		t.Errorf("Unexpected tool defaults %+v", config)
	}
	if config.StreamChunkSize != 64*1024 || config.StreamWriteTimeout != 0 {
		t.Errorf("Unexpected stream defaults %+v", config)
	}
	if config.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected 30s shutdown timeout, got %v", config.ShutdownTimeout)
	}

	tc := config.TranscoderConfig()
	if tc.Preset != "veryfast" || tc.CRF != 24 || tc.DiagnosticLines != 10 || tc.GracePeriod != 5*time.Second {
		t.Errorf("Unexpected transcoder config %+v", tc)
	}
	if tc.Stream.ChunkSize != 64*1024 {
		t.Errorf("Expected 64 KiB chunks, got %d", tc.Stream.ChunkSize)
	}
}

func TestLoadConfigInvalidPorts(t *testing.T) {
	tests := []struct {
		name        string
		port        string
		metricsPort string
		metricsOn   string
		wantErr     bool
	}{
		{"valid", "8000", "9000", "true", false},
		{"non numeric", "http", "9000", "true", true},
		{"out of range", "70000", "9000", "true", true},
		{"same port", "8000", "8000", "true", true},
		{"same port metrics off", "8000", "8000", "false", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			t.Setenv("METRICS_PORT", tt.metricsPort)
			t.Setenv("METRICS_ENABLED", tt.metricsOn)

			_, err := LoadConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckBinary(t *testing.T) {
	if err := checkBinary(filepath.Join(t.TempDir(), "missing"), "--version"); err == nil {
		t.Error("Expected an error for a missing binary")
	}

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho 'tool 1.0'\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := checkBinary(path, "--version"); err != nil {
		t.Errorf("checkBinary() error = %v", err)
	}
}

func TestGetRoutes(t *testing.T) {
	router := mux.NewRouter()
	noop := func(http.ResponseWriter, *http.Request) {}
	router.HandleFunc("/stream-download", noop).Methods(http.MethodPost)
	router.HandleFunc("/", noop).Methods(http.MethodGet)
	router.HandleFunc("/extract-video", noop).Methods(http.MethodPost).Name("extract")

	routes, err := GetRoutes(router)
	if err != nil {
		t.Fatalf("GetRoutes() error = %v", err)
	}

	want := []RouteInfo{
		{Method: http.MethodGet, Path: "/"},
		{Method: http.MethodPost, Path: "/extract-video", Name: "extract"},
		{Method: http.MethodPost, Path: "/stream-download"},
	}
	if !reflect.DeepEqual(routes, want) {
		t.Errorf("GetRoutes() = %+v, want %+v", routes, want)
	}
}
