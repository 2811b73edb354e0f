package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-downloader/internal/extraction"
	"video-downloader/internal/handlers"
	"video-downloader/internal/logging"
	"video-downloader/internal/memory"
	"video-downloader/internal/metrics"
	"video-downloader/internal/middleware"
	"video-downloader/internal/startup"
	"video-downloader/internal/transcoder"
	"video-downloader/internal/ytdlp"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const collectorInterval = 15 * time.Second

func main() {
	startTime := time.Now()

	// Reserve room for engine processes before significant allocations
	memory.ConfigureFromEnv()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	metrics.InitializeMetrics()
	info := startup.GetBuildInfo()
	metrics.AppInfo.WithLabelValues(info.Version, info.Commit, info.GoVersion).Set(1)

	// Check external engines
	startup.LogEngineInit(config)

	svc := extraction.NewService(ytdlp.New(config.ExtractorPath))
	trans := transcoder.New(config.TranscoderConfig())

	var collector *metrics.Collector
	if config.MetricsEnabled {
		collector = metrics.NewCollector(trans, collectorInterval)
		collector.Start()
	}

	// Initialize handlers
	h := handlers.New(svc, trans)

	// Setup router
	router := setupRouter(h)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           buildHandler(router, config),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0, // downloads stream for as long as the engine produces output
		IdleTimeout:       60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsSrv = setupMetricsServer(config.MetricsPort)
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, collector, trans, config.ShutdownTimeout)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Home).Methods("GET", "HEAD")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET", "HEAD")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	r.HandleFunc("/extract-video", h.ExtractVideo).Methods("POST")
	r.HandleFunc("/stream-download", h.StreamDownload).Methods("POST")

	return r
}

// buildHandler wraps the router with the middleware chain:
// metrics -> logging -> recovery -> CORS -> router.
func buildHandler(router http.Handler, config *startup.Config) http.Handler {
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks

	cors := ghandlers.CORS(
		ghandlers.AllowedOrigins(config.CORSOrigins),
		ghandlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"}),
		ghandlers.AllowedHeaders([]string{"Content-Type"}),
		ghandlers.ExposedHeaders([]string{"Content-Disposition", middleware.StreamIDHeader}),
	)

	recovery := ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(recoveryLogger{}),
		ghandlers.PrintRecoveryStack(logging.IsDebugEnabled()),
	)

	handler := recovery(cors(router))
	handler = middleware.Logger(loggingConfig)(handler)
	return middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
}

func setupMetricsServer(port string) *http.Server {
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", handlers.MetricsHandler())

	return &http.Server{
		Addr:         ":" + port,
		Handler:      metricsMux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}

// recoveryLogger routes panics caught by the recovery handler into the
// application log.
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	logging.Error("Recovered from panic: %s", fmt.Sprint(v...))
}

func handleShutdown(srv, metricsSrv *http.Server, collector *metrics.Collector, trans *transcoder.Transcoder, timeout time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if collector != nil {
		startup.LogShutdownStep("Stopping metrics collector")
		collector.Stop()
		startup.LogShutdownStepComplete("Metrics collector stopped")
	}

	startup.LogShutdownStep("Stopping transcoding engines")
	trans.Cleanup()
	startup.LogShutdownStepComplete("Transcoding engines stopped")

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownComplete()
}
