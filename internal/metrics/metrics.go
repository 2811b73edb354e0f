package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_downloader_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_downloader_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_downloader_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Extraction metrics
var (
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_downloader_extractions_total",
			Help: "Total number of metadata extractions",
		},
		[]string{"status"}, // "success", "error"
	)

	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "video_downloader_extraction_duration_seconds",
			Help:    "Duration of external metadata extraction calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	ExtractionRenditions = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "video_downloader_extraction_renditions",
			Help:    "Number of renditions returned per successful extraction",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
	)
)

// Transcoder metrics
var (
	TranscoderStreamsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_downloader_transcoder_streams_total",
			Help: "Total number of transcode streams by outcome",
		},
		[]string{"status"}, // "completed", "client_gone", "engine_failed", "setup_failed"
	)

	TranscoderStreamsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_downloader_transcoder_streams_in_progress",
			Help: "Number of transcode streams currently running",
		},
	)

	TranscoderBytesStreamed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_downloader_transcoder_bytes_streamed_total",
			Help: "Total MP4 bytes forwarded to clients",
		},
	)

	TranscoderStreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "video_downloader_transcoder_stream_duration_seconds",
			Help:    "Transcode stream duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800},
		},
	)

	TranscoderEngineRSSBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_downloader_transcoder_engine_rss_bytes",
			Help: "Resident memory of all running transcoding engine processes",
		},
	)

	TranscoderEngineCPUPercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_downloader_transcoder_engine_cpu_percent",
			Help: "Summed CPU usage of all running transcoding engine processes",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "video_downloader_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)
