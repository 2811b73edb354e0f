// Package metrics provides Prometheus instrumentation for the video
// downloader service.
//
// All metrics are prefixed with "video_downloader_".
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Extraction Metrics
//
//   - ExtractionsTotal: Counter of extraction calls by status
//   - ExtractionDuration: Histogram of external extractor latency
//   - ExtractionRenditions: Histogram of renditions returned per extraction
//
// ## Transcoder Metrics
//
//   - TranscoderStreamsTotal: Counter of streams by outcome
//   - TranscoderStreamsInProgress: Gauge of running streams
//   - TranscoderBytesStreamed: Counter of MP4 bytes sent to clients
//   - TranscoderStreamDuration: Histogram of stream duration
//   - TranscoderEngineRSSBytes, TranscoderEngineCPUPercent: sampled by
//     [Collector] from the running engine processes
//
// # Exposing Metrics
//
// Metrics register with the default registry via promauto. The server mounts
// promhttp.Handler() on a separate port:
//
//	import "github.com/prometheus/client_golang/prometheus/promhttp"
//
//	mux.Handle("/metrics", promhttp.Handler())
package metrics
