// Package main provides the entry point for the Video Downloader backend.
//
// Video Downloader is a small HTTP service that inspects a web page with
// yt-dlp, reports the video renditions it offers, and streams a chosen
// rendition back to the client as an MP4 transcoded on the fly by FFmpeg.
//
// # Application Lifecycle
//
//  1. Memory Configuration: Sets GOMEMLIMIT from MEMORY_LIMIT if present
//  2. Configuration Loading: Reads environment variables and validates ports
//  3. Engine Checks: Verifies yt-dlp and ffmpeg respond (warning only)
//  4. Component Initialization:
//     - Extraction service backed by the yt-dlp client
//     - Transcoder that owns every running ffmpeg process
//     - Metrics collector sampling ffmpeg memory and CPU usage
//  5. HTTP Server Setup: Configures routes, middleware, and starts servers
//  6. Graceful Shutdown: Handles SIGINT/SIGTERM, stops engines and servers
//
// # HTTP Server
//
//  1. Main Server (default port 5000):
//     - GET  /                 service description
//     - POST /extract-video    ranked renditions for a page URL
//     - POST /stream-download  chunked MP4 download of one rendition
//     - GET  /healthz, /livez  health probes
//     - GET  /version          build information
//
//  2. Metrics Server (default port 9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//
// The main server has no write timeout; a download lasts as long as the
// engine keeps producing output. Stalled clients are handled by the
// STREAM_WRITE_TIMEOUT and STREAM_IDLE_TIMEOUT settings instead.
//
// # Environment Variables
//
//   - PORT: HTTP port (default: 5000)
//   - METRICS_PORT: Prometheus port (default: 9090)
//   - METRICS_ENABLED: Serve metrics (default: true)
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_HEALTH_CHECKS: Log probe requests (default: true)
//   - EXTRACTOR_PATH: yt-dlp binary (default: yt-dlp)
//   - FFMPEG_PATH: ffmpeg binary (default: ffmpeg)
//   - TRANSCODE_PRESET, TRANSCODE_CRF, TRANSCODE_AUDIO_BITRATE,
//     TRANSCODE_SAMPLE_RATE: encoder settings
//   - TRANSCODE_GRACE_PERIOD: Wait after interrupt before killing (default: 5s)
//   - DIAGNOSTIC_LINES: Engine stderr lines kept per stream (default: 10)
//   - STREAM_CHUNK_SIZE: Bytes per flushed chunk (default: 65536)
//   - STREAM_WRITE_TIMEOUT, STREAM_IDLE_TIMEOUT: 0 disables (default: 0)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
//   - SHUTDOWN_TIMEOUT: Graceful shutdown limit (default: 30s)
//   - MEMORY_LIMIT, MEMORY_RATIO: Container memory and Go heap share
package main
