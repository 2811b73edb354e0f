// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig]:
//
//   - PORT: HTTP API port (default: 5000)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//   - EXTRACTOR_PATH: yt-dlp executable (default: yt-dlp)
//   - FFMPEG_PATH: ffmpeg executable (default: ffmpeg)
//   - TRANSCODE_PRESET: x264 preset (default: veryfast)
//   - TRANSCODE_CRF: x264 constant rate factor (default: 24)
//   - TRANSCODE_AUDIO_BITRATE: AAC bitrate (default: 128k)
//   - TRANSCODE_SAMPLE_RATE: audio sample rate in Hz (default: 44100)
//   - TRANSCODE_GRACE_PERIOD: time between interrupt and kill (default: 5s)
//   - DIAGNOSTIC_LINES: stderr lines kept for failure logs (default: 10)
//   - STREAM_CHUNK_SIZE: bytes per forwarded chunk (default: 65536)
//   - STREAM_WRITE_TIMEOUT: per-chunk write timeout, 0 disables (default: 0)
//   - STREAM_IDLE_TIMEOUT: max time between chunks, 0 disables (default: 0)
//   - CORS_ORIGINS: comma-separated allowed origins (default: *)
//   - SHUTDOWN_TIMEOUT: graceful shutdown budget (default: 30s)
//
// Invalid values fall back to their defaults with a warning. Only unusable
// ports are fatal.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Lifecycle Logging
//
//   - [LogEngineInit]: yt-dlp and FFmpeg availability
//   - [LogHTTPRoutes]: registered HTTP routes
//   - [LogServerStarted]: server endpoints and startup duration
//   - [LogShutdownInitiated], [LogShutdownComplete]: graceful shutdown
package startup
