package startup

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"video-downloader/internal/logging"
	"video-downloader/internal/streaming"
	"video-downloader/internal/transcoder"
)

// Config holds all application configuration
type Config struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	LogHealthChecks bool

	ExtractorPath string
	FFmpegPath    string

	TranscodePreset       string
	TranscodeCRF          int
	TranscodeAudioBitrate string
	TranscodeSampleRate   int
	TranscodeGracePeriod  time.Duration
	DiagnosticLines       int

	StreamChunkSize    int
	StreamWriteTimeout time.Duration
	StreamIdleTimeout  time.Duration

	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// LoadConfig loads configuration from environment variables. Invalid values
// fall back to their defaults with a warning.
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logSection("CONFIGURATION")

	config := &Config{
		Port:            getEnv("PORT", "5000"),
		MetricsPort:     getEnv("METRICS_PORT", "9090"),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", true),
		LogHealthChecks: getEnvBool("LOG_HEALTH_CHECKS", true),

		ExtractorPath: getEnv("EXTRACTOR_PATH", "yt-dlp"),
		FFmpegPath:    getEnv("FFMPEG_PATH", "ffmpeg"),

		TranscodePreset:       getEnv("TRANSCODE_PRESET", "veryfast"),
		TranscodeCRF:          getEnvInt("TRANSCODE_CRF", 24),
		TranscodeAudioBitrate: getEnv("TRANSCODE_AUDIO_BITRATE", "128k"),
		TranscodeSampleRate:   getEnvInt("TRANSCODE_SAMPLE_RATE", 44100),
		TranscodeGracePeriod:  getEnvDuration("TRANSCODE_GRACE_PERIOD", 5*time.Second),
		DiagnosticLines:       getEnvInt("DIAGNOSTIC_LINES", 10),

		StreamChunkSize:    getEnvInt("STREAM_CHUNK_SIZE", streaming.DefaultChunkSize),
		StreamWriteTimeout: getEnvDuration("STREAM_WRITE_TIMEOUT", 0),
		StreamIdleTimeout:  getEnvDuration("STREAM_IDLE_TIMEOUT", 0),

		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"*"}),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	logging.Info("  PORT:                    %s", config.Port)
	logging.Info("  METRICS_PORT:            %s", config.MetricsPort)
	logging.Info("  METRICS_ENABLED:         %v", config.MetricsEnabled)
	logging.Info("  LOG_HEALTH_CHECKS:       %v", config.LogHealthChecks)
	logging.Info("  LOG_LEVEL:               %s", logging.GetLevel())
	logging.Info("  EXTRACTOR_PATH:          %s", config.ExtractorPath)
	logging.Info("  FFMPEG_PATH:             %s", config.FFmpegPath)
	logging.Info("  TRANSCODE_PRESET:        %s", config.TranscodePreset)
	logging.Info("  TRANSCODE_CRF:           %d", config.TranscodeCRF)
	logging.Info("  TRANSCODE_AUDIO_BITRATE: %s", config.TranscodeAudioBitrate)
	logging.Info("  TRANSCODE_SAMPLE_RATE:   %d", config.TranscodeSampleRate)
	logging.Info("  TRANSCODE_GRACE_PERIOD:  %v", config.TranscodeGracePeriod)
	logging.Info("  DIAGNOSTIC_LINES:        %d", config.DiagnosticLines)
	logging.Info("  STREAM_CHUNK_SIZE:       %d", config.StreamChunkSize)
	logging.Info("  STREAM_WRITE_TIMEOUT:    %s", durationOrDisabled(config.StreamWriteTimeout))
	logging.Info("  STREAM_IDLE_TIMEOUT:     %s", durationOrDisabled(config.StreamIdleTimeout))
	logging.Info("  CORS_ORIGINS:            %s", strings.Join(config.CORSOrigins, ","))
	logging.Info("  SHUTDOWN_TIMEOUT:        %v", config.ShutdownTimeout)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if err := validatePort("PORT", c.Port); err != nil {
		return err
	}
	if !c.MetricsEnabled {
		return nil
	}
	if err := validatePort("METRICS_PORT", c.MetricsPort); err != nil {
		return err
	}
	if c.MetricsPort == c.Port {
		return fmt.Errorf("METRICS_PORT must differ from PORT (both %s)", c.Port)
	}
	return nil
}

func validatePort(key, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid %s %q: must be a number between 1 and 65535", key, value)
	}
	return nil
}

// TranscoderConfig maps the environment settings onto the transcoder.
func (c *Config) TranscoderConfig() transcoder.Config {
	return transcoder.Config{
		Binary:          c.FFmpegPath,
		Preset:          c.TranscodePreset,
		CRF:             c.TranscodeCRF,
		AudioBitrate:    c.TranscodeAudioBitrate,
		SampleRate:      c.TranscodeSampleRate,
		GracePeriod:     c.TranscodeGracePeriod,
		DiagnosticLines: c.DiagnosticLines,
		Stream: streaming.Config{
			ChunkSize:    c.StreamChunkSize,
			WriteTimeout: c.StreamWriteTimeout,
			IdleTimeout:  c.StreamIdleTimeout,
		},
	}
}

func durationOrDisabled(d time.Duration) string {
	if d <= 0 {
		return "disabled"
	}
	return d.String()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		logging.Warn("Invalid positive integer for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed < 0 {
		logging.Warn("Invalid duration for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
