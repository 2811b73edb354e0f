package memory

import (
	"fmt"
	"os"
	"runtime/debug"
	"strconv"

	"video-downloader/internal/logging"
)

// DefaultHeapRatio is the share of the container limit given to the Go heap.
// The rest is left to the ffmpeg and yt-dlp child processes.
const DefaultHeapRatio = 0.5

// Limit sources.
const (
	SourceGoMemLimit  = "GOMEMLIMIT"
	SourceMemoryLimit = "MEMORY_LIMIT"
	SourceNone        = "none"
)

// Limit describes the soft memory limit chosen for the Go runtime.
type Limit struct {
	// Source indicates where the limit came from
	Source string

	// ContainerLimit is MEMORY_LIMIT in bytes (0 if not set)
	ContainerLimit int64

	// GoMemLimit is the heap limit in bytes (0 when the runtime decides)
	GoMemLimit int64

	// Ratio is the heap ratio applied to ContainerLimit (0 if not applicable)
	Ratio float64
}

// Plan derives a Limit from the environment without applying it.
// An explicit GOMEMLIMIT is left to the runtime. Parse failures in
// MEMORY_RATIO fall back to DefaultHeapRatio; a malformed MEMORY_LIMIT
// is an error.
func Plan(getenv func(string) string) (Limit, error) {
	if getenv("GOMEMLIMIT") != "" {
		return Limit{Source: SourceGoMemLimit}, nil
	}

	raw := getenv("MEMORY_LIMIT")
	if raw == "" {
		return Limit{Source: SourceNone}, nil
	}

	containerLimit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || containerLimit <= 0 {
		return Limit{Source: SourceNone}, fmt.Errorf("invalid MEMORY_LIMIT %q", raw)
	}

	ratio := DefaultHeapRatio
	if s := getenv("MEMORY_RATIO"); s != "" {
		parsed, err := strconv.ParseFloat(s, 64)
		switch {
		case err != nil:
			logging.Warn("Failed to parse MEMORY_RATIO %q: %v, using default %.2f", s, err, DefaultHeapRatio)
		case parsed <= 0 || parsed > 1:
			logging.Warn("MEMORY_RATIO %q out of range (0.0-1.0], using default %.2f", s, DefaultHeapRatio)
		default:
			ratio = parsed
		}
	}

	return Limit{
		Source:         SourceMemoryLimit,
		ContainerLimit: containerLimit,
		GoMemLimit:     int64(float64(containerLimit) * ratio),
		Ratio:          ratio,
	}, nil
}

// ConfigureFromEnv sets the runtime soft memory limit from MEMORY_LIMIT and
// MEMORY_RATIO. Call it early in main, before significant allocations.
func ConfigureFromEnv() Limit {
	limit, err := Plan(os.Getenv)
	if err != nil {
		logging.Warn("Memory limit not configured: %v", err)
		return limit
	}

	switch limit.Source {
	case SourceGoMemLimit:
		logging.Info("GOMEMLIMIT set via environment: %s", os.Getenv("GOMEMLIMIT"))
	case SourceMemoryLimit:
		debug.SetMemoryLimit(limit.GoMemLimit)
		logging.Info("Configured GOMEMLIMIT: %s (%.0f%% of %s container limit)",
			formatBytes(limit.GoMemLimit), limit.Ratio*100, formatBytes(limit.ContainerLimit))
	default:
		logging.Debug("MEMORY_LIMIT not set, GOMEMLIMIT left to the runtime")
	}

	return limit
}

// formatBytes formats bytes into a human-readable string
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
