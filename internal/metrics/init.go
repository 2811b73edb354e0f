package metrics

// Stream outcome labels for TranscoderStreamsTotal.
const (
	StreamCompleted    = "completed"
	StreamClientGone   = "client_gone"
	StreamEngineFailed = "engine_failed"
	StreamSetupFailed  = "setup_failed"
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, status := range []string{"success", "error"} {
		ExtractionsTotal.WithLabelValues(status)
	}

	for _, status := range []string{StreamCompleted, StreamClientGone, StreamEngineFailed, StreamSetupFailed} {
		TranscoderStreamsTotal.WithLabelValues(status)
	}
}
