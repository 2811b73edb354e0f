package handlers

import (
	"time"

	"video-downloader/internal/extraction"
	"video-downloader/internal/transcoder"
)

// maxRequestBody bounds JSON request bodies.
const maxRequestBody = 1 << 20

// Handlers serves the HTTP API.
type Handlers struct {
	extraction *extraction.Service
	transcoder *transcoder.Transcoder
	startTime  time.Time
}

// New creates the API handlers.
func New(svc *extraction.Service, trans *transcoder.Transcoder) *Handlers {
	return &Handlers{
		extraction: svc,
		transcoder: trans,
		startTime:  time.Now(),
	}
}
