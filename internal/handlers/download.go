package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"video-downloader/internal/extraction"
	"video-downloader/internal/logging"
	"video-downloader/internal/middleware"
	"video-downloader/internal/streaming"
	"video-downloader/internal/transcoder"
)

// DownloadRequest is the body of POST /stream-download.
type DownloadRequest struct {
	URL      string `json:"url"`
	FormatID string `json:"format_id"`
}

// StreamDownload transcodes the selected rendition to MP4 and streams it.
//
// Errors before the engine starts are reported as JSON. Once the 200 header
// is sent, engine failures only end the body early and are logged.
func (h *Handlers) StreamDownload(w http.ResponseWriter, r *http.Request) {
	var req DownloadRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		logging.Debug("stream-download: %v", err)
		writeJSONError(w, invalidRequestMessage, http.StatusBadRequest)
		return
	}

	sel, err := h.extraction.Resolve(r.Context(), req.URL, req.FormatID)
	switch {
	case errors.Is(err, extraction.ErrInvalidInput):
		writeJSONError(w, "URL and format_id are required", http.StatusBadRequest)
		return
	case errors.Is(err, extraction.ErrFormatNotFound):
		writeJSONError(w, "Format not found", http.StatusBadRequest)
		return
	case err != nil:
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	stream, err := h.transcoder.Open(r.Context(), sel.SourceURL)
	if err != nil {
		if !errors.Is(err, transcoder.ErrSetupFailed) {
			logging.Error("stream-download: unexpected open error: %v", err)
		}
		writeJSONError(w, "Failed to start transcoding", http.StatusInternalServerError)
		return
	}
	defer func() {
		if err := stream.Close(); err != nil {
			logging.Warn("stream %s ended with error: %v", stream.ID, err)
		}
	}()

	filename := transcoder.SanitizeFilename(sel.Title)
	logging.Info("Streaming %s (format %s, %s) as %s", sel.SourceURL, sel.FormatID, sel.Transport, filename)

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(middleware.StreamIDHeader, stream.ID)
	w.WriteHeader(http.StatusOK)

	if _, err := stream.WriteTo(w); err != nil && !errors.Is(err, streaming.ErrClientGone) {
		logging.Warn("stream %s: %v", stream.ID, err)
	}
}
