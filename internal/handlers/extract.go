package handlers

import (
	"errors"
	"net/http"

	"video-downloader/internal/extraction"
	"video-downloader/internal/logging"
)

// ExtractRequest is the body of POST /extract-video.
type ExtractRequest struct {
	URL string `json:"url"`
}

// ExtractVideo lists the downloadable renditions of a page.
func (h *Handlers) ExtractVideo(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		logging.Debug("extract-video: %v", err)
		writeJSONError(w, invalidRequestMessage, http.StatusBadRequest)
		return
	}

	result, err := h.extraction.Extract(r.Context(), req.URL)
	switch {
	case errors.Is(err, extraction.ErrInvalidInput):
		writeJSONError(w, "No URL provided", http.StatusBadRequest)
	case err != nil:
		writeJSONStatus(w, http.StatusInternalServerError, extraction.NewFailure(err))
	default:
		writeJSONStatus(w, http.StatusOK, result)
	}
}
