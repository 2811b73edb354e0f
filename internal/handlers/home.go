package handlers

import "net/http"

// HomeResponse describes the service.
type HomeResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

var homeResponse = HomeResponse{
	Status:  "online",
	Message: "Video Downloader Backend is running",
	Endpoints: map[string]string{
		"POST /extract-video":   "Extract video info from URL",
		"POST /stream-download": "Stream download video",
		"GET /":                 "Health check",
	},
}

// Home returns a static service description.
func (h *Handlers) Home(w http.ResponseWriter, _ *http.Request) {
	writeJSONStatus(w, http.StatusOK, homeResponse)
}
