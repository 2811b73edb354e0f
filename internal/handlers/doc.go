// Package handlers implements the HTTP API.
//
// Routes:
//   - GET /: static service description
//   - GET /healthz: health with active stream count
//   - GET /livez: liveness probe
//   - GET /version: build information
//   - POST /extract-video: ranked renditions of a page
//   - POST /stream-download: transcoded MP4 of one rendition, streamed
//
// Request bodies are JSON. Errors are returned as {"error": "..."} except for
// extraction failures on /extract-video, which use the full failure envelope
// {"success": false, "error": "...", "downloadable_videos": []}.
package handlers
