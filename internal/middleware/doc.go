// Package middleware provides HTTP middleware for the video downloader.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics with bounded path cardinality
//
// Both wrappers forward http.Flusher so chunked MP4 responses keep flushing
// through the middleware chain.
package middleware
