// Package ytdlp runs the yt-dlp executable to extract page metadata.
//
// The client asks yt-dlp for a single JSON document describing the page
// (--dump-single-json) without downloading anything, and decodes it into a
// media.Info. Failures carry yt-dlp's own error line so callers can pass it
// through to API clients unchanged.
package ytdlp
