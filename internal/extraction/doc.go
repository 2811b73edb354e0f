// Package extraction turns a media page URL into the ranked list of
// downloadable renditions returned by the API.
//
// A Service calls an Extractor (normally the yt-dlp client) once per request,
// keeps only formats that carry video, normalizes them and ranks them. There
// is no retry and no cache: every call reaches the extractor.
//
// Resolve is used by the download path. It re-extracts the page and looks up
// the requested format_id among all raw formats, because per-rendition URLs
// handed out by an earlier extraction may already have expired.
package extraction
