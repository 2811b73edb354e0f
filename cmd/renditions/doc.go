// Package main provides a command-line tool that prints the renditions
// available for a page URL.
//
// It runs the same extraction and ranking as POST /extract-video. On a
// terminal the result is a table sized to the window; when stdout is piped
// the full JSON envelope is written instead.
//
// Usage:
//
//	renditions https://example.com/watch?v=abc
//	renditions https://example.com/watch?v=abc | jq '.downloadable_videos[0]'
package main
