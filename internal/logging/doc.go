// Package logging provides the leveled logger used throughout the service.
//
// Levels, lowest first:
//   - DEBUG: verbose diagnostics, including transcoder progress lines
//   - INFO: lifecycle and request summaries
//   - WARN: recoverable problems
//   - ERROR: failed extractions and transcodes
//
// The level comes from LOG_LEVEL (debug, info, warn, error; default info).
// DEBUG=true forces debug output. [Scoped] returns a [Logger] that tags each
// line, which the transcoder uses to tie a stream's log lines together.
package logging
