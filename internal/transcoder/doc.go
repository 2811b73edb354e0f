// Package transcoder re-encodes a remote media source into a browser-playable
// fragmented MP4 using FFmpeg and streams it to the caller.
//
// It supports:
//   - A fixed output profile (H.264 main, AAC, fragmented MP4 on stdout),
//     applied to every source whether progressive, HLS or DASH
//   - Chunked forwarding of the engine's output as it is produced
//   - Concurrent draining of the engine's stderr into a bounded window of
//     recent lines used for failure logs
//   - Termination of the engine when the client disconnects: an interrupt
//     first, then a kill after the grace period
//   - Filename sanitization for Content-Disposition headers
//
// # Lifecycle
//
//	s, err := trans.Open(r.Context(), sourceURL)
//	if err != nil {
//	    // ErrSetupFailed: nothing has been sent yet
//	}
//	defer s.Close()
//	w.WriteHeader(http.StatusOK)
//	s.WriteTo(w)
//
// Close runs exactly once. It stops the engine if it is still running,
// closes both pipes, waits for the stderr reader and reaps the process.
//
// # Truncated responses
//
// The response status is sent before the engine has produced its output. If
// the engine then exits with an error, Close returns ErrEngineFailed and the
// failure is logged with the last diagnostic lines, but the client only sees
// a response that ends early. This is a known limitation of streaming the
// output instead of buffering it.
//
// Transcoding is performed using FFmpeg and requires it to be installed
// and available in the system PATH.
package transcoder
