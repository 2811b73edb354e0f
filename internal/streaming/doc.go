/*
Package streaming forwards a byte stream to an HTTP response in bounded,
individually flushed chunks.

A ChunkWriter splits writes into pieces of at most Config.ChunkSize bytes
(64 KiB by default) and flushes the response after each piece, so the client
starts receiving data as soon as the producer emits it. The writer is bound to
a context, normally the request context: once the client disconnects every
further write fails with ErrClientGone, which callers treat as a normal end of
stream.

Optional write and idle timeouts guard against stalled clients. Both are
disabled when zero.

	n, err := streaming.Copy(r.Context(), w, stdout, streaming.DefaultConfig())
	if errors.Is(err, streaming.ErrClientGone) {
		return
	}

Copy reads with a buffer of exactly ChunkSize bytes rather than relying on
io.Copy, whose buffer size depends on the reader and writer types involved.
*/
package streaming
