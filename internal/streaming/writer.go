package streaming

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"video-downloader/internal/logging"
)

// Sentinel errors for streaming operations.
var (
	// ErrWriteTimeout indicates that a single write exceeded WriteTimeout.
	ErrWriteTimeout = errors.New("write timeout exceeded")

	// ErrIdleTimeout indicates that no data was written for IdleTimeout.
	ErrIdleTimeout = errors.New("stream idle timeout exceeded")

	// ErrClientGone indicates that the client disconnected before the stream completed.
	// This is detected via the request context being canceled.
	ErrClientGone = errors.New("client disconnected")

	// ErrStreamCanceled indicates that the writer was closed while still in use.
	ErrStreamCanceled = errors.New("stream canceled")
)

// DefaultChunkSize is the size of each forwarded chunk.
const DefaultChunkSize = 64 * 1024

// Config configures the chunked writer.
type Config struct {
	// ChunkSize is the maximum size of a single forwarded chunk.
	ChunkSize int
	// WriteTimeout bounds a single write to the client (0 = disabled).
	// HTTP responses get a connection write deadline, so a stalled write
	// fails in place. Writers without deadline support are written from a
	// helper goroutine; after a timeout that goroutine may still be inside
	// Write when Copy returns.
	WriteTimeout time.Duration
	// IdleTimeout bounds the time between successful writes (0 = disabled).
	IdleTimeout time.Duration
}

// DefaultConfig returns 64 KiB chunks with no timeouts.
func DefaultConfig() Config {
	return Config{ChunkSize: DefaultChunkSize}
}

// ChunkWriter forwards data to an HTTP response in bounded chunks, flushing
// after each one.
type ChunkWriter struct {
	w            io.Writer
	flusher      http.Flusher
	rc           *http.ResponseController
	ctx          context.Context
	cancel       context.CancelCauseFunc
	config       Config
	startTime    time.Time
	lastWrite    time.Time
	bytesWritten int64
	chunks       int64
	mu           sync.Mutex
	closed       bool
}

// NewChunkWriter wraps w. The writer stops accepting data once ctx is done.
func NewChunkWriter(ctx context.Context, w io.Writer, config Config) *ChunkWriter {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}
	writerCtx, cancel := context.WithCancelCause(ctx)

	now := time.Now()
	cw := &ChunkWriter{
		w:         w,
		ctx:       writerCtx,
		cancel:    cancel,
		config:    config,
		startTime: now,
		lastWrite: now,
	}
	if f, ok := w.(http.Flusher); ok {
		cw.flusher = f
	}
	if rw, ok := w.(http.ResponseWriter); ok && config.WriteTimeout > 0 {
		rc := http.NewResponseController(rw)
		if err := rc.SetWriteDeadline(time.Time{}); err == nil {
			cw.rc = rc
		}
	}

	if config.IdleTimeout > 0 {
		go cw.idleChecker()
	}

	return cw
}

// Write implements io.Writer. Payloads larger than ChunkSize are split.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.mu.Lock()
	closed := cw.closed
	cw.mu.Unlock()
	if closed {
		return 0, ErrStreamCanceled
	}

	total := 0
	for len(p) > 0 {
		if err := cw.Err(); err != nil {
			return total, err
		}

		size := min(len(p), cw.config.ChunkSize)
		n, err := cw.writeChunk(p[:size])
		total += n
		if err != nil {
			return total, err
		}
		p = p[size:]
	}
	return total, nil
}

func (cw *ChunkWriter) writeChunk(p []byte) (int, error) {
	var n int
	var err error
	switch {
	case cw.rc != nil:
		n, err = cw.writeWithDeadline(p)
	case cw.config.WriteTimeout > 0:
		n, err = cw.writeWithTimeout(p)
	default:
		n, err = cw.w.Write(p)
	}
	if err != nil {
		return n, err
	}

	if cw.rc == nil && cw.flusher != nil {
		cw.flusher.Flush()
	}

	cw.mu.Lock()
	cw.lastWrite = time.Now()
	cw.bytesWritten += int64(n)
	cw.chunks++
	cw.mu.Unlock()

	return n, nil
}

// writeWithDeadline writes and flushes p under a connection write deadline.
func (cw *ChunkWriter) writeWithDeadline(p []byte) (int, error) {
	deadline := time.Now().Add(cw.config.WriteTimeout)
	if err := cw.rc.SetWriteDeadline(deadline); err != nil {
		return 0, err
	}

	n, err := cw.w.Write(p)
	if err == nil {
		err = cw.rc.Flush()
	}
	if err != nil && !time.Now().Before(deadline) {
		cw.cancel(ErrWriteTimeout)
		return n, ErrWriteTimeout
	}
	return n, err
}

// writeWithTimeout performs a single write bounded by WriteTimeout
func (cw *ChunkWriter) writeWithTimeout(p []byte) (int, error) {
	type writeResult struct {
		n   int
		err error
	}
	resultCh := make(chan writeResult, 1)

	go func() {
		n, err := cw.w.Write(p)
		resultCh <- writeResult{n, err}
	}()

	timer := time.NewTimer(cw.config.WriteTimeout)
	defer timer.Stop()

	select {
	case result := <-resultCh:
		return result.n, result.err
	case <-timer.C:
		cw.cancel(ErrWriteTimeout)
		return 0, ErrWriteTimeout
	case <-cw.ctx.Done():
		return 0, cw.Err()
	}
}

func (cw *ChunkWriter) idleChecker() {
	ticker := time.NewTicker(max(cw.config.IdleTimeout/4, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cw.mu.Lock()
			idle := time.Since(cw.lastWrite)
			cw.mu.Unlock()

			if idle > cw.config.IdleTimeout {
				logging.Warn("Stream idle timeout exceeded: %v", idle)
				cw.cancel(ErrIdleTimeout)
				return
			}

		case <-cw.ctx.Done():
			return
		}
	}
}

// Err reports why the writer stopped accepting data, or nil while it is live.
func (cw *ChunkWriter) Err() error {
	if cw.ctx.Err() == nil {
		return nil
	}
	cause := context.Cause(cw.ctx)
	switch {
	case errors.Is(cause, ErrWriteTimeout), errors.Is(cause, ErrIdleTimeout), errors.Is(cause, ErrStreamCanceled):
		return cause
	case errors.Is(cause, context.DeadlineExceeded):
		return ErrWriteTimeout
	default:
		return ErrClientGone
	}
}

// Close stops the writer. It is safe to call more than once.
func (cw *ChunkWriter) Close() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.closed {
		return nil
	}
	cw.closed = true
	cw.cancel(ErrStreamCanceled)
	if cw.rc != nil {
		if err := cw.rc.SetWriteDeadline(time.Time{}); err != nil {
			logging.Debug("Failed to clear write deadline: %v", err)
		}
	}
	return nil
}

// Stats returns the bytes and chunks written so far and the elapsed time.
func (cw *ChunkWriter) Stats() (bytesWritten, chunks int64, duration time.Duration) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.bytesWritten, cw.chunks, time.Since(cw.startTime)
}

// Copy reads r in ChunkSize pieces and forwards each piece to w as soon as it
// is read, flushing after every chunk. A read returning io.EOF ends the copy
// with a nil error unless ctx was canceled first.
func Copy(ctx context.Context, w io.Writer, r io.Reader, config Config) (int64, error) {
	cw := NewChunkWriter(ctx, w, config)
	defer func() {
		if err := cw.Close(); err != nil {
			logging.Warn("Failed to close chunk writer: %v", err)
		}
	}()

	buf := make([]byte, cw.config.ChunkSize)
	var written int64
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			wn, werr := cw.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, werr
			}
		}
		if rerr != nil {
			// A producer killed because the client left also ends in EOF.
			if err := cw.Err(); err != nil {
				return written, err
			}
			if rerr == io.EOF {
				break
			}
			return written, rerr
		}
	}

	bytesWritten, chunks, duration := cw.Stats()
	logging.Debug("Stream completed: %d bytes in %d chunks over %v", bytesWritten, chunks, duration)
	return written, nil
}
