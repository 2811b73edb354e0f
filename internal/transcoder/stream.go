package transcoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"video-downloader/internal/logging"
	"video-downloader/internal/metrics"
	"video-downloader/internal/streaming"
)

// Stream is one running engine process and its MP4 output.
type Stream struct {
	// ID identifies the stream in logs and response headers.
	ID string

	ctx      context.Context
	cancel   context.CancelFunc
	cmd      *exec.Cmd
	stdout   io.ReadCloser
	stderr   io.ReadCloser
	diag     *diagBuffer
	diagDone chan struct{}
	config   Config
	log      *logging.Logger
	started  time.Time
	owner    *Transcoder

	mu       sync.Mutex
	written  int64
	drained  bool
	writeErr error

	closeOnce sync.Once
	closeErr  error
}

// PID returns the engine's process ID.
func (s *Stream) PID() int {
	if s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Diagnostics returns the last lines the engine wrote to stderr.
func (s *Stream) Diagnostics() []string {
	return s.diag.snapshot()
}

// WriteTo forwards the engine's output to w in chunks of Config.Stream.ChunkSize,
// flushing after each chunk when w is an http.Flusher. It returns when the
// engine closes its output or the stream's context is canceled.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	n, err := streaming.Copy(s.ctx, w, s.stdout, s.config.Stream)

	s.mu.Lock()
	s.written += n
	if err == nil {
		s.drained = true
	} else {
		s.writeErr = err
	}
	s.mu.Unlock()

	metrics.TranscoderBytesStreamed.Add(float64(n))
	return n, err
}

// Close terminates the engine if it is still running, releases both pipes
// and reaps the process. It is safe to call more than once; later calls
// return the first result.
//
// A non-zero engine exit after the output was fully read is reported as
// ErrEngineFailed. By then the response status has been sent, so callers can
// only log it.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.close()
	})
	return s.closeErr
}

func (s *Stream) close() error {
	s.mu.Lock()
	drained, written, writeErr := s.drained, s.written, s.writeErr
	s.mu.Unlock()

	if !drained {
		// Interrupt first; WaitDelay escalates to SIGKILL.
		s.cancel()
	}
	if err := s.stdout.Close(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		s.log.Debug("closing stdout: %v", err)
	}

	s.waitDiagnostics()

	waitErr := s.cmd.Wait()
	s.cancel()
	s.owner.unregister(s)

	duration := time.Since(s.started)
	metrics.TranscoderStreamsInProgress.Dec()
	metrics.TranscoderStreamDuration.Observe(duration.Seconds())

	switch {
	case !drained:
		metrics.TranscoderStreamsTotal.WithLabelValues(metrics.StreamClientGone).Inc()
		reason := "stream closed"
		if writeErr != nil {
			reason = writeErr.Error()
		}
		s.log.Info("stopped after %d bytes in %v: %s", written, duration, reason)
		return nil

	case waitErr != nil:
		metrics.TranscoderStreamsTotal.WithLabelValues(metrics.StreamEngineFailed).Inc()
		lines := s.diag.snapshot()
		s.log.Error("engine failed after %d bytes: %v", written, waitErr)
		for _, line := range lines {
			s.log.Error("  %s", line)
		}
		return fmt.Errorf("%w: %w (last output: %s)", ErrEngineFailed, waitErr, strings.Join(lines, " | "))

	default:
		metrics.TranscoderStreamsTotal.WithLabelValues(metrics.StreamCompleted).Inc()
		s.log.Info("completed: %d bytes in %v", written, duration)
		return nil
	}
}

// waitDiagnostics joins the stderr reader. If a descendant of the engine
// still holds the pipe open after the grace period, the read end is closed
// to unblock the reader.
func (s *Stream) waitDiagnostics() {
	timer := time.NewTimer(s.config.GracePeriod + time.Second)
	defer timer.Stop()

	select {
	case <-s.diagDone:
		return
	case <-timer.C:
		s.log.Warn("diagnostic channel still open after %v, closing it", s.config.GracePeriod)
		_ = s.stderr.Close()
		<-s.diagDone
	}
}
