package transcoder

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"sync"

	"video-downloader/internal/logging"
)

// diagBuffer keeps the last few lines written by the engine to stderr.
type diagBuffer struct {
	mu    sync.Mutex
	lines []string
	next  int
	full  bool
}

func newDiagBuffer(size int) *diagBuffer {
	if size <= 0 {
		size = 1
	}
	return &diagBuffer{lines: make([]string, size)}
}

func (d *diagBuffer) add(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lines[d.next] = line
	d.next = (d.next + 1) % len(d.lines)
	if d.next == 0 {
		d.full = true
	}
}

// snapshot returns the retained lines, oldest first.
func (d *diagBuffer) snapshot() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.full {
		return append([]string(nil), d.lines[:d.next]...)
	}
	out := make([]string, 0, len(d.lines))
	out = append(out, d.lines[d.next:]...)
	return append(out, d.lines[:d.next]...)
}

// scanDiagLines splits on '\n' or '\r'. ffmpeg rewrites its progress line
// with carriage returns.
func scanDiagLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func isProgressLine(line string) bool {
	return strings.Contains(line, "frame=") && strings.Contains(line, "fps=")
}

// drainDiagnostics reads r until EOF, recording non-empty lines. It never
// stops reading early, so the engine can never block on a full stderr pipe.
func drainDiagnostics(r io.Reader, buf *diagBuffer, log *logging.Logger) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4*1024), 64*1024)
	scanner.Split(scanDiagLines)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		buf.add(line)
		if isProgressLine(line) {
			log.Debug("progress: %s", line)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Debug("diagnostic scan stopped: %v", err)
		_, _ = io.Copy(io.Discard, r)
	}
}
