package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"video-downloader/internal/logging"
	"video-downloader/internal/media"
)

// DefaultBinary is looked up on PATH when no explicit path is configured.
const DefaultBinary = "yt-dlp"

// WaitDelay bounds how long Extract waits for the output pipes to close after
// the context is canceled and the extractor is killed. Children of a wrapper
// script can keep the pipes open past the kill.
const WaitDelay = 2 * time.Second

// Error is returned when yt-dlp fails or produces unusable output.
// Message is the human-readable reason, usually yt-dlp's "ERROR:" line.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client invokes yt-dlp.
type Client struct {
	binary string
	log    *logging.Logger
}

// New returns a client for the given executable. An empty path selects yt-dlp
// from PATH.
func New(binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{
		binary: binary,
		log:    logging.Scoped("yt-dlp"),
	}
}

// Args returns the command line used to extract pageURL.
func Args(pageURL string) []string {
	return []string{
		"--dump-single-json",
		"--no-warnings",
		"--no-playlist",
		"--skip-download",
		"--",
		pageURL,
	}
}

// Extract fetches metadata for pageURL. The call is bound to ctx; a canceled
// context kills the child process.
func (c *Client) Extract(ctx context.Context, pageURL string) (*media.Info, error) {
	cmd := exec.CommandContext(ctx, c.binary, Args(pageURL)...)
	cmd.WaitDelay = WaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	c.log.Debug("extraction of %s took %v", pageURL, time.Since(start))

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &Error{Message: fmt.Sprintf("extraction canceled: %v", ctxErr), Err: ctxErr}
		}
		msg := errorMessage(stderr.Bytes())
		if msg == "" {
			msg = err.Error()
		}
		c.log.Warn("extraction of %s failed: %s", pageURL, msg)
		return nil, &Error{Message: msg, Err: err}
	}

	var info media.Info
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid extractor output: %v", err), Err: err}
	}

	return &info, nil
}

// errorMessage picks the most useful line of yt-dlp's stderr: the last
// "ERROR:" line if any, else the last non-empty line.
func errorMessage(stderr []byte) string {
	var lastError, lastLine string
	scanner := bufio.NewScanner(bytes.NewReader(stderr))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lastLine = line
		if strings.HasPrefix(line, "ERROR:") {
			lastError = line
		}
	}
	if lastError != "" {
		return lastError
	}
	return lastLine
}
