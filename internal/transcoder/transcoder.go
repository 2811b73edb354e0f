package transcoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"video-downloader/internal/logging"
	"video-downloader/internal/metrics"
	"video-downloader/internal/streaming"

	"github.com/google/uuid"
)

// Sentinel errors for transcoding.
var (
	// ErrSetupFailed indicates that the engine could not be started. Nothing
	// has been written to the client when this is returned.
	ErrSetupFailed = errors.New("transcode setup failed")

	// ErrEngineFailed indicates that the engine exited with an error after
	// streaming began.
	ErrEngineFailed = errors.New("transcoding engine failed")
)

// Config holds engine and streaming settings.
type Config struct {
	// Binary is the ffmpeg executable.
	Binary       string
	Preset       string
	CRF          int
	AudioBitrate string
	SampleRate   int
	// GracePeriod is how long the engine may take to exit after an
	// interrupt before it is killed.
	GracePeriod time.Duration
	// DiagnosticLines is the number of stderr lines kept for failure logs.
	DiagnosticLines int
	Stream          streaming.Config
}

// DefaultConfig returns the fixed compatibility profile.
func DefaultConfig() Config {
	return Config{
		Binary:          "ffmpeg",
		Preset:          "veryfast",
		CRF:             24,
		AudioBitrate:    "128k",
		SampleRate:      44100,
		GracePeriod:     5 * time.Second,
		DiagnosticLines: 10,
		Stream:          streaming.DefaultConfig(),
	}
}

// Transcoder spawns engine processes and tracks them for shutdown.
type Transcoder struct {
	config    Config
	processes map[string]*Stream
	processMu sync.Mutex
}

// New creates a new Transcoder. Zero fields of config take their defaults.
func New(config Config) *Transcoder {
	def := DefaultConfig()
	if config.Binary == "" {
		config.Binary = def.Binary
	}
	if config.Preset == "" {
		config.Preset = def.Preset
	}
	if config.CRF <= 0 {
		config.CRF = def.CRF
	}
	if config.AudioBitrate == "" {
		config.AudioBitrate = def.AudioBitrate
	}
	if config.SampleRate <= 0 {
		config.SampleRate = def.SampleRate
	}
	if config.GracePeriod <= 0 {
		config.GracePeriod = def.GracePeriod
	}
	if config.DiagnosticLines <= 0 {
		config.DiagnosticLines = def.DiagnosticLines
	}
	if config.Stream.ChunkSize <= 0 {
		config.Stream.ChunkSize = def.Stream.ChunkSize
	}

	return &Transcoder{
		config:    config,
		processes: make(map[string]*Stream),
	}
}

// Config returns the effective configuration.
func (t *Transcoder) Config() Config {
	return t.config
}

// Args returns the engine command line for sourceURL. The output profile is
// fixed: H.264 main / AAC in fragmented MP4 on stdout, whatever the source.
func (t *Transcoder) Args(sourceURL string) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-i", sourceURL,
		"-c:v", "libx264",
		"-preset", t.config.Preset,
		"-crf", strconv.Itoa(t.config.CRF),
		"-pix_fmt", "yuv420p",
		"-profile:v", "main",
		"-c:a", "aac",
		"-b:a", t.config.AudioBitrate,
		"-ar", strconv.Itoa(t.config.SampleRate),
		"-max_muxing_queue_size", "9999",
		"-movflags", "frag_keyframe+empty_moov+faststart",
		"-f", "mp4",
		"pipe:1",
	}
}

// Open starts the engine for sourceURL. The engine runs until its output is
// consumed, ctx is canceled, or the returned Stream is closed. Callers must
// always Close the stream.
func (t *Transcoder) Open(ctx context.Context, sourceURL string) (*Stream, error) {
	if sourceURL == "" {
		metrics.TranscoderStreamsTotal.WithLabelValues(metrics.StreamSetupFailed).Inc()
		return nil, fmt.Errorf("%w: empty source url", ErrSetupFailed)
	}

	id := uuid.NewString()
	log := logging.Scoped("stream-" + id[:8])

	streamCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(streamCtx, t.config.Binary, t.Args(sourceURL)...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = t.config.GracePeriod

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, t.setupFailed(log, "failed to create stdout pipe", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return nil, t.setupFailed(log, "failed to create stderr pipe", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, t.setupFailed(log, "failed to start "+t.config.Binary, err)
	}

	s := &Stream{
		ID:       id,
		ctx:      streamCtx,
		cancel:   cancel,
		cmd:      cmd,
		stdout:   stdout,
		stderr:   stderr,
		diag:     newDiagBuffer(t.config.DiagnosticLines),
		diagDone: make(chan struct{}),
		config:   t.config,
		log:      log,
		started:  time.Now(),
		owner:    t,
	}

	go func() {
		defer close(s.diagDone)
		drainDiagnostics(stderr, s.diag, log)
	}()

	t.register(s)
	metrics.TranscoderStreamsInProgress.Inc()
	log.Info("engine started (pid %d)", cmd.Process.Pid)

	return s, nil
}

func (t *Transcoder) setupFailed(log *logging.Logger, msg string, err error) error {
	metrics.TranscoderStreamsTotal.WithLabelValues(metrics.StreamSetupFailed).Inc()
	log.Error("%s: %v", msg, err)
	return fmt.Errorf("%w: %s: %w", ErrSetupFailed, msg, err)
}

func (t *Transcoder) register(s *Stream) {
	t.processMu.Lock()
	t.processes[s.ID] = s
	t.processMu.Unlock()
}

func (t *Transcoder) unregister(s *Stream) {
	t.processMu.Lock()
	delete(t.processes, s.ID)
	t.processMu.Unlock()
}

// Active returns the number of running engines.
func (t *Transcoder) Active() int {
	t.processMu.Lock()
	defer t.processMu.Unlock()
	return len(t.processes)
}

// EnginePIDs returns the process IDs of running engines.
func (t *Transcoder) EnginePIDs() []int32 {
	t.processMu.Lock()
	defer t.processMu.Unlock()

	pids := make([]int32, 0, len(t.processes))
	for _, s := range t.processes {
		if pid := s.PID(); pid > 0 {
			pids = append(pids, int32(pid))
		}
	}
	return pids
}

// Cleanup stops all active transcoding processes.
func (t *Transcoder) Cleanup() {
	t.processMu.Lock()
	streams := make([]*Stream, 0, len(t.processes))
	for _, s := range t.processes {
		streams = append(streams, s)
	}
	t.processMu.Unlock()

	for _, s := range streams {
		logging.Info("Stopping transcoding process for stream %s", s.ID)
		s.cancel()
	}
}
