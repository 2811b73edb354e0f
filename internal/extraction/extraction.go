package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"video-downloader/internal/logging"
	"video-downloader/internal/media"
	"video-downloader/internal/metrics"
	"video-downloader/internal/rendition"
)

// Sentinel errors, matched with errors.Is at the HTTP boundary.
var (
	// ErrInvalidInput indicates a missing or empty required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtractionFailed indicates that the metadata extractor failed.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrFormatNotFound indicates that the requested format_id is not present
	// in the current extraction.
	ErrFormatNotFound = errors.New("format not found")
)

const (
	defaultTitle         = "Unknown Title"
	defaultDownloadTitle = "video"
)

// Extractor fetches page metadata.
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (*media.Info, error)
}

// Result is the response envelope of a successful extraction.
type Result struct {
	Success         bool              `json:"success"`
	Title           string            `json:"title"`
	URL             string            `json:"url"`
	Thumbnail       string            `json:"thumbnail"`
	Description     string            `json:"description"`
	Uploader        string            `json:"uploader"`
	DurationSeconds float64           `json:"duration_seconds"`
	ViewCount       int64             `json:"view_count"`
	LikeCount       int64             `json:"like_count"`
	Videos          []media.Rendition `json:"downloadable_videos"`
}

// Failure is the response envelope of a failed extraction.
type Failure struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Videos  []media.Rendition `json:"downloadable_videos"`
}

// NewFailure builds a failure envelope carrying err's message.
func NewFailure(err error) Failure {
	return Failure{
		Success: false,
		Error:   err.Error(),
		Videos:  []media.Rendition{},
	}
}

// Selection identifies the source to transcode for a download request.
type Selection struct {
	SourceURL string
	FormatID  string
	Title     string
	Transport media.Transport
}

// failure wraps an extractor error so that its message passes through
// unchanged while still matching ErrExtractionFailed.
type failure struct {
	err error
}

func (f *failure) Error() string {
	return f.err.Error()
}

func (f *failure) Unwrap() error {
	return f.err
}

func (f *failure) Is(target error) bool {
	return target == ErrExtractionFailed
}

// Service orchestrates extraction.
type Service struct {
	extractor Extractor
	log       *logging.Logger
}

// NewService creates a Service backed by extractor.
func NewService(extractor Extractor) *Service {
	return &Service{
		extractor: extractor,
		log:       logging.Scoped("extraction"),
	}
}

// Extract returns the ranked renditions of pageURL.
func (s *Service) Extract(ctx context.Context, pageURL string) (*Result, error) {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}

	info, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	videos := Renditions(info)
	metrics.ExtractionRenditions.Observe(float64(len(videos)))

	title := info.Title.String()
	if title == "" {
		title = defaultTitle
	}

	s.log.Info("extracted %d renditions from %d formats for %s", len(videos), len(info.Formats), pageURL)

	return &Result{
		Success:         true,
		Title:           title,
		URL:             pageURL,
		Thumbnail:       info.Thumbnail.String(),
		Description:     info.Description.String(),
		Uploader:        info.Uploader.String(),
		DurationSeconds: info.Duration.Or(0),
		ViewCount:       int64(info.ViewCount.Or(0)),
		LikeCount:       int64(info.LikeCount.Or(0)),
		Videos:          videos,
	}, nil
}

// Resolve re-extracts pageURL and returns the source of formatID.
func (s *Service) Resolve(ctx context.Context, pageURL, formatID string) (*Selection, error) {
	pageURL = strings.TrimSpace(pageURL)
	formatID = strings.TrimSpace(formatID)
	if pageURL == "" || formatID == "" {
		return nil, fmt.Errorf("%w: url and format_id are required", ErrInvalidInput)
	}

	info, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	for _, f := range info.Formats {
		if f.FormatID.String() != formatID || f.URL == "" {
			continue
		}

		title := info.Title.String()
		if title == "" {
			title = defaultDownloadTitle
		}
		src := f.URL.String()
		return &Selection{
			SourceURL: src,
			FormatID:  formatID,
			Title:     title,
			Transport: rendition.TransportOf(src),
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrFormatNotFound, formatID)
}

// Renditions filters, normalizes and ranks the formats of info.
func Renditions(info *media.Info) []media.Rendition {
	candidates := make([]media.Rendition, 0, len(info.Formats))
	for _, f := range info.Formats {
		if !rendition.IsVideo(f) {
			continue
		}
		candidates = append(candidates, rendition.Normalize(f, info.Duration))
	}
	return rendition.Rank(candidates)
}

func (s *Service) fetch(ctx context.Context, pageURL string) (*media.Info, error) {
	start := time.Now()
	info, err := s.extractor.Extract(ctx, pageURL)
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())

	if err == nil && info == nil {
		err = errors.New("extractor returned no metadata")
	}
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("error").Inc()
		s.log.Warn("extraction failed for %s: %v", pageURL, err)
		return nil, &failure{err: err}
	}

	metrics.ExtractionsTotal.WithLabelValues("success").Inc()
	return info, nil
}
