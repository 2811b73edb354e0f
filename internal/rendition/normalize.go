package rendition

import (
	"fmt"
	"math"
	"strings"

	"video-downloader/internal/media"
)

const (
	unknownLabel     = "Unknown"
	unknownSizeLabel = "Unknown size"
	bytesPerMB       = 1024 * 1024
)

// IsVideo reports whether f carries a video track. Audio-only formats are
// never download candidates.
func IsVideo(f media.RawFormat) bool {
	return f.VideoCodec.String() != media.NoCodec
}

// Normalize maps a raw format descriptor to its canonical rendition.
func Normalize(f media.RawFormat, duration media.OptFloat) media.Rendition {
	size := EstimateSize(f, duration)

	return media.Rendition{
		SourceURL:     f.URL.String(),
		FormatID:      f.FormatID.String(),
		Quality:       QualityLabel(f.Height, f.Width),
		Resolution:    resolutionLabel(f.Width, f.Height),
		SizeBytes:     size,
		SizeLabel:     SizeLabel(size),
		DurationLabel: DurationLabel(duration),
		Codec:         CodecLabel(f.VideoCodec.String()),
		Transport:     TransportOf(f.URL.String()),
		Container:     f.Ext.String(),
		FPS:           nonNegative(f.FPS),
		HasAudio:      f.AudioCodec.String() != media.NoCodec,
	}
}

// QualityLabel returns "{height}p", falling back to a 16:9 height derived
// from the width.
func QualityLabel(height, width media.OptFloat) string {
	if h, ok := height.Positive(); ok {
		return fmt.Sprintf("%dp", int(h))
	}
	if w, ok := width.Positive(); ok {
		return fmt.Sprintf("%dp", int(math.Round(w*9/16)))
	}
	return unknownLabel
}

func resolutionLabel(width, height media.OptFloat) string {
	w, wok := width.Positive()
	h, hok := height.Positive()
	if !wok || !hok {
		return unknownLabel
	}
	return fmt.Sprintf("%dx%d", int(w), int(h))
}

// SizeLabel formats a byte count in mebibytes with one decimal.
func SizeLabel(size *int64) string {
	if size == nil {
		return unknownSizeLabel
	}
	return fmt.Sprintf("%.1f MB", float64(*size)/bytesPerMB)
}

// DurationLabel formats seconds as M:SS.
func DurationLabel(duration media.OptFloat) string {
	seconds, ok := duration.Positive()
	if !ok {
		return unknownLabel
	}
	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// CodecLabel classifies a raw video codec string.
func CodecLabel(vcodec string) string {
	lower := strings.ToLower(vcodec)
	switch {
	case strings.Contains(lower, "av1"):
		return "AV1"
	case strings.Contains(lower, "h264"), strings.Contains(lower, "avc"):
		return "H264"
	case strings.Contains(lower, "vp9"):
		return "VP9"
	}
	prefix, _, _ := strings.Cut(vcodec, ".")
	return prefix
}

// TransportOf infers the delivery mechanism from a resource URL.
func TransportOf(url string) media.Transport {
	switch {
	case strings.Contains(url, ".m3u8"):
		return media.TransportHLS
	case strings.Contains(url, ".mpd"):
		return media.TransportDASH
	default:
		return media.TransportDirect
	}
}

func nonNegative(o media.OptFloat) float64 {
	if v, ok := o.Positive(); ok {
		return v
	}
	return 0
}
