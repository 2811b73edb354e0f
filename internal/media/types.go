package media

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Transport identifies how a rendition's bytes are delivered.
type Transport string

const (
	// TransportDirect is a single progressive file.
	TransportDirect Transport = "Direct"
	// TransportHLS is an HLS (.m3u8) manifest.
	TransportHLS Transport = "HLS"
	// TransportDASH is a DASH (.mpd) manifest.
	TransportDASH Transport = "DASH"
)

// NoCodec is the sentinel extractors use for a missing audio or video track.
const NoCodec = "none"

// OptFloat is a number that may be absent from extractor output.
type OptFloat struct {
	Value float64
	Valid bool
}

// Float returns a present OptFloat.
func Float(v float64) OptFloat {
	return OptFloat{Value: v, Valid: true}
}

// UnmarshalJSON accepts numbers, numeric strings and null. Anything else,
// including NaN and infinities, decodes as absent and never returns an error.
func (o *OptFloat) UnmarshalJSON(data []byte) error {
	*o = OptFloat{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return nil
		}
		raw = unquoted
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	*o = Float(v)
	return nil
}

// MarshalJSON writes the value, or null when absent.
func (o OptFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Positive returns the value when it is present and strictly positive.
func (o OptFloat) Positive() (float64, bool) {
	if !o.Valid || o.Value <= 0 {
		return 0, false
	}
	return o.Value, true
}

// Int returns the value truncated to an int, or 0 when absent.
func (o OptFloat) Int() int {
	if !o.Valid {
		return 0
	}
	return int(o.Value)
}

// Or returns the value, or def when absent.
func (o OptFloat) Or(def float64) float64 {
	if !o.Valid {
		return def
	}
	return o.Value
}

// Text is a string that may be absent or mistyped in extractor output.
// Numbers and booleans keep their literal form; objects and arrays decode
// as the empty string.
type Text string

// UnmarshalJSON never returns an error.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = ""

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*t = Text(s)
		}
	case '{', '[', 'n':
		// object, array or null
	default:
		*t = Text(data)
	}
	return nil
}

// String returns the plain string value.
func (t Text) String() string {
	return string(t)
}

// RawFormat is one format descriptor as reported by the extractor.
type RawFormat struct {
	URL            Text     `json:"url"`
	FormatID       Text     `json:"format_id"`
	VideoCodec     Text     `json:"vcodec"`
	AudioCodec     Text     `json:"acodec"`
	Height         OptFloat `json:"height"`
	Width          OptFloat `json:"width"`
	FPS            OptFloat `json:"fps"`
	Ext            Text     `json:"ext"`
	TotalBitrate   OptFloat `json:"tbr"`
	VideoBitrate   OptFloat `json:"vbr"`
	AudioBitrate   OptFloat `json:"abr"`
	Filesize       OptFloat `json:"filesize"`
	FilesizeApprox OptFloat `json:"filesize_approx"`
	FilesizeRaw    OptFloat `json:"filesize_raw"`
}

// Info is the page-level metadata returned by one extraction call.
type Info struct {
	Title       Text        `json:"title"`
	Thumbnail   Text        `json:"thumbnail"`
	Description Text        `json:"description"`
	Uploader    Text        `json:"uploader"`
	Duration    OptFloat    `json:"duration"`
	ViewCount   OptFloat    `json:"view_count"`
	LikeCount   OptFloat    `json:"like_count"`
	Formats     []RawFormat `json:"formats"`
}

// Rendition is one canonical, selectable downloadable video variant.
type Rendition struct {
	SourceURL     string    `json:"url"`
	FormatID      string    `json:"format_id"`
	Quality       string    `json:"quality"`
	Resolution    string    `json:"resolution"`
	SizeLabel     string    `json:"size"`
	SizeBytes     *int64    `json:"filesize_bytes"`
	DurationLabel string    `json:"duration"`
	Codec         string    `json:"codec"`
	Transport     Transport `json:"format_type"`
	Container     string    `json:"ext"`
	FPS           float64   `json:"fps"`
	HasAudio      bool      `json:"has_audio"`
}
