package media

import (
	"encoding/json"
	"testing"
)

func TestTransportConstants(t *testing.T) {
	tests := []struct {
		transport Transport
		expected  string
	}{
		{TransportDirect, "Direct"},
		{TransportHLS, "HLS"},
		{TransportDASH, "DASH"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if string(tt.transport) != tt.expected {
				t.Errorf("Transport value mismatch: got %s, want %s", tt.transport, tt.expected)
			}
		})
	}
}

func TestOptFloatUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue float64
	}{
		{"integer", `1080`, true, 1080},
		{"float", `29.97`, true, 29.97},
		{"numeric string", `"2500.5"`, true, 2500.5},
		{"null", `null`, false, 0},
		{"empty string", `""`, false, 0},
		{"word", `"fast"`, false, 0},
		{"boolean", `true`, false, 0},
		{"object", `{"a":1}`, false, 0},
		{"array", `[1,2]`, false, 0},
		{"NaN string", `"NaN"`, false, 0},
		{"Inf string", `"Inf"`, false, 0},
		{"negative", `-5`, true, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o OptFloat
			if err := json.Unmarshal([]byte(tt.input), &o); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tt.input, err)
			}
			if o.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", o.Valid, tt.wantValid)
			}
			if o.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", o.Value, tt.wantValue)
			}
		})
	}
}

func TestOptFloatHelpers(t *testing.T) {
	if v, ok := Float(12).Positive(); !ok || v != 12 {
		t.Errorf("Positive() = %v, %v; want 12, true", v, ok)
	}
	if _, ok := Float(0).Positive(); ok {
		t.Error("Positive() should reject zero")
	}
	if _, ok := Float(-1).Positive(); ok {
		t.Error("Positive() should reject negative values")
	}
	if _, ok := (OptFloat{}).Positive(); ok {
		t.Error("Positive() should reject absent values")
	}
	if got := Float(29.97).Int(); got != 29 {
		t.Errorf("Int() = %d, want 29", got)
	}
	if got := (OptFloat{}).Or(7); got != 7 {
		t.Errorf("Or() = %v, want 7", got)
	}
}

func TestOptFloatMarshal(t *testing.T) {
	b, err := json.Marshal(struct {
		A OptFloat `json:"a"`
		B OptFloat `json:"b"`
	}{A: Float(1.5)})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `{"a":1.5,"b":null}` {
		t.Errorf("Marshal = %s", b)
	}
}

func TestTextUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Text
	}{
		{"string", `"avc1.64001F"`, "avc1.64001F"},
		{"number", `137`, "137"},
		{"null", `null`, ""},
		{"object", `{"x":"y"}`, ""},
		{"array", `["a"]`, ""},
		{"boolean", `false`, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Text
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInfoDecodesMalformedFormats(t *testing.T) {
	doc := `{
		"title": "Sample",
		"duration": "120",
		"view_count": null,
		"like_count": 42,
		"formats": [
			{"format_id": "137", "url": "https://cdn.example/v.mp4", "vcodec": "avc1.640028", "acodec": "none", "height": 1080, "width": 1920, "tbr": "4400.1"},
			{"format_id": 140, "url": "https://cdn.example/a.m4a", "vcodec": "none", "acodec": "mp4a.40.2", "height": null, "filesize": {"bogus": true}}
		]
	}`

	var info Info
	if err := json.Unmarshal([]byte(doc), &info); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if info.Title != "Sample" {
		t.Errorf("Title = %q", info.Title)
	}
	if v, ok := info.Duration.Positive(); !ok || v != 120 {
		t.Errorf("Duration = %+v", info.Duration)
	}
	if info.ViewCount.Valid {
		t.Error("ViewCount should be absent")
	}
	if info.LikeCount.Int() != 42 {
		t.Errorf("LikeCount = %+v", info.LikeCount)
	}
	if len(info.Formats) != 2 {
		t.Fatalf("expected 2 formats, got %d", len(info.Formats))
	}
	if info.Formats[0].TotalBitrate.Value != 4400.1 {
		t.Errorf("tbr = %+v", info.Formats[0].TotalBitrate)
	}
	if info.Formats[1].FormatID != "140" {
		t.Errorf("FormatID = %q, want 140", info.Formats[1].FormatID)
	}
	if info.Formats[1].Filesize.Valid {
		t.Error("malformed filesize should decode as absent")
	}
}

func TestRenditionJSONKeys(t *testing.T) {
	size := int64(1024)
	r := Rendition{
		SourceURL:     "https://cdn.example/v.mp4",
		FormatID:      "22",
		Quality:       "720p",
		Resolution:    "1280x720",
		SizeLabel:     "0.0 MB",
		SizeBytes:     &size,
		DurationLabel: "1:05",
		Codec:         "H264",
		Transport:     TransportDirect,
		Container:     "mp4",
		FPS:           30,
		HasAudio:      true,
	}

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for _, key := range []string{"url", "format_id", "quality", "resolution", "size", "filesize_bytes", "duration", "codec", "format_type", "ext", "fps", "has_audio"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing JSON key %q", key)
		}
	}

	r.SizeBytes = nil
	b, _ = json.Marshal(r)
	_ = json.Unmarshal(b, &m)
	if m["filesize_bytes"] != nil {
		t.Errorf("filesize_bytes should be null when unknown, got %v", m["filesize_bytes"])
	}
}
