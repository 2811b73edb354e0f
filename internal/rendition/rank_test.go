package rendition

import (
	"fmt"
	"testing"

	"video-downloader/internal/media"
)

func sized(n int64) *int64 {
	return &n
}

func TestRankDeduplicatesSourceURL(t *testing.T) {
	in := []media.Rendition{
		{SourceURL: "u1", FormatID: "a", Quality: "720p", Codec: "H264", Transport: media.TransportDirect},
		{SourceURL: "u1", FormatID: "b", Quality: "1080p", Codec: "VP9", Transport: media.TransportDirect},
		{SourceURL: "", FormatID: "c", Quality: "480p", Codec: "H264", Transport: media.TransportDirect},
		{SourceURL: "", FormatID: "d", Quality: "360p", Codec: "H264", Transport: media.TransportDirect},
	}

	out := Rank(in)

	if len(out) != 2 {
		t.Fatalf("expected 2 renditions, got %d: %+v", len(out), out)
	}
	if out[0].FormatID != "a" {
		t.Errorf("first occurrence of u1 should win, got %q", out[0].FormatID)
	}
	if out[1].FormatID != "c" {
		t.Errorf("first empty URL should win, got %q", out[1].FormatID)
	}
}

func TestRankOrdering(t *testing.T) {
	in := []media.Rendition{
		{SourceURL: "1", FormatID: "hls-720", Quality: "720p", Codec: "H264", Transport: media.TransportHLS, SizeBytes: sized(900)},
		{SourceURL: "2", FormatID: "direct-720-small", Quality: "720p", Codec: "VP9", Transport: media.TransportDirect, SizeBytes: sized(100)},
		{SourceURL: "3", FormatID: "direct-720-big", Quality: "720p", Codec: "H264", Transport: media.TransportDirect, SizeBytes: sized(500)},
		{SourceURL: "4", FormatID: "unknown", Quality: "Unknown", Codec: "", Transport: media.TransportDirect},
		{SourceURL: "5", FormatID: "dash-1080", Quality: "1080p", Codec: "AV1", Transport: media.TransportDASH},
		{SourceURL: "6", FormatID: "direct-720-nosize", Quality: "720p", Codec: "AV1", Transport: media.TransportDirect},
	}

	out := Rank(in)

	want := []string{"dash-1080", "direct-720-big", "direct-720-small", "direct-720-nosize", "hls-720", "unknown"}
	if len(out) != len(want) {
		t.Fatalf("expected %d renditions, got %d", len(want), len(out))
	}
	for i, id := range want {
		if out[i].FormatID != id {
			t.Errorf("position %d: got %q, want %q", i, out[i].FormatID, id)
		}
	}
}

func TestRankCollapsesEquivalentRenditions(t *testing.T) {
	in := []media.Rendition{
		{SourceURL: "small", FormatID: "small", Quality: "720p", Codec: "H264", Transport: media.TransportDirect, SizeBytes: sized(10)},
		{SourceURL: "big", FormatID: "big", Quality: "720p", Codec: "H264", Transport: media.TransportDirect, SizeBytes: sized(20)},
		{SourceURL: "hls", FormatID: "hls", Quality: "720p", Codec: "H264", Transport: media.TransportHLS},
	}

	out := Rank(in)

	if len(out) != 2 {
		t.Fatalf("expected 2 renditions, got %d", len(out))
	}
	if out[0].FormatID != "big" {
		t.Errorf("largest equivalent rendition should be kept, got %q", out[0].FormatID)
	}
	if out[1].FormatID != "hls" {
		t.Errorf("different transport should survive, got %q", out[1].FormatID)
	}
}

func TestRankStableForTies(t *testing.T) {
	in := []media.Rendition{
		{SourceURL: "1", FormatID: "first", Quality: "480p", Codec: "H264", Transport: media.TransportHLS},
		{SourceURL: "2", FormatID: "second", Quality: "480p", Codec: "VP9", Transport: media.TransportHLS},
	}

	out := Rank(in)

	if out[0].FormatID != "first" || out[1].FormatID != "second" {
		t.Errorf("ties should keep input order, got %q, %q", out[0].FormatID, out[1].FormatID)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	in := []media.Rendition{
		{SourceURL: "1", FormatID: "low", Quality: "240p"},
		{SourceURL: "2", FormatID: "high", Quality: "2160p"},
	}

	_ = Rank(in)

	if in[0].FormatID != "low" || in[1].FormatID != "high" {
		t.Error("Rank modified its input slice")
	}
}

func TestRankInvariants(t *testing.T) {
	heights := []string{"2160p", "1080p", "720p", "Unknown", "480p"}
	codecs := []string{"H264", "VP9", "AV1"}
	transports := []media.Transport{media.TransportDirect, media.TransportHLS, media.TransportDASH}

	var in []media.Rendition
	for i := 0; i < 120; i++ {
		in = append(in, media.Rendition{
			SourceURL: fmt.Sprintf("https://cdn.example/%d", i%70),
			FormatID:  fmt.Sprintf("f%d", i),
			Quality:   heights[i%len(heights)],
			Codec:     codecs[(i/3)%len(codecs)],
			Transport: transports[(i/7)%len(transports)],
			SizeBytes: sized(int64(i * 37 % 101)),
		})
	}

	out := Rank(in)

	urls := make(map[string]bool)
	keys := make(map[string]bool)
	for i, r := range out {
		if urls[r.SourceURL] {
			t.Errorf("duplicate source URL %q", r.SourceURL)
		}
		urls[r.SourceURL] = true

		key := r.Quality + "|" + r.Codec + "|" + string(r.Transport)
		if keys[key] {
			t.Errorf("duplicate (quality, codec, transport) %q", key)
		}
		keys[key] = true

		if i == 0 {
			continue
		}
		prev := out[i-1]
		qp, qc := QualityNumber(prev.Quality), QualityNumber(r.Quality)
		if qp < qc {
			t.Errorf("position %d: quality %d follows %d", i, qc, qp)
		}
		if qp == qc && prev.Transport != media.TransportDirect && r.Transport == media.TransportDirect {
			t.Errorf("position %d: Direct rendition follows %s at equal quality", i, prev.Transport)
		}
	}
}

func TestQualityNumber(t *testing.T) {
	tests := []struct {
		label    string
		expected int
	}{
		{"1080p", 1080},
		{"563p", 563},
		{"Unknown", 0},
		{"p", 0},
		{"hd720p", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := QualityNumber(tt.label); got != tt.expected {
				t.Errorf("QualityNumber(%q) = %d, want %d", tt.label, got, tt.expected)
			}
		})
	}
}
