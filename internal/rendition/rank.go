package rendition

import (
	"sort"
	"strconv"
	"strings"

	"video-downloader/internal/media"
)

type rankKey struct {
	quality   string
	codec     string
	transport media.Transport
}

// Rank deduplicates renditions by source URL, sorts them best-first and
// keeps one rendition per (quality, codec, transport). The input slice is
// not modified.
func Rank(renditions []media.Rendition) []media.Rendition {
	seenURLs := make(map[string]bool, len(renditions))
	unique := make([]media.Rendition, 0, len(renditions))
	for _, r := range renditions {
		if seenURLs[r.SourceURL] {
			continue
		}
		seenURLs[r.SourceURL] = true
		unique = append(unique, r)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return better(unique[i], unique[j])
	})

	seenKeys := make(map[rankKey]bool, len(unique))
	ranked := make([]media.Rendition, 0, len(unique))
	for _, r := range unique {
		key := rankKey{quality: r.Quality, codec: r.Codec, transport: r.Transport}
		if seenKeys[key] {
			continue
		}
		seenKeys[key] = true
		ranked = append(ranked, r)
	}

	return ranked
}

// better orders by quality, then direct transport, then size, all descending.
func better(a, b media.Rendition) bool {
	if qa, qb := QualityNumber(a.Quality), QualityNumber(b.Quality); qa != qb {
		return qa > qb
	}
	if pa, pb := transportPriority(a.Transport), transportPriority(b.Transport); pa != pb {
		return pa > pb
	}
	return sizeOrZero(a.SizeBytes) > sizeOrZero(b.SizeBytes)
}

// QualityNumber parses the height out of a "1080p" label, or returns 0.
func QualityNumber(quality string) int {
	if !strings.HasSuffix(quality, "p") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSuffix(quality, "p"))
	if err != nil {
		return 0
	}
	return n
}

func transportPriority(t media.Transport) int {
	if t == media.TransportDirect {
		return 1
	}
	return 0
}

func sizeOrZero(size *int64) int64 {
	if size == nil {
		return 0
	}
	return *size
}
