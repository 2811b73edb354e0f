package rendition

import (
	"math"

	"video-downloader/internal/media"
)

// averageBitrateKbps maps a pixel height to a typical video bitrate.
var averageBitrateKbps = map[int]float64{
	2160: 16000,
	1440: 8000,
	1080: 5000,
	720:  2500,
	480:  1200,
	360:  700,
	240:  400,
}

// EstimateSize returns a best-effort byte size for f, or nil when no
// strategy applies. Reported sizes win over bitrate estimates, which win
// over the resolution table.
func EstimateSize(f media.RawFormat, duration media.OptFloat) *int64 {
	for _, reported := range []media.OptFloat{f.Filesize, f.FilesizeApprox, f.FilesizeRaw} {
		if v, ok := reported.Positive(); ok {
			size := int64(math.Round(v))
			return &size
		}
	}

	seconds, ok := duration.Positive()
	if !ok {
		return nil
	}

	if kbps, ok := representativeBitrate(f); ok {
		return bytesFor(kbps, seconds)
	}

	if height, ok := f.Height.Positive(); ok && height == math.Trunc(height) {
		if kbps, ok := averageBitrateKbps[int(height)]; ok {
			return bytesFor(kbps, seconds)
		}
	}

	return nil
}

func representativeBitrate(f media.RawFormat) (float64, bool) {
	for _, br := range []media.OptFloat{f.TotalBitrate, f.VideoBitrate, f.AudioBitrate} {
		if v, ok := br.Positive(); ok {
			return v, true
		}
	}
	return 0, false
}

func bytesFor(kbps, seconds float64) *int64 {
	size := int64(math.Round(kbps * 1000 / 8 * seconds))
	return &size
}
