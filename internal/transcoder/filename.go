package transcoder

import (
	"strings"
	"unicode"
)

const defaultFilename = "video"

// SanitizeFilename turns a media title into a safe Content-Disposition
// filename. Spaces become underscores; the characters < > : " / \ | ? * and
// control characters are removed. The result always ends in ".mp4".
func SanitizeFilename(title string) string {
	var b strings.Builder
	b.Grow(len(title) + 4)

	for _, r := range strings.TrimSpace(title) {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case strings.ContainsRune(`<>:"/\|?*`, r):
			continue
		case unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
		}
	}

	name := b.String()
	if strings.HasSuffix(strings.ToLower(name), ".mp4") {
		name = name[:len(name)-len(".mp4")]
	}
	if strings.Trim(name, "._") == "" {
		name = defaultFilename
	}
	return name + ".mp4"
}
