package utils

import (
	"strings"
	"unicode"
)

// Slugify derives a URL slug from a post title: lowercase, non-alphanumeric
// runs collapsed to single hyphens, leading/trailing hyphens trimmed.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
