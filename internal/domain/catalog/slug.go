package catalog

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify converts a name into a URL-safe slug: lowercase, alphanumeric,
// words joined by hyphens. Non-ASCII runes are dropped.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// NextSlug returns the candidate slug for the given attempt number.
// Attempt 0 is the base slug itself; later attempts append a counter.
func NextSlug(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}
