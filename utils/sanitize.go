package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.StrictPolicy()

// maxSanitizePasses bounds nested entity encodings such as &amp;lt;b&amp;gt;.
const maxSanitizePasses = 5

// SanitizeText strips all markup from user supplied plain text such as titles and names.
// bluemonday escapes entities in its output, so the result is unescaped and stripped again
// until no markup remains; encoded tags never come back as live ones.
func SanitizeText(input string) string {
	out := input
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(sanitizer.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	// Still unfolding after the pass limit: keep whatever is left escaped.
	return strings.TrimSpace(sanitizer.Sanitize(out))
}
