package domain

import "strings"

var (
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	// Anything the escaper somehow left behind is dropped outright.
	leftoverStripper = strings.NewReplacer(
		"<", "",
		">", "",
		"\"", "",
		"'", "",
	)
)

// Sanitize makes free text safe for storage and later HTML display: it trims
// surrounding whitespace, escapes the HTML-reserved characters and strips any
// literal angle bracket or quote that survived escaping. It never fails and
// maps empty input to an empty string.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	escaped := htmlEscaper.Replace(strings.TrimSpace(text))
	return leftoverStripper.Replace(escaped)
}
