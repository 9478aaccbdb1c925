// Package sanitize normalizes free text submitted by clients before it is
// validated or stored.
package sanitize

import (
	"html"
	"strings"
	"unicode"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Text collapses whitespace, trims, strips control characters and
// HTML-escapes reserved characters. Existing character references are
// decoded first, so Text(Text(s)) == Text(s).
func Text(s string) string {
	s = html.UnescapeString(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")
	return escaper.Replace(s)
}
