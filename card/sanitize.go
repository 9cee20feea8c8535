package card

import "strings"

// MaxTextLength is the longest a single card line can be before it is
// truncated.
const MaxTextLength = 32

const ellipsis = "..."

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Truncate shortens s to maxLen characters followed by an ellipsis
// marker. Strings at or under the limit pass through unchanged.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + ellipsis
	}

	return s
}

// Escape replaces the five markup-significant characters with their
// named entities. Applied after Truncate so the marker is never escaped.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Sanitize truncates to the card line limit, then escapes for embedding
// in markup.
func Sanitize(s string) string {
	return Escape(Truncate(s, MaxTextLength))
}
