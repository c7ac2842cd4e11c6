package extractor

import (
	"regexp"
)

// whitespace is the set of characters that ends a link: ASCII whitespace,
// vertical tab, every Unicode space separator (NBSP, em space, ...), the
// line and paragraph separators and the byte order mark.
const whitespace = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

// linkPattern recognises http and https URLs. The host must not start with
// whitespace or one of "/$.?#", its second character must not be a line
// terminator, and the match runs to the next whitespace. Trailing
// punctuation stays part of the link.
var linkPattern = regexp.MustCompile(
	`(?i)https?://[^` + whitespace + `/$.?#][^\n\r\x{2028}\x{2029}][^` + whitespace + `]*`)

// FindLinks returns every non-overlapping URL-shaped substring of text in
// the order they appear. It returns nil when nothing matches.
func FindLinks(text string) []string {
	return linkPattern.FindAllString(text, -1)
}
