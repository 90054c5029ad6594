package html

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended by Truncate.
const Ellipsis = "..."

// Pre-compiled regular expressions for markup stripping.
var (
	scriptTag    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	jatsTitle    = regexp.MustCompile(`(?is)<jats:title[^>]*>.*?</jats:title>`)
	blockTags    = regexp.MustCompile(`(?i)</?(p|div|br|li|h[1-6]|jats:p|jats:sec)[^>]*>`)
	allTags      = regexp.MustCompile(`<[^>]*>?`)
)

// Text strips tags, drops scripts, styles and JATS section titles,
// decodes entities and collapses whitespace to single spaces.
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = scriptTag.ReplaceAllString(s, "")
	s = styleTag.ReplaceAllString(s, "")
	s = htmlComments.ReplaceAllString(s, "")
	s = jatsTitle.ReplaceAllString(s, "")

	// Block boundaries become spaces so adjacent paragraphs don't fuse.
	s = blockTags.ReplaceAllString(s, " ")
	s = allTags.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to at most max characters and appends Ellipsis
// when anything was cut.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max])) + Ellipsis
}
