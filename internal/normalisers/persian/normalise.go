// Package persian canonicalises Persian and Arabic text so that index-time
// and query-time strings compare equal.
//
// Normalise must be applied identically when indexing and when searching.
package persian

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical code points.
const (
	Yeh     = '\u06CC' // ARABIC LETTER FARSI YEH
	Kaf     = '\u06A9' // ARABIC LETTER KEHEH
	Tatweel = '\u0640'
	ZWNJ    = '\u200C'
)

// foldRune maps glyph variants to their canonical form.
// It returns -1 for characters that are dropped.
func foldRune(r rune) rune {
	switch r {
	case '\u064A', // YEH
		'\u0649', // ALEF MAKSURA
		'\u06D0', // E
		'\u06D2', // YEH BARREE
		'\u06D3': // YEH BARREE WITH HAMZA ABOVE
		return Yeh
	case '\u0643', // KAF
		'\u06AC', // KAF WITH DOT ABOVE
		'\u06AD', // NG
		'\u06AE': // KAF WITH THREE DOTS BELOW
		return Kaf
	case Tatweel:
		return -1
	case ZWNJ:
		return ' '
	}
	return r
}

// Normalise folds Yeh and Kaf variants, strips tatweel, turns ZWNJ into a
// space and collapses whitespace.
//
// Compatibility forms (Arabic presentation forms and Latin ligatures that
// PDF text layers often carry) are decomposed first, and the result is
// recomposed to NFC so that Normalise(Normalise(s)) == Normalise(s).
func Normalise(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = strings.Map(foldRune, s)
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(s)
}
