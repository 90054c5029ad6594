package persian

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Tokenise normalises s, case-folds it and splits on whitespace,
// punctuation and symbols.
func Tokenise(s string) []string {
	s = cases.Fold().String(Normalise(s))
	return strings.FieldsFunc(s, isSeparator)
}

func isSeparator(r rune) bool {
	switch {
	case unicode.IsSpace(r), unicode.IsPunct(r), unicode.IsSymbol(r):
		return true
	case r >= 0x2000 && r <= 0x206F: // general punctuation, joiners
		return true
	case r >= 0x2E00 && r <= 0x2E7F: // supplemental punctuation
		return true
	}
	return false
}
