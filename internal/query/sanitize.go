package query

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var booleanKeywords = regexp.MustCompile(`(?i)\b(OR|AND|NOT)\b`)

// IsArabicScript reports whether r lies in the Arabic/Persian blocks,
// including the supplement, extended-A and presentation-form ranges.
func IsArabicScript(r rune) bool {
	switch {
	case r >= 0x0600 && r <= 0x06FF:
		return true
	case r >= 0x0750 && r <= 0x077F:
		return true
	case r >= 0x08A0 && r <= 0x08FF:
		return true
	case r >= 0xFB50 && r <= 0xFDFF:
		return true
	case r >= 0xFE70 && r <= 0xFEFF:
		return true
	}
	return false
}

// HasPersian reports whether s contains any Arabic-script character.
func HasPersian(s string) bool {
	return strings.IndexFunc(s, IsArabicScript) >= 0
}

// PersianOnly keeps Arabic-script characters, ASCII digits and whitespace.
// It returns "" when s has no Persian content; callers treat that as
// "skip this source".
func PersianOnly(s string) string {
	s = strings.Map(func(r rune) rune {
		if IsArabicScript(r) || isDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, s)
	s = collapse(stripBooleans(s))
	if !HasPersian(s) {
		return ""
	}
	return s
}

// LatinOnly drops Arabic-script characters, boolean keywords and ()".
func LatinOnly(s string) string {
	s = strings.Map(func(r rune) rune {
		if IsArabicScript(r) || isQueryPunct(r) {
			return ' '
		}
		return r
	}, s)
	return collapse(stripBooleans(s))
}

// MixedClean drops boolean keywords and ()" but keeps both scripts.
func MixedClean(s string) string {
	s = strings.Map(func(r rune) rune {
		if isQueryPunct(r) {
			return ' '
		}
		return r
	}, s)
	return collapse(stripBooleans(s))
}

// Prefer applies variant to raw and falls back to MixedClean when the
// result is shorter than minRunes.
func Prefer(variant func(string) string, raw string, minRunes int) string {
	if v := variant(raw); RuneLen(v) >= minRunes {
		return v
	}
	return MixedClean(raw)
}

// RuneLen returns the number of characters in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

func stripBooleans(s string) string {
	return booleanKeywords.ReplaceAllString(s, " ")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isQueryPunct(r rune) bool {
	return r == '(' || r == ')' || r == '"'
}
