package query

import "strings"

// DefaultArtTerm is used for Persian queries with no known art vocabulary.
const DefaultArtTerm = "Persian Art"

// ToEnglishArtTerms returns English catalogue terms for the Persian art
// vocabulary found in s. A Persian query with no known term yields
// DefaultArtTerm; a query without Persian yields "".
func ToEnglishArtTerms(s string) string {
	terms := TranslatedArtTerms(s)
	if len(terms) == 0 {
		if HasPersian(s) {
			return DefaultArtTerm
		}
		return ""
	}
	return strings.Join(terms, " ")
}

// TranslatedArtTerms returns the English terms for the Persian art
// vocabulary found in s, without any fallback.
func TranslatedArtTerms(s string) []string {
	var terms []string
	for _, e := range artTerms {
		if strings.Contains(s, e.from) {
			terms = append(terms, e.to)
		}
	}
	return terms
}

// ToPersianLiterature lower-cases s and replaces every known English
// literary word with its Persian counterpart. Unknown words pass through.
func ToPersianLiterature(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if fa, ok := literatureTerms[w]; ok {
			words[i] = fa
		}
	}
	return strings.Join(words, " ")
}
