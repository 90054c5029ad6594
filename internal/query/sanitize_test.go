package query

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

var sanitizeCorpus = []string{
	"",
	"   ",
	`"باغ ایرانی" OR "Persian Garden"`,
	"Persian garden AND (qanat OR water)",
	"NOT baroque",
	"باغ فین کاشان",
	"O(R",
	"OباغR",
	"or and not",
	"ORAND",
	"باغ‌های ایرانی 1400",
	"Chahar-Bagh: the four-fold garden",
	"حافظ, شیراز! (نسخه) \"خطی\"",
	"ﺑﺎﻍ presentation forms",
	"tab\tseparated\nlines",
	"Safavid صفوی 1587 Isfahan اصفهان",
}

func TestSanitizers_Idempotent(t *testing.T) {
	variants := map[string]func(string) string{
		"PersianOnly": PersianOnly,
		"LatinOnly":   LatinOnly,
		"MixedClean":  MixedClean,
	}

	for name, fn := range variants {
		for _, s := range sanitizeCorpus {
			once := fn(s)
			assert.Equal(t, once, fn(once), "%s not idempotent for %q", name, s)
		}
	}
}

func TestLatinOnly_NoArabicScript(t *testing.T) {
	for _, s := range sanitizeCorpus {
		out := LatinOnly(s)
		for _, r := range out {
			assert.False(t, r >= 0x0600 && r <= 0x06FF, "LatinOnly(%q) kept %U", s, r)
		}
	}
}

func TestPersianOnly_NoLatinLetters(t *testing.T) {
	for _, s := range sanitizeCorpus {
		out := PersianOnly(s)
		for _, r := range out {
			assert.False(t, r < unicode.MaxASCII && unicode.IsLetter(r), "PersianOnly(%q) kept %q", s, r)
		}
	}
}

func TestSanitize_MixedScriptScenario(t *testing.T) {
	q := `"باغ ایرانی" OR "Persian Garden"`

	assert.Equal(t, "باغ ایرانی", PersianOnly(q))
	assert.Equal(t, "Persian Garden", LatinOnly(q))
	assert.Equal(t, "باغ ایرانی Persian Garden", MixedClean(q))
}

func TestSanitize_BooleanKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"garden OR pavilion", "garden pavilion"},
		{"garden and pavilion", "garden pavilion"},
		{"NOT baroque", "baroque"},
		{"ORANGE grove", "ORANGE grove"},
		{"Oregon", "Oregon"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, MixedClean(tt.input))
		})
	}
}

func TestPersianOnly_EmptyWithoutPersian(t *testing.T) {
	assert.Equal(t, "", PersianOnly("Persian Garden OR qanat"))
	assert.Equal(t, "", PersianOnly("year 1400"))
	assert.Equal(t, "باغ 1400", PersianOnly("باغ year 1400"))
}

func TestPersianOnly_PunctuationBecomesSpace(t *testing.T) {
	assert.Equal(t, "باغ فین", PersianOnly("باغ-فین"))
}

func TestPrefer(t *testing.T) {
	// Latin variant long enough: kept.
	assert.Equal(t, "qanat", Prefer(LatinOnly, "qanat قنات", 3))

	// Latin variant too short: falls back to mixed.
	assert.Equal(t, "قنات ab", Prefer(LatinOnly, "قنات ab", 3))
}

func TestHasPersian(t *testing.T) {
	assert.True(t, HasPersian("Bagh-e باغ"))
	assert.True(t, HasPersian("ﺑ"))
	assert.False(t, HasPersian("Bagh-e Fin"))
}

func TestRuneLen(t *testing.T) {
	assert.Equal(t, 3, RuneLen("باغ"))
	assert.Equal(t, len("abc"), RuneLen("abc"))
	assert.Equal(t, 0, RuneLen(strings.TrimSpace("  ")))
}
