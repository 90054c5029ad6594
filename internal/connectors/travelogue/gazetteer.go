package travelogue

import (
	"strings"

	"github.com/custodia-labs/pardis/internal/normalisers/persian"
)

type alias struct {
	name  string
	place string
}

// aliases maps historical and alternate spellings in both scripts to a
// canonical place. Lookup walks this list in order.
var aliases = []alias{
	{"tehran", "Tehran"}, {"teheran", "Tehran"}, {"tihran", "Tehran"},
	{"تهران", "Tehran"}, {"طهران", "Tehran"}, {"golestan", "Tehran"}, {"گلستان", "Tehran"},

	{"isfahan", "Isfahan"}, {"ispahan", "Isfahan"}, {"spahawn", "Isfahan"}, {"esfahan", "Isfahan"},
	{"sepahan", "Isfahan"}, {"اصفهان", "Isfahan"}, {"سپاهان", "Isfahan"},
	{"naqsh-e jahan", "Isfahan"}, {"نقش جهان", "Isfahan"},

	{"shiraz", "Shiraz"}, {"shirauz", "Shiraz"}, {"schiraz", "Shiraz"},
	{"شیراز", "Shiraz"}, {"hafiz", "Shiraz"}, {"حافظ", "Shiraz"}, {"sa'di", "Shiraz"}, {"سعدی", "Shiraz"},

	{"yazd", "Yazd"}, {"yezd", "Yazd"}, {"yesd", "Yazd"},
	{"یزد", "Yazd"}, {"badgir", "Yazd"}, {"بادگیر", "Yazd"},

	{"tabriz", "Tabriz"}, {"tauris", "Tabriz"}, {"tebris", "Tabriz"}, {"تبریز", "Tabriz"},

	{"kashan", "Kashan"}, {"cashan", "Kashan"}, {"cachan", "Kashan"},
	{"کاشان", "Kashan"}, {"fin garden", "Kashan"}, {"bagh-e fin", "Kashan"}, {"باغ فین", "Kashan"},

	{"persepolis", "Persepolis"}, {"takht-e jamshid", "Persepolis"}, {"chilminar", "Persepolis"},
	{"تخت جمشید", "Persepolis"}, {"پرسپولیس", "Persepolis"},

	{"qazvin", "Qazvin"}, {"casbin", "Qazvin"}, {"kazvin", "Qazvin"}, {"قزوین", "Qazvin"},

	{"mashhad", "Mashhad"}, {"meshed", "Mashhad"}, {"مشهد", "Mashhad"},

	{"kerman", "Kerman"}, {"kirman", "Kerman"}, {"کرمان", "Kerman"},

	{"ray", "Ray"}, {"rhages", "Ray"}, {"rey", "Ray"}, {"ری", "Ray"}, {"راگا", "Ray"},

	{"khuzestan", "Khuzestan"}, {"khuzistan", "Khuzestan"}, {"خوزستان", "Khuzestan"},
	{"susa", "Khuzestan"}, {"shush", "Khuzestan"}, {"شوش", "Khuzestan"},
}

type keyword struct {
	fa string
	en string
}

// keywords translates Persian query words to the English the corpus is
// written in. A query token containing the key picks up its translation.
var keywords = []keyword{
	{"باغ", "garden"}, {"پردیس", "paradise"}, {"درخت", "tree"}, {"آب", "water"},
	{"عمارت", "palace"}, {"کاخ", "palace"}, {"کوشک", "pavilion"}, {"شاه", "shah"},
	{"صفوی", "safavid"}, {"قاجار", "qajar"}, {"بازار", "bazaar"}, {"مسجد", "mosque"},
	{"کاشی", "tile"}, {"فرش", "carpet"}, {"سرو", "cypress"}, {"چنار", "plane tree"},
	{"بیابان", "desert"}, {"کویر", "desert"}, {"قنات", "qanat"}, {"آینه", "mirror"},
	{"چهارباغ", "chahar"}, {"معماری", "architecture"},
}

// phrase renders s the way query text is tokenised, padded with spaces
// so lookups match whole words only.
func phrase(s string) string {
	return " " + strings.Join(persian.Tokenise(s), " ") + " "
}

// Resolve returns the canonical place named anywhere in text.
func Resolve(text string) (string, bool) {
	padded := phrase(text)
	for _, a := range aliases {
		if strings.Contains(padded, phrase(a.name)) {
			return a.place, true
		}
	}
	return "", false
}

// translate returns English corpus terms for the Persian tokens given.
func translate(tokens []string) []string {
	var out []string
	for _, k := range keywords {
		key := persian.Normalise(k.fa)
		for _, tok := range tokens {
			if strings.Contains(tok, key) {
				out = append(out, k.en)
				break
			}
		}
	}
	return out
}
