package query

import "github.com/custodia-labs/pardis/internal/core/domain"

// TermPair is the same concept in English and Persian.
type TermPair struct {
	En string
	Fa string
}

var periodTerms = map[domain.Period]TermPair{
	domain.PeriodElamiteMedes:     {"Elamite Medes", "ایلام ماد"},
	domain.PeriodAchaemenid:       {"Achaemenid", "هخامنشی"},
	domain.PeriodSeleucidParthian: {"Seleucid Parthian", "سلوکی اشکانی"},
	domain.PeriodSassanid:         {"Sassanid", "ساسانی"},
	domain.PeriodEarlyIslamic:     {"Early Islamic Persia", "اسلامی اولیه"},
	domain.PeriodSeljukGhaznavid:  {"Seljuk Ghaznavid", "سلجوقی غزنوی"},
	domain.PeriodIlkhanid:         {"Ilkhanid", "ایلخانی"},
	domain.PeriodTimurid:          {"Timurid", "تیموری"},
	domain.PeriodSafavid:          {"Safavid", "صفوی"},
	domain.PeriodAfsharidZand:     {"Afsharid Zand", "افشار زند"},
	domain.PeriodQajar:            {"Qajar", "قاجار"},
	domain.PeriodPahlavi:          {"Pahlavi", "پهلوی"},
	domain.PeriodContemporary:     {"Contemporary Iran", "معاصر ایران"},
}

var topicTerms = map[domain.Topic]TermPair{
	domain.TopicGardenLayout: {"Garden Plan", "هندسه باغ"},
	domain.TopicQanatWater:   {"Qanat Water", "قنات آبیاری"},
	domain.TopicVegetation:   {"Vegetation Trees", "گیاهان درختان"},
	domain.TopicSymbolism:    {"Symbolism Mysticism", "نمادشناسی عرفان"},
	domain.TopicPavilions:    {"Pavilion Palace", "کوشک عمارت"},
	domain.TopicConservation: {"Conservation Heritage", "مرمت میراث"},
}

// GardenTerms is appended when the garden context is forced.
var GardenTerms = TermPair{En: "Persian Garden", Fa: "باغ ایرانی"}

// PeriodTerms returns the term pair for p. The second result is false for PeriodAll.
func PeriodTerms(p domain.Period) (TermPair, bool) {
	t, ok := periodTerms[p]
	return t, ok
}

// TopicTerms returns the term pair for t. The second result is false for TopicGeneral.
func TopicTerms(t domain.Topic) (TermPair, bool) {
	pair, ok := topicTerms[t]
	return pair, ok
}

// vocabEntry keeps table order stable so translated output is deterministic.
type vocabEntry struct {
	from string
	to   string
}

// artTerms maps Persian art vocabulary to museum-catalogue English.
var artTerms = []vocabEntry{
	{"باغ", "Garden"},
	{"فرش", "Carpet"},
	{"قالی", "Rug"},
	{"مینیاتور", "Miniature Painting"},
	{"نگارگری", "Illuminated Manuscript"},
	{"نقاشی", "Painting"},
	{"کاشی", "Tile"},
	{"سفال", "Ceramic"},
	{"معماری", "Architecture"},
	{"صفوی", "Safavid"},
	{"تیموری", "Timurid"},
	{"قاجار", "Qajar"},
	{"گل", "Flower"},
	{"بلبل", "Bird"},
	{"کتاب", "Book"},
	{"نسخه", "Manuscript"},
	{"خط", "Calligraphy"},
}

// literatureTerms maps English literary vocabulary to Persian poetry-search terms.
var literatureTerms = map[string]string{
	"garden":      "باغ",
	"flower":      "گل",
	"wine":        "می",
	"love":        "عشق",
	"nightingale": "بلبل",
	"rose":        "گل سرخ",
	"paradise":    "بهشت",
	"water":       "آب",
	"cypress":     "سرو",
	"fountain":    "فواره",
	"pavilion":    "کوشک",
	"desert":      "بیابان",
	"hafez":       "حافظ",
	"saadi":       "سعدی",
	"rumi":        "مولوی",
	"ferdowsi":    "فردوسی",
	"khayyam":     "خیام",
	"poetry":      "شعر",
	"poem":        "شعر",
}
