package travelogue

// Passage is one excerpt from a public domain travel account of Persia.
type Passage struct {
	ID        string
	BookTitle string
	Author    string
	Year      string
	Location  string
	Text      string
	Excerpt   string
	SourceURL string
}

// Corpus is the offline travelogue archive.
var Corpus = []Passage{
	{
		ID:        "chardin-isfahan-1",
		BookTitle: "Voyages de Monsieur le Chevalier Chardin en Perse",
		Author:    "Jean Chardin",
		Year:      "1686",
		Location:  "Isfahan",
		Text:      "The Royal Square (Naqsh-e Jahan) is, without doubt, the most beautiful in the world... It is a regular rectangle, surrounded on all sides by a large covered bazaar... The grand mosque at the south end is a miracle of faience work. At night, when the lamps are lit in the arcades, the scene is one of enchantment, distinct from any other city in the Orient.",
		Excerpt:   "The Royal Square is, without doubt, the most beautiful in the world... surrounded on all sides by a large covered bazaar.",
		SourceURL: "https://archive.org/details/voyageschevalier01char",
	},
	{
		ID:        "curzon-tehran-1",
		BookTitle: "Persia and the Persian Question",
		Author:    "George N. Curzon",
		Year:      "1892",
		Location:  "Tehran",
		Text:      "Teheran, as the capital of the Qajars, presents a curious mixture of the East and West. The gates are adorned with modern tiles depicting the exploits of Rustam, yet the streets often remain unpaved and dusty... The Gulistan Palace stands as a testament to the Shah's taste, filled with mirrors and European bric-a-brac, situated amidst gardens of plane trees and running water.",
		Excerpt:   "Teheran presents a curious mixture of the East and West. The Gulistan Palace stands as a testament to the Shah's taste, situated amidst gardens of plane trees.",
		SourceURL: "https://www.gutenberg.org/ebooks/search/?query=Curzon+Persia",
	},
	{
		ID:        "browne-shiraz-1",
		BookTitle: "A Year Amongst the Persians",
		Author:    "Edward Granville Browne",
		Year:      "1893",
		Location:  "Shiraz",
		Text:      "We entered Shiraz through the Tang-i-Allahu Akbar, catching our first glimpse of the city lying like a green emerald in the valley below. The gardens of Shiraz are celebrated by Hafiz and Sa'di, though in truth many are now in a state of decay... yet the cypress trees remain majestic, standing guard over the tombs of the poets.",
		Excerpt:   "We entered Shiraz through the Tang-i-Allahu Akbar... catching our first glimpse of the city lying like a green emerald in the valley below.",
		SourceURL: "https://www.gutenberg.org/ebooks/35308",
	},
	{
		ID:        "byron-oxiana-yazd",
		BookTitle: "The Road to Oxiana",
		Author:    "Robert Byron",
		Year:      "1937",
		Location:  "Yazd",
		Text:      "Yezd (Yazd) is the most purely Persian city... It rises from the desert like a brown fortification. The wind-towers (badgirs) catch the slightest breeze to cool the houses below. Every roofscape is dominated by these towers, looking like slats of a radiator... It is the center of the Zoroastrian faith in Persia.",
		Excerpt:   "Yezd is the most purely Persian city... It rises from the desert like a brown fortification. The wind-towers (badgirs) catch the slightest breeze.",
		SourceURL: "https://archive.org/details/in.ernet.dli.2015.5684",
	},
	{
		ID:        "sackville-kashan",
		BookTitle: "Twelve Days in Persia",
		Author:    "Vita Sackville-West",
		Year:      "1928",
		Location:  "Kashan",
		Text:      "Kashan is famous for its scorpions and its velvets... but the Fin Garden nearby is the true jewel, with its cypress avenues and rushing water channels, a stark contrast to the arid plain outside. The pavilion, with its fading frescoes, tells of a time when the Safavids sought refuge here from the heat.",
		Excerpt:   "The Fin Garden nearby is the true jewel, with its cypress avenues and rushing water channels, a stark contrast to the arid plain outside.",
		SourceURL: "https://archive.org/search.php?query=Sackville-West+Persia",
	},
	{
		ID:        "polo-tabriz",
		BookTitle: "The Travels of Marco Polo",
		Author:    "Marco Polo",
		Year:      "c. 1300",
		Location:  "Tabriz",
		Text:      "Tauris (Tabriz) is a great and noble city... The inhabitants are a mixed lot, good for trade. It is situated in a province called Adherbaijan. You must know that it is a city where merchants make large profits, for the city is excellently situated for commerce, and goods are brought here from India, Baudas, and Cremesor.",
		Excerpt:   "Tauris is a great and noble city... situated in a province called Adherbaijan. It is a city where merchants make large profits.",
		SourceURL: "https://www.gutenberg.org/ebooks/10636",
	},
	{
		ID:        "bell-qazvin",
		BookTitle: "Persian Pictures",
		Author:    "Gertrude Bell",
		Year:      "1894",
		Location:  "Qazvin",
		Text:      "Kazvin (Qazvin) was once the capital, before Shah Abbas moved it to Isfahan. It still holds the charm of fallen greatness. The streets are lined with plane trees, and the tiled gateways of the shrines gleam in the sun, though the tiles are falling one by one.",
		Excerpt:   "Kazvin was once the capital... It still holds the charm of fallen greatness. The streets are lined with plane trees.",
		SourceURL: "https://www.gutenberg.org/ebooks/author/496",
	},
	{
		ID:        "layard-khuzestan",
		BookTitle: "Early Adventures in Persia",
		Author:    "Austen Henry Layard",
		Year:      "1887",
		Location:  "Khuzestan",
		Text:      "The plains of Khuzistan (Khuzestan) are scorched in the summer, but in spring they are covered with verdure. The ruins of Susa speak of the ancient Elamite glory. The Arab tribes here pitch their black tents near the banks of the Karun river.",
		Excerpt:   "The plains of Khuzistan are scorched in the summer... The ruins of Susa speak of the ancient Elamite glory.",
		SourceURL: "https://www.gutenberg.org/ebooks/search/?query=Layard",
	},
	{
		ID:        "fryer-persepolis",
		BookTitle: "A New Account of East-India and Persia",
		Author:    "John Fryer",
		Year:      "1698",
		Location:  "Persepolis",
		Text:      "Chilminar, or the Forty Pillars (Persepolis)... These stupendous ruins strike the beholder with silence. The columns, though broken, reach towards the sky, and the carvings of processions are as crisp as if cut yesterday, despite the ravages of time and Alexander's fire.",
		Excerpt:   "Chilminar, or the Forty Pillars... These stupendous ruins strike the beholder with silence. The columns reach towards the sky.",
		SourceURL: "https://archive.org/details/newaccountofeast00frye",
	},
	{
		ID:        "jackson-ray",
		BookTitle: "Persia Past and Present",
		Author:    "A.V. Williams Jackson",
		Year:      "1906",
		Location:  "Ray",
		Text:      "Rhages (Ray), the ancient city mentioned in the book of Tobit... Now but a heap of mounds and the Tower of Silence overlooking the plain. It was the birthplace of Harun al-Rashid, but the Mongols left it desolate.",
		Excerpt:   "Rhages, the ancient city... Now but a heap of mounds. It was the birthplace of Harun al-Rashid, but the Mongols left it desolate.",
		SourceURL: "https://archive.org/details/persiapastpresen00jack",
	},
}
