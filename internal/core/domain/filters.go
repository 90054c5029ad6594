package domain

import "strings"

// Period is a historical era used to refine searches.
type Period string

// Historical periods. The zero value means no period refinement.
const (
	PeriodAll              Period = ""
	PeriodElamiteMedes     Period = "elamite_medes"
	PeriodAchaemenid       Period = "achaemenid"
	PeriodSeleucidParthian Period = "seleucid_parthian"
	PeriodSassanid         Period = "sassanid"
	PeriodEarlyIslamic     Period = "early_islamic"
	PeriodSeljukGhaznavid  Period = "seljuk_ghaznavid"
	PeriodIlkhanid         Period = "ilkhanid"
	PeriodTimurid          Period = "timurid"
	PeriodSafavid          Period = "safavid"
	PeriodAfsharidZand     Period = "afsharid_zand"
	PeriodQajar            Period = "qajar"
	PeriodPahlavi          Period = "pahlavi"
	PeriodContemporary     Period = "contemporary"
)

// Periods lists every concrete period in chronological order.
func Periods() []Period {
	return []Period{
		PeriodElamiteMedes, PeriodAchaemenid, PeriodSeleucidParthian, PeriodSassanid,
		PeriodEarlyIslamic, PeriodSeljukGhaznavid, PeriodIlkhanid, PeriodTimurid,
		PeriodSafavid, PeriodAfsharidZand, PeriodQajar, PeriodPahlavi, PeriodContemporary,
	}
}

// IsValid returns true if the period is recognised. PeriodAll is valid.
func (p Period) IsValid() bool {
	if p == PeriodAll {
		return true
	}
	for _, known := range Periods() {
		if p == known {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (p Period) String() string {
	if p == PeriodAll {
		return "all"
	}
	return string(p)
}

// ParsePeriod converts user input such as "Safavid" or "all" to a Period.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_", "&", "").Replace(s)
	s = strings.ReplaceAll(s, "__", "_")
	if s == "" || s == "all" {
		return PeriodAll, nil
	}
	p := Period(s)
	if !p.IsValid() {
		return PeriodAll, ErrInvalidInput
	}
	return p, nil
}

// Topic is a research theme used to refine searches.
type Topic string

// Research topics. The zero value behaves like TopicGeneral.
const (
	TopicGeneral      Topic = ""
	TopicGardenLayout Topic = "garden_layout"
	TopicQanatWater   Topic = "qanat_water"
	TopicVegetation   Topic = "vegetation"
	TopicSymbolism    Topic = "symbolism"
	TopicPavilions    Topic = "pavilions"
	TopicConservation Topic = "conservation"
)

// Topics lists every concrete topic.
func Topics() []Topic {
	return []Topic{
		TopicGardenLayout, TopicQanatWater, TopicVegetation,
		TopicSymbolism, TopicPavilions, TopicConservation,
	}
}

// IsValid returns true if the topic is recognised. TopicGeneral is valid.
func (t Topic) IsValid() bool {
	if t == TopicGeneral {
		return true
	}
	for _, known := range Topics() {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (t Topic) String() string {
	if t == TopicGeneral {
		return "general"
	}
	return string(t)
}

// ParseTopic converts user input such as "qanat_water" or "general" to a Topic.
func ParseTopic(s string) (Topic, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	if s == "" || s == "general" {
		return TopicGeneral, nil
	}
	t := Topic(s)
	if !t.IsValid() {
		return TopicGeneral, ErrInvalidInput
	}
	return t, nil
}
