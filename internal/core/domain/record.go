package domain

import "time"

// Language is the primary script of a record's text.
type Language string

// Supported languages.
const (
	LanguageEnglish Language = "en"
	LanguagePersian Language = "fa"
)

// DocType classifies a library record.
type DocType string

// Supported document types.
const (
	DocTypePaper      DocType = "paper"
	DocTypeArtwork    DocType = "artwork"
	DocTypeTravelogue DocType = "travelogue"
)

// LibraryRecord is a work bookmarked into the local library.
// HasLocalFile implies a blob keyed by ID exists in the blob store.
type LibraryRecord struct {
	ID           string       `json:"id" validate:"required"`
	Title        string       `json:"title" validate:"required"`
	Authors      []string     `json:"authors"`
	Year         string       `json:"year,omitempty"`
	Abstract     string       `json:"abstract,omitempty"`
	Source       string       `json:"source,omitempty"`
	URL          string       `json:"url,omitempty" validate:"omitempty,url"`
	ThumbnailURL string       `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
	Tags         []string     `json:"tags"`
	Notes        []Note       `json:"notes" validate:"dive"`
	AddedAt      time.Time    `json:"addedAt" validate:"required"`
	HasLocalFile bool         `json:"hasLocalFile"`
	Language     Language     `json:"language" validate:"oneof=en fa"`
	Origin       OriginSystem `json:"originSystem" validate:"required"`
	DocType      DocType      `json:"docType" validate:"oneof=paper artwork travelogue"`

	Period        Period `json:"period,omitempty"`
	Topic         Topic  `json:"topic,omitempty"`
	CitationCount *int   `json:"citationCount,omitempty"`
	Publisher     string `json:"publisher,omitempty"`
	Volume        string `json:"volume,omitempty"`
	Issue         string `json:"issue,omitempty"`
}

// Note is a free-text annotation owned by a LibraryRecord.
// Notes are appended and never edited.
type Note struct {
	ID        string    `json:"id" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`

	// Page is the PDF page the note refers to, if any.
	Page *int `json:"page,omitempty" validate:"omitempty,min=1"`
}

// FullText is the normalised extracted text stored for one record.
// It is the source the full-text index is rebuilt from.
type FullText struct {
	ID      string
	Content string
}

// IndexedDocument is the full-text index's view of one record.
// It exists only for records whose file was successfully extracted.
type IndexedDocument struct {
	ID                string
	NormalizedTitle   string
	NormalizedAuthors string
	NormalizedContent string
}
