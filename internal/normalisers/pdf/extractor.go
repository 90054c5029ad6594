package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/logger"
	"github.com/custodia-labs/pardis/internal/normalisers/persian"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor turns PDF bytes into normalised full text.
type Extractor struct {
	engine driven.PDFEngine
}

// NewExtractor creates an extractor backed by engine.
// A nil engine uses the default Engine.
func NewExtractor(engine driven.PDFEngine) *Extractor {
	if engine == nil {
		engine = NewEngine()
	}
	return &Extractor{engine: engine}
}

// Extract opens data, joins every page's text items with single spaces
// and normalises the result. A page that fails is skipped; a document
// with no text at all returns domain.ErrEmptyExtraction.
func (x *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	doc, err := x.engine.Open(ctx, data)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for n := 1; n <= doc.NumPages(); n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		items, err := doc.PageText(n)
		if err != nil {
			logger.Warn("pdf: skipping page %d: %v", n, err)
			continue
		}
		for _, item := range items {
			if item == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(item)
		}
	}

	text := persian.Normalise(b.String())
	if text == "" {
		return "", fmt.Errorf("%d pages: %w", doc.NumPages(), domain.ErrEmptyExtraction)
	}
	return text, nil
}
