package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.PDFEngine = (*Engine)(nil)

// headerWindow is how far into the file the %PDF- marker may appear.
const headerWindow = 1024

var pdfMagic = []byte("%PDF-")

// ErrNotPDF is returned for buffers without a PDF header.
var ErrNotPDF = errors.New("not a pdf")

// IsPDF reports whether data carries a PDF header near its start.
func IsPDF(data []byte) bool {
	window := data
	if len(window) > headerWindow {
		window = window[:headerWindow]
	}
	return bytes.Contains(window, pdfMagic)
}

// Engine opens PDFs with a pdfcpu preflight followed by ledongthuc/pdf.
type Engine struct{}

// NewEngine creates a new PDF engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Open parses data and returns a document ready for page text extraction.
func (e *Engine) Open(ctx context.Context, data []byte) (driven.PDFDocument, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !IsPDF(data) {
		return nil, ErrNotPDF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := preflight(data)
	if err != nil {
		return nil, fmt.Errorf("reading pdf structure: %w", err)
	}
	logger.Debug("pdf: %d pages, encrypted=%v", info.pages, info.encrypted)

	reader, err := openReader(data)
	if err != nil {
		if info.encrypted {
			return nil, fmt.Errorf("%w: %v", domain.ErrEncryptedDocument, err)
		}
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	return &document{reader: reader, pages: reader.NumPage()}, nil
}

type structureInfo struct {
	pages     int
	encrypted bool
}

// preflight reads the document structure with pdfcpu.
func preflight(data []byte) (info structureInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfcpu panic: %v", r)
		}
	}()

	pdfCtx, err := api.ReadContext(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return structureInfo{}, err
	}
	return structureInfo{
		pages:     pdfCtx.PageCount,
		encrypted: pdfCtx.Encrypt != nil,
	}, nil
}

func openReader(data []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// document implements driven.PDFDocument.
type document struct {
	reader *pdf.Reader
	pages  int
}

func (d *document) NumPages() int {
	return d.pages
}

// PageText returns the page's text layer as a single item.
func (d *document) PageText(n int) (items []string, err error) {
	if n < 1 || n > d.pages {
		return nil, fmt.Errorf("page %d out of range 1..%d: %w", n, d.pages, domain.ErrInvalidInput)
	}

	defer func() {
		if r := recover(); r != nil {
			items, err = nil, fmt.Errorf("page %d: %v", n, r)
		}
	}()

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return nil, nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", n, err)
	}
	if text == "" {
		return nil, nil
	}
	return []string{text}, nil
}
