package driven

import "context"

// PDFEngine opens PDF byte buffers for text extraction.
type PDFEngine interface {
	// Open parses data. Encrypted or corrupt documents return an error.
	Open(ctx context.Context, data []byte) (PDFDocument, error)
}

// PDFDocument is an opened PDF.
type PDFDocument interface {
	// NumPages returns the page count.
	NumPages() int

	// PageText returns the text items of page n, 1-based.
	// An image-only page returns no items and no error.
	PageText(n int) ([]string, error)
}

// TextExtractor turns a PDF into normalised full text.
type TextExtractor interface {
	// Extract returns the normalised text of data, or an error when the
	// document cannot be read or has no text layer.
	Extract(ctx context.Context, data []byte) (string, error)
}
