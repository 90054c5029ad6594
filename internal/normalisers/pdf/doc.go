// Package pdf extracts searchable text from PDF files.
//
// Engine opens documents in two passes: pdfcpu reads the cross-reference
// structure and reports encryption, then ledongthuc/pdf walks each page's
// text layer. Both libraries are pure Go and carry their own glyph and
// standard-font tables, so no external CMap resources are needed.
//
// Extractor joins page text with single spaces and runs it through the
// Persian normaliser. Encrypted, corrupt and image-only documents return
// an error; the indexing service logs it and indexes the record without
// full text.
package pdf
