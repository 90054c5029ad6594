// Package normalisers holds the text pipelines that turn raw source
// material into searchable text: Persian script folding, HTML stripping
// for scraped pages and PDF text extraction.
package normalisers
