// Package html flattens markup returned by remote sources into plain text.
// It handles the HTML snippets that scrape adapters pull out of result pages
// and the JATS XML that CrossRef uses for abstracts.
package html
