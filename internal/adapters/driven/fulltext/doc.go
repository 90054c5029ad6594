// Package fulltext provides an in-memory inverted index over library records.
//
// Each record contributes three fields (title, authors, content). Text is
// tokenised with the Persian tokeniser, so index-time and query-time
// normalisation are always identical.
//
// # Matching
//
// A query token matches an indexed term exactly, as a prefix, or as a
// substring, in decreasing weight. Prefix matching lets a partial Persian
// compound find its full form. A record must match every query token; when
// no record does, records matching any token are returned instead.
//
// # Ranking
//
// Scores sum the best match weight per query token multiplied by a field
// boost (title 3, authors 2, content 1), plus a bonus for each pair of
// consecutive query tokens that appear adjacently in a field.
//
// # Lifecycle
//
// The index is not persisted. It is rebuilt at startup from the full texts
// in the library store; see services.IndexService.Rehydrate.
package fulltext
