// Package query turns one free-text research query into the strings each
// remote source is sent.
//
// Three sanitiser variants isolate scripts and drop boolean syntax:
//
//   - PersianOnly keeps Arabic-script letters, digits and whitespace
//   - LatinOnly drops Arabic-script letters and the characters ()"
//   - MixedClean drops only the characters ()" and keeps both scripts
//
// All three remove the keywords OR, AND and NOT in any case, collapse
// whitespace and are idempotent.
//
// The package also carries the static domain vocabulary (period and topic
// term pairs, the art and literature translation tables) and the per-group
// augmentation that appends it to a query.
package query
