// Package badger provides the Badger-backed blob store for attached files.
//
// Files are split into fixed-size chunks so that large PDFs stay below
// Badger's per-transaction limits. A small manifest key records the chunk
// count and is written last, so a reader never sees a partial file.
//
// # Data Location
//
// By default, blobs are stored under ~/.pardis/data/blobs
package badger
