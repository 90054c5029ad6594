// Package services implements the driving port interfaces.
//
// FederatedSearchService fans a query out to every source adapter and
// fuses the answers. IndexService owns the full-text index and the text
// it is built from. LibraryService manages saved records, notes, files
// and backups. SettingsService reads and validates configuration.
package services
