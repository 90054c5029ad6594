// Package connectors builds the remote source adapters used by federated
// search. Each subpackage knows one source: how to shape a query for it,
// call it and map its response to domain.SearchResult. Shared HTTP policy
// lives in web; the museum quality filter lives in museum.
//
// Adapters are assembled by [Build] in fan-out order, which is also the
// order deduplication keeps.
package connectors
