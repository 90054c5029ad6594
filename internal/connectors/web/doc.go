// Package web is the HTTP layer shared by every remote source adapter.
//
// A [Client] owns the outbound policy for one source: the optional relay
// prefix (target URLs are query-escaped and appended to it), the user
// agent, a response body cap and a [RateLimiter]. It returns decoded JSON
// or a goquery document, and maps failures to typed errors:
//
//   - non-2xx responses become [*APIError]
//   - 429 responses and bodies announcing a rate limit become
//     [*RateLimitError], which matches [domain.ErrRateLimited]
//   - undecodable JSON matches [domain.ErrMalformedPayload]
//
// Adapters return these errors unchanged; the fan-out coordinator is the
// only place they are logged and turned into empty result lists.
package web
