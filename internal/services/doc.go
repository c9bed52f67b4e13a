// Package services implements [Client], the HTTP client for the remote book tracking service.
//
// # Store Interface
//
// [Store] composes [BookStore], [CategoryStore] and [UserFinder]. Higher layers depend on these
// interfaces so tests can substitute an in-memory fake.
//
// # Requests
//
// Every request carries an X-Request-ID header (a v4 UUID) and Accept: application/json; requests
// with a body also set Content-Type. Outgoing requests pass through an optional [rate.Limiter]
// so the per-book review fan-out cannot flood the server. Nothing is retried.
//
// # Error Handling
//
// Every failure is a [*RemoteError]:
//   - Status 0 : the request could not be sent, or the response could not be read or decoded ([shared.ErrNetwork])
//   - Status >= 300 : the server answered with a non-2xx code ([shared.ErrServerRejected])
//
// The server's explanation comes from a JSON "message" or "error" field, or the response text.
// Responses are read in full and decoded into a fresh value so a failed decode never yields partial data.
//
// # Plain Text Endpoints
//
// GET /categories/suggest answers with a bare category name rather than JSON.
// [Client.Get] returns any response unchanged for debugging.
package services
