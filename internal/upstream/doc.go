// Package upstream is the authenticated REST client shared by both
// adapters.
//
// # Error Taxonomy
//
// Callers need to tell "the service rejected the request" apart from
// "we could not reach the service", so failures come in three kinds:
//
//   - *Error: HTTP status >= 400 with the upstream's own message
//   - {"raw_content": ...}: a success response that was not JSON where
//     JSON was expected (returned as data, logged as a warning)
//   - *NetworkError: connection failures and timeouts, preserving the
//     original cause
//
// No retries are performed; a single upstream failure is surfaced
// immediately. Every request is bounded by the client timeout.
package upstream
