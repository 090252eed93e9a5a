// ABOUTME: Typed errors distinguishing upstream rejections from transport failures.
// ABOUTME: Callers branch on *Error (HTTP status) vs *NetworkError (unreachable).

package upstream

import "fmt"

// Error is an upstream HTTP error: the service answered with status >= 400.
// Message carries the upstream-provided error message verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream API error (%d): %s", e.Status, e.Message)
}

// NetworkError is a transport-level failure: the request never received
// an HTTP response (connection refused, DNS failure, timeout). The
// original cause is preserved for unwrapping.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
