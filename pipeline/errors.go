package pipeline

import "errors"

// Error kinds surfaced to callers. Everything else the pipeline can hit
// degrades into best-effort text instead of failing the request.
var (
	// ErrUnauthenticated means a strict flow required a principal and none
	// could be produced.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrRejected means the input guard returned an UNSAFE verdict.
	ErrRejected = errors.New("query rejected by input screening")

	// ErrUpstreamUnavailable means the store could not serve a context fetch.
	ErrUpstreamUnavailable = errors.New("upstream dependency unavailable")
)
