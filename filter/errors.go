package filter

import "errors"

var (
	// ErrNoActiveSpan is returned by Detach when the request carries no
	// active server span, either because the filter is disabled, the
	// request was excluded by the traced predicate, or the request never
	// passed through the filter.
	ErrNoActiveSpan = errors.New("no active server span on request")

	// ErrAsyncFailure is the failure recorded when AsyncContext.Fail is
	// called with a nil error.
	ErrAsyncFailure = errors.New("asynchronous processing failed")

	// ErrAsyncTimeout is the failure recorded on the span when an
	// asynchronous continuation exceeds its deadline.
	ErrAsyncTimeout = errors.New("asynchronous processing timed out")
)
