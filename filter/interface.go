package filter

import (
	"net/http"
	"time"

	"github.com/aalemi-dev/httptrace-lab/tracer"
)

// SpanDecorator applies tags and events to the server span at well-defined
// points of the request lifecycle. Decorators are policy objects: they hold
// no per-request state, are shared by reference across all concurrently
// processed requests, and the configured list must not be mutated once the
// filter starts serving traffic.
//
// For every traced request, OnRequest fires first, followed by exactly one
// terminal event: OnResponse, OnError or OnTimeout. Terminal events are
// mutually exclusive.
//
// A panicking decorator is isolated by the filter: the panic is logged and
// neither later decorators nor the span finish are affected.
type SpanDecorator interface {
	// OnRequest is called once, immediately after span creation and
	// before delegating to the next handler. Use it to tag request
	// metadata such as HTTP method and URL.
	OnRequest(r *http.Request, span tracer.Span)

	// OnResponse is called once when processing completes successfully,
	// either synchronously or when an asynchronous continuation
	// completes.
	OnResponse(r *http.Request, resp ResponseInfo, span tracer.Span)

	// OnError is called once when processing fails: a handler panic on
	// the synchronous path, or a failure reported through
	// AsyncContext.Fail. The failure is re-raised to the caller
	// unchanged after decorators ran.
	OnError(r *http.Request, resp ResponseInfo, err error, span tracer.Span)

	// OnTimeout is called once when an asynchronous continuation times
	// out. timeout is the configured deadline that expired.
	OnTimeout(r *http.Request, resp ResponseInfo, timeout time.Duration, span tracer.Span)
}

// ResponseInfo exposes the response metadata available to decorators at
// terminal events.
type ResponseInfo interface {
	// Status returns the HTTP status code written to the client.
	// Defaults to 200 when the handler wrote a body without an explicit
	// WriteHeader, and 0 when nothing was written at all.
	Status() int

	// BytesWritten returns the number of response body bytes written so
	// far.
	BytesWritten() int64
}

// TracedPredicate decides whether a request should be traced at all.
// Returning false bypasses span creation entirely for that request.
// The default predicate traces every request.
type TracedPredicate func(r *http.Request) bool
