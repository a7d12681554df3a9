package filter

import (
	"sync/atomic"

	"github.com/aalemi-dev/httptrace-lab/tracer"
)

// SpanGuard owns the server span for the duration of one request and makes
// finishing it idempotent. The guard exists because the synchronous cleanup
// path and an asynchronous completion listener can race to finish the same
// span after the handler's call stack has unwound; the tracing SDK treats a
// double finish as invalid, and a span that is never finished leaks trace
// data.
//
// Finish uses an atomic check-and-set, so no additional locking is needed.
type SpanGuard struct {
	span     tracer.Span
	finished atomic.Bool
}

// NewSpanGuard wraps the given span in a guard. The guard assumes exclusive
// ownership of the span's lifecycle: all paths that may end the span must go
// through Finish.
func NewSpanGuard(span tracer.Span) *SpanGuard {
	return &SpanGuard{span: span}
}

// Span returns the guarded span for tagging. Intended for infrastructure
// layers (interceptors, inner middleware) that enrich the server span; do
// not use it to trace business logic, start child spans from the request
// context instead.
func (g *SpanGuard) Span() tracer.Span {
	return g.span
}

// Finish ends the span exactly once. The first call ends the span and
// returns true; every later call, from any goroutine, is a no-op returning
// false.
func (g *SpanGuard) Finish() bool {
	if !g.finished.CompareAndSwap(false, true) {
		return false
	}
	g.span.End()
	return true
}

// Finished reports whether the span has been finished.
func (g *SpanGuard) Finished() bool {
	return g.finished.Load()
}
