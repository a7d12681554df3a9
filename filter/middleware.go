package filter

import (
	"fmt"
	"net/http"
)

// Middleware wraps the next handler with request tracing. Per request:
//
//  1. Disabled filter, an already-traced request (a server span is on the
//     context from an outer layer), or a request excluded by the traced
//     predicate: delegate untouched.
//  2. Otherwise extract the upstream trace context from the headers (absent
//     is fine, the span becomes a root), start a server span, expose it on
//     the request context, and fire OnRequest.
//  3. Delegate. A normal return with no asynchronous continuation fires
//     OnResponse; a panic fires OnError and is re-raised unchanged after
//     cleanup.
//  4. Cleanup, on all exit paths: when a continuation was detached, a
//     completion listener fires the matching terminal decorator event and
//     finishes the span when the continuation settles; otherwise the span
//     finishes immediately. The guard makes the finish idempotent, so the
//     racing paths cannot double-finish.
func (f *Filter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.disabled {
			next.ServeHTTP(w, r)
			return
		}
		if _, ok := ServerSpanContext(r.Context()); ok {
			// Traced by an outer layer; a second root would split the trace.
			next.ServeHTTP(w, r)
			return
		}
		if !f.isTraced(r) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := f.tracer.Extract(r.Context(), r.Header)
		ctx, span := f.tracer.StartServerSpan(ctx, f.operationName(r))

		guard := NewSpanGuard(span)
		async := newAsyncContext(f.asyncTimeout)
		ctx = ContextWithServerSpan(ctx, guard)
		ctx = withAsyncContext(ctx, async)

		rec := newResponseRecorder(w)
		traced := r.WithContext(ctx)

		f.fireOnRequest(traced, span)

		defer func() {
			p := recover()
			if p != nil {
				f.fireOnError(traced, rec, panicError(p), span)
			}
			if async.Started() {
				async.onDone(func(outcome asyncOutcome, err error) {
					switch outcome {
					case outcomeCompleted:
						f.fireOnResponse(traced, rec, span)
					case outcomeFailed:
						f.fireOnError(traced, rec, err, span)
					case outcomeTimedOut:
						f.fireOnTimeout(traced, rec, async.Timeout(), span)
					}
					guard.Finish()
				})
			} else {
				guard.Finish()
			}
			if p != nil {
				// Identical value: tracing observes failures, never alters them.
				panic(p)
			}
		}()

		next.ServeHTTP(rec, traced)
		if !async.Started() {
			f.fireOnResponse(traced, rec, span)
		}
	})
}

// panicError converts a recovered panic value into the error handed to
// OnError. Error values pass through as-is.
func panicError(p interface{}) error {
	if err, ok := p.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", p)
}
