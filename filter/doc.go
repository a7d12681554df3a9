// Package filter provides net/http middleware that traces inbound requests.
//
// For each traced request the middleware extracts W3C Trace Context from the
// request headers, starts a server-kind span (a child of the caller's span
// when one is propagated, a root otherwise), runs the configured
// SpanDecorator chain at the request's lifecycle events, and finishes the
// span exactly once regardless of how the request terminates.
//
// Synchronous requests finish when the handler returns; a handler panic is
// reported through OnError and re-raised unchanged. Handlers whose work
// outlives the handler call detach a completion handle with Detach and
// settle it from the background goroutine with Complete or Fail; a
// continuation that settles neither way is timed out by the filter. The
// span's finish follows the continuation's terminal event, never the
// handler's return.
//
// Basic usage:
//
//	tr, _ := tracer.NewClient(tracer.Config{ServiceName: "orders"})
//	f := filter.NewFilter(filter.Config{Tracer: tr})
//	http.ListenAndServe(":8080", f.Middleware(mux))
package filter
