// Package observability provides a unified interface for observing HTTP
// request outcomes produced by the tracing middleware in this module.
//
// # Overview
//
// The observability package defines a single Observer interface that the
// middleware packages (filter, gintrace) call once per traced request with the
// request's terminal outcome. This allows applications to implement metrics,
// access logging, SLO accounting, or auditing in one place without touching
// the span lifecycle itself.
//
// # Design Philosophy
//
// 1. **Optional**: the middleware works perfectly without an observer
// 2. **Terminal-only**: observers see finished requests, never in-flight state
// 3. **Flexible**: an observer can implement metrics, logging, or both
// 4. **Non-intrusive**: one function call per request, no allocations when absent
//
// # Usage
//
// Wrap an Observer into a span decorator and register it with the filter:
//
//	obs := &MyObserver{}
//	f := filter.NewFilter(filter.Config{
//	    Tracer: tracerClient,
//	    Decorators: []filter.SpanDecorator{
//	        filter.NewStandardTags(),
//	        filter.NewObserverDecorator(obs),
//	    },
//	})
//
// An observer implementation:
//
//	type MyObserver struct{}
//
//	func (o *MyObserver) ObserveRequest(ctx observability.RequestContext) {
//	    if ctx.Error != nil {
//	        log.Printf("%s %s failed after %s: %v", ctx.Method, ctx.Route, ctx.Duration, ctx.Error)
//	        return
//	    }
//	    log.Printf("%s %s -> %d in %s", ctx.Method, ctx.Route, ctx.StatusCode, ctx.Duration)
//	}
//
// # Thread Safety
//
// Observer implementations must be thread-safe. They will be called
// concurrently from multiple goroutines, including goroutines that complete
// asynchronous continuations.
package observability
