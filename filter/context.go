package filter

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Unexported key types keep the request-scoped values collision-free and
// force access through the typed accessors below.
type (
	serverSpanContextKey struct{}
	serverSpanKey        struct{}
	asyncContextKey      struct{}
	requestStartKey      struct{}
)

// ContextWithServerSpan returns a context carrying the guard, its span's
// context, and the request start time. The filter calls this for every
// traced request; adapters hosting the same decorator contract in other
// pipelines (see the gintrace package) call it so nested layers and the
// already-traced check behave identically there.
func ContextWithServerSpan(ctx context.Context, guard *SpanGuard) context.Context {
	ctx = context.WithValue(ctx, serverSpanContextKey{}, guard.Span().SpanContext())
	ctx = context.WithValue(ctx, serverSpanKey{}, guard)
	return context.WithValue(ctx, requestStartKey{}, time.Now())
}

// withAsyncContext attaches the continuation handle consumed by Detach.
func withAsyncContext(ctx context.Context, ac *AsyncContext) context.Context {
	return context.WithValue(ctx, asyncContextKey{}, ac)
}

// ServerSpanContext returns the active server span's context for the
// request, for layers that only need trace correlation (log enrichment,
// outbound propagation). The second return is false when the request is not
// traced.
func ServerSpanContext(ctx context.Context) (trace.SpanContext, bool) {
	sc, ok := ctx.Value(serverSpanContextKey{}).(trace.SpanContext)
	return sc, ok
}

// ServerSpan returns the active server span's guard, for infrastructure
// layers that need to add further tags to the span. Not intended for
// general business-logic tracing: start child spans from the request
// context for that, and use ServerSpanContext when correlation alone is
// needed.
func ServerSpan(ctx context.Context) (*SpanGuard, bool) {
	guard, ok := ctx.Value(serverSpanKey{}).(*SpanGuard)
	return guard, ok
}

// RequestStart returns the time at which the server span was started.
// Duration-aware decorators use it to stay stateless.
func RequestStart(ctx context.Context) (time.Time, bool) {
	start, ok := ctx.Value(requestStartKey{}).(time.Time)
	return start, ok
}

func asyncFromContext(ctx context.Context) (*AsyncContext, bool) {
	ac, ok := ctx.Value(asyncContextKey{}).(*AsyncContext)
	return ac, ok
}
