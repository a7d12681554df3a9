package tracer

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// Tracer provides distributed tracing capabilities for HTTP services.
// It wraps OpenTelemetry functionality with a simplified interface for
// creating spans, extracting inbound trace context, and propagating trace
// context to downstream services.
//
// This interface is implemented by the concrete *TracerClient type.
type Tracer interface {
	// StartSpan creates a new internal span with the given name.
	// The span is automatically attached to the parent span in the context (if any).
	// Returns a new context carrying the span and the span itself.
	// Always call span.End() when the operation completes (typically via defer).
	StartSpan(ctx context.Context, name string) (context.Context, Span)

	// StartServerSpan creates a new span of server kind with the given name.
	// Server spans represent the handling of one inbound request. When the
	// context carries a remote span context (see Extract), the new span
	// becomes a child of the caller's span; otherwise it is a root span.
	StartServerSpan(ctx context.Context, name string) (context.Context, Span)

	// Extract reads W3C Trace Context headers (traceparent, tracestate,
	// baggage) from the inbound request headers and returns a context
	// carrying the remote span context. Headers without trace context are
	// valid: the returned context then carries no parent and spans started
	// from it become roots.
	Extract(ctx context.Context, headers http.Header) context.Context

	// GetCarrier extracts trace context from the given context as a map of
	// headers. Use this when making outbound HTTP requests or publishing
	// messages so the trace continues in the next service.
	GetCarrier(ctx context.Context) map[string]string

	// SetCarrierOnContext injects trace context from a header map into the
	// given context. This is the map-based counterpart of Extract for
	// non-HTTP carriers (queue messages, RPC metadata).
	SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context
}

// Span represents a single timed, taggable unit of traced work.
//
// The Span interface abstracts the underlying OpenTelemetry implementation,
// providing a clean API for middleware and application code to interact with
// spans without direct dependencies on the tracing library.
//
// A span is mutable through SetAttributes and RecordError until End is
// called. Ending a span is terminal: mutations after End are discarded by the
// SDK, and a span that is never ended leaks trace data. Callers that may end
// a span from more than one code path should wrap it (see filter.SpanGuard)
// rather than calling End twice.
type Span interface {
	// End completes the span and submits it to configured exporters.
	// End must be called exactly once, when the traced operation completes.
	End()

	// SetAttributes adds key-value pairs of attributes to the span.
	// Strings, ints, int64s, float64s and bools are stored natively;
	// any other type is converted with fmt.Sprint.
	//
	// Example:
	//
	//	span.SetAttributes(map[string]interface{}{
	//	    "http.method":      "GET",
	//	    "http.status_code": 200,
	//	})
	SetAttributes(attrs map[string]interface{})

	// RecordError records the error on the span and sets the span status
	// to Error with the error message as description. Call it whenever the
	// traced operation fails, before returning the error to the caller.
	RecordError(err error)

	// SpanContext returns the portable identifier correlating this span
	// with its containing trace (trace ID, span ID, flags).
	SpanContext() trace.SpanContext
}
