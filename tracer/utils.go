package tracer

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"
)

// spanImpl is the internal implementation of the Span interface wrapping an
// OpenTelemetry span.
type spanImpl struct {
	span traceSpan.Span
}

// End completes the underlying OpenTelemetry span, records its end time and
// submits it to configured exporters. After End, further mutations are
// discarded by the SDK.
func (s *spanImpl) End() {
	s.span.End()
}

// SetAttributes adds attributes to the span, converting common Go types to
// their native OpenTelemetry representations. Unsupported types are
// stringified with fmt.Sprint.
func (s *spanImpl) SetAttributes(attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))

	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(k, val))
		case int:
			attributes = append(attributes, attribute.Int(k, val))
		case int64:
			attributes = append(attributes, attribute.Int64(k, val))
		case float64:
			attributes = append(attributes, attribute.Float64(k, val))
		case bool:
			attributes = append(attributes, attribute.Bool(k, val))
		default:
			attributes = append(attributes, attribute.String(k, fmt.Sprint(val)))
		}
	}

	s.span.SetAttributes(attributes...)
}

// RecordError records the error event on the span and sets the span status
// to Error with the error message as description. Spans with recorded errors
// are highlighted in trace visualizations, making failed requests easy to
// spot.
func (s *spanImpl) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SpanContext returns the portable trace/span identifier of this span.
func (s *spanImpl) SpanContext() traceSpan.SpanContext {
	return s.span.SpanContext()
}

// StartSpan creates a new internal span with the given name and returns an
// updated context containing it. The created span becomes a child of any
// span already in the context; without one it becomes a new root.
//
// Always defer span.End() immediately after creating the span.
func (t *TracerClient) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	return t.start(ctx, name, traceSpan.SpanKindInternal)
}

// StartServerSpan creates a new server-kind span with the given name.
// Server spans represent the handling of one inbound request: if the context
// carries a remote span context extracted from inbound headers (see
// Extract), the new span is a child correlated with the caller's trace;
// otherwise it starts a new root trace.
func (t *TracerClient) StartServerSpan(ctx context.Context, name string) (context.Context, Span) {
	return t.start(ctx, name, traceSpan.SpanKindServer)
}

func (t *TracerClient) start(ctx context.Context, name string, kind traceSpan.SpanKind) (context.Context, Span) {
	tracer := t.tracer.Tracer("")
	ctx, otSpan := tracer.Start(ctx, name, traceSpan.WithSpanKind(kind))

	return ctx, &spanImpl{span: otSpan}
}

// Extract reads W3C Trace Context headers from inbound HTTP headers and
// returns a context carrying the remote span context. Requests without trace
// headers yield a context with no parent, so the next server span becomes a
// root span.
//
// Example:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    ctx := client.Extract(r.Context(), r.Header)
//	    ctx, span := client.StartServerSpan(ctx, r.Method)
//	    defer span.End()
//	    // ...
//	}
func (t *TracerClient) Extract(ctx context.Context, headers http.Header) context.Context {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	return propagator.Extract(ctx, propagation.HeaderCarrier(headers))
}

// GetCarrier extracts the current trace context from a context object and
// returns it as a header map for transmission across service boundaries.
// The returned map typically contains "traceparent" and, when present,
// "tracestate".
//
// Example:
//
//	for key, value := range client.GetCarrier(ctx) {
//	    req.Header.Set(key, value)
//	}
func (t *TracerClient) GetCarrier(ctx context.Context) map[string]string {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	carrier := propagation.MapCarrier{}
	propagator.Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext injects trace information from a carrier map into a
// context. This is the map-based counterpart of Extract, for carriers that
// are not http.Header (queue messages, RPC metadata).
func (t *TracerClient) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	return propagator.Extract(ctx, propagation.MapCarrier(carrier))
}
