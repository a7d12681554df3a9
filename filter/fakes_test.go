package filter

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/aalemi-dev/httptrace-lab/tracer"
)

// fakeSpan records every mutation so tests can assert on tagging and on the
// exactly-once finish guarantee.
type fakeSpan struct {
	name string
	ends atomic.Int32
	sc   trace.SpanContext

	mu       sync.Mutex
	attrs    map[string]interface{}
	recorded []error
}

func newFakeSpan(name string) *fakeSpan {
	return &fakeSpan{
		name:  name,
		attrs: map[string]interface{}{},
		sc: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: trace.TraceID{0x4b, 0xf9, 0x2f, 0x35, 0x77, 0xb3, 0x4d, 0xa6, 0xa3, 0xce, 0x92, 0x9d, 0x0e, 0x0e, 0x47, 0x36},
			SpanID:  trace.SpanID{0x00, 0xf0, 0x67, 0xaa, 0x0b, 0xa9, 0x02, 0xb7},
		}),
	}
}

func (s *fakeSpan) End() { s.ends.Add(1) }

func (s *fakeSpan) SetAttributes(attrs map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range attrs {
		s.attrs[k] = v
	}
}

func (s *fakeSpan) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorded = append(s.recorded, err)
}

func (s *fakeSpan) SpanContext() trace.SpanContext { return s.sc }

func (s *fakeSpan) attr(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.attrs[key]
	return v, ok
}

func (s *fakeSpan) errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.recorded...)
}

// fakeTracer hands out fakeSpans and remembers them in creation order.
type fakeTracer struct {
	mu    sync.Mutex
	spans []*fakeSpan
}

func (f *fakeTracer) newSpan(ctx context.Context, name string) (context.Context, tracer.Span) {
	span := newFakeSpan(name)
	f.mu.Lock()
	f.spans = append(f.spans, span)
	f.mu.Unlock()
	return ctx, span
}

func (f *fakeTracer) StartSpan(ctx context.Context, name string) (context.Context, tracer.Span) {
	return f.newSpan(ctx, name)
}

func (f *fakeTracer) StartServerSpan(ctx context.Context, name string) (context.Context, tracer.Span) {
	return f.newSpan(ctx, name)
}

func (f *fakeTracer) Extract(ctx context.Context, _ http.Header) context.Context { return ctx }

func (f *fakeTracer) GetCarrier(context.Context) map[string]string { return map[string]string{} }

func (f *fakeTracer) SetCarrierOnContext(ctx context.Context, _ map[string]string) context.Context {
	return ctx
}

func (f *fakeTracer) spanCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.spans)
}

func (f *fakeTracer) lastSpan() *fakeSpan {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.spans) == 0 {
		return nil
	}
	return f.spans[len(f.spans)-1]
}

// recordingTracer backs the Tracer interface with a real SDK provider and an
// in-memory span recorder, so tests can inspect finished spans' parent links
// and kinds.
type recordingTracer struct {
	recorder *tracetest.SpanRecorder
	provider *sdktrace.TracerProvider
}

func newRecordingTracer() *recordingTracer {
	sr := tracetest.NewSpanRecorder()
	return &recordingTracer{
		recorder: sr,
		provider: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)),
	}
}

type recordedSpan struct {
	span trace.Span
}

func (s *recordedSpan) End() { s.span.End() }

func (s *recordedSpan) SetAttributes(attrs map[string]interface{}) {
	for k, v := range attrs {
		s.span.SetAttributes(attribute.String(k, fmt.Sprint(v)))
	}
}

func (s *recordedSpan) RecordError(err error) { s.span.RecordError(err) }

func (s *recordedSpan) SpanContext() trace.SpanContext { return s.span.SpanContext() }

func (t *recordingTracer) start(ctx context.Context, name string, kind trace.SpanKind) (context.Context, tracer.Span) {
	ctx, span := t.provider.Tracer("").Start(ctx, name, trace.WithSpanKind(kind))
	return ctx, &recordedSpan{span: span}
}

func (t *recordingTracer) StartSpan(ctx context.Context, name string) (context.Context, tracer.Span) {
	return t.start(ctx, name, trace.SpanKindInternal)
}

func (t *recordingTracer) StartServerSpan(ctx context.Context, name string) (context.Context, tracer.Span) {
	return t.start(ctx, name, trace.SpanKindServer)
}

func (t *recordingTracer) Extract(ctx context.Context, headers http.Header) context.Context {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	return propagator.Extract(ctx, propagation.HeaderCarrier(headers))
}

func (t *recordingTracer) GetCarrier(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(ctx, carrier)
	return carrier
}

func (t *recordingTracer) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	return propagation.TraceContext{}.Extract(ctx, propagation.MapCarrier(carrier))
}

// recordingDecorator appends one entry per lifecycle event.
type recordingDecorator struct {
	mu     sync.Mutex
	events []string
	errs   []error
}

func (d *recordingDecorator) add(event string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	if err != nil {
		d.errs = append(d.errs, err)
	}
}

func (d *recordingDecorator) OnRequest(*http.Request, tracer.Span) { d.add("request", nil) }

func (d *recordingDecorator) OnResponse(*http.Request, ResponseInfo, tracer.Span) {
	d.add("response", nil)
}

func (d *recordingDecorator) OnError(_ *http.Request, _ ResponseInfo, err error, _ tracer.Span) {
	d.add("error", err)
}

func (d *recordingDecorator) OnTimeout(*http.Request, ResponseInfo, time.Duration, tracer.Span) {
	d.add("timeout", nil)
}

func (d *recordingDecorator) seen() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func (d *recordingDecorator) lastErr() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.errs) == 0 {
		return nil
	}
	return d.errs[len(d.errs)-1]
}

// panickingDecorator fails at every event; the filter must isolate it.
type panickingDecorator struct{}

func (panickingDecorator) OnRequest(*http.Request, tracer.Span) { panic("decorator boom") }

func (panickingDecorator) OnResponse(*http.Request, ResponseInfo, tracer.Span) {
	panic("decorator boom")
}

func (panickingDecorator) OnError(*http.Request, ResponseInfo, error, tracer.Span) {
	panic("decorator boom")
}

func (panickingDecorator) OnTimeout(*http.Request, ResponseInfo, time.Duration, tracer.Span) {
	panic("decorator boom")
}

// nopLogger silences the filter in tests.
type nopLogger struct{}

func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

func (nopLogger) DebugWithContext(context.Context, string, error, ...map[string]interface{}) {}
func (nopLogger) InfoWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (nopLogger) WarnWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (nopLogger) ErrorWithContext(context.Context, string, error, ...map[string]interface{}) {}
