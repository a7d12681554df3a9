package gintrace

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/aalemi-dev/httptrace-lab/filter"
	"github.com/aalemi-dev/httptrace-lab/tracer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSpan struct {
	name string
	ends atomic.Int32

	mu       sync.Mutex
	attrs    map[string]interface{}
	recorded []error
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

func (s *fakeSpan) SpanContext() trace.SpanContext {
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01},
		SpanID:  trace.SpanID{0x01},
	})
}

type fakeTracer struct {
	mu    sync.Mutex
	spans []*fakeSpan
}

func (f *fakeTracer) newSpan(ctx context.Context, name string) (context.Context, tracer.Span) {
	span := &fakeSpan{name: name, attrs: map[string]interface{}{}}
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

func (f *fakeTracer) lastSpan() *fakeSpan {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.spans) == 0 {
		return nil
	}
	return f.spans[len(f.spans)-1]
}

func (f *fakeTracer) spanCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.spans)
}

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

func (d *recordingDecorator) OnResponse(*http.Request, filter.ResponseInfo, tracer.Span) {
	d.add("response", nil)
}

func (d *recordingDecorator) OnError(_ *http.Request, _ filter.ResponseInfo, err error, _ tracer.Span) {
	d.add("error", err)
}

func (d *recordingDecorator) OnTimeout(*http.Request, filter.ResponseInfo, time.Duration, tracer.Span) {
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

type nopLogger struct{}

func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

func (nopLogger) DebugWithContext(context.Context, string, error, ...map[string]interface{}) {}
func (nopLogger) InfoWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (nopLogger) WarnWithContext(context.Context, string, error, ...map[string]interface{})  {}
func (nopLogger) ErrorWithContext(context.Context, string, error, ...map[string]interface{}) {}

func newTestRouter(cfg Config, register func(r *gin.Engine)) *gin.Engine {
	r := gin.New()
	r.Use(Middleware(cfg))
	register(r)
	return r
}

func TestMiddleware_TracedRequest(t *testing.T) {
	t.Parallel()
	ft := &fakeTracer{}
	dec := &recordingDecorator{}
	r := newTestRouter(Config{Tracer: ft, Logger: nopLogger{}, Decorators: []filter.SpanDecorator{dec}},
		func(r *gin.Engine) {
			r.GET("/users/:id", func(c *gin.Context) {
				c.String(200, "ok")
			})
		})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/users/42", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, []string{"request", "response"}, dec.seen())
	require.Equal(t, 1, ft.spanCount())
	assert.Equal(t, "GET /users/:id", ft.lastSpan().name)
	assert.Equal(t, int32(1), ft.lastSpan().ends.Load())
}

func TestMiddleware_HandlerSeesServerSpan(t *testing.T) {
	t.Parallel()
	ft := &fakeTracer{}
	var traced bool
	r := newTestRouter(Config{Tracer: ft, Logger: nopLogger{}},
		func(r *gin.Engine) {
			r.GET("/ping", func(c *gin.Context) {
				_, traced = filter.ServerSpanContext(c.Request.Context())
				c.Status(204)
			})
		})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/ping", nil))

	assert.True(t, traced)
}

func TestMiddleware_GinErrorReportedAsOnError(t *testing.T) {
	t.Parallel()
	ft := &fakeTracer{}
	dec := &recordingDecorator{}
	boom := errors.New("lookup failed")
	r := newTestRouter(Config{Tracer: ft, Logger: nopLogger{}, Decorators: []filter.SpanDecorator{dec}},
		func(r *gin.Engine) {
			r.GET("/broken", func(c *gin.Context) {
				_ = c.Error(boom)
				c.Status(500)
			})
		})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/broken", nil))

	assert.Equal(t, []string{"request", "error"}, dec.seen())
	assert.ErrorIs(t, dec.lastErr(), boom)
	assert.Equal(t, int32(1), ft.lastSpan().ends.Load())
}

func TestMiddleware_PanicRethrownAfterOnError(t *testing.T) {
	t.Parallel()
	ft := &fakeTracer{}
	dec := &recordingDecorator{}
	boom := errors.New("handler exploded")
	r := newTestRouter(Config{Tracer: ft, Logger: nopLogger{}, Decorators: []filter.SpanDecorator{dec}},
		func(r *gin.Engine) {
			r.GET("/panic", func(*gin.Context) { panic(boom) })
		})

	var recovered interface{}
	func() {
		defer func() { recovered = recover() }()
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/panic", nil))
	}()

	assert.Equal(t, boom, recovered)
	assert.Equal(t, []string{"request", "error"}, dec.seen())
	assert.Equal(t, int32(1), ft.lastSpan().ends.Load())
}

func TestMiddleware_PredicateSkips(t *testing.T) {
	t.Parallel()
	ft := &fakeTracer{}
	r := newTestRouter(Config{
		Tracer:   ft,
		Logger:   nopLogger{},
		IsTraced: func(c *gin.Context) bool { return c.Request.URL.Path != "/healthz" },
	}, func(r *gin.Engine) {
		r.GET("/healthz", func(c *gin.Context) { c.Status(200) })
		r.GET("/orders", func(c *gin.Context) { c.Status(200) })
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, 0, ft.spanCount())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/orders", nil))
	assert.Equal(t, 1, ft.spanCount())
}

func TestMiddleware_AlreadyTracedSkips(t *testing.T) {
	t.Parallel()
	ft := &fakeTracer{}
	r := gin.New()
	cfg := Config{Tracer: ft, Logger: nopLogger{}}
	r.Use(Middleware(cfg), Middleware(cfg))
	r.GET("/once", func(c *gin.Context) { c.Status(200) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/once", nil))

	assert.Equal(t, 1, ft.spanCount())
}

func TestMiddleware_DisabledWithoutTracer(t *testing.T) {
	t.Parallel()
	var traced bool
	r := newTestRouter(Config{Logger: nopLogger{}},
		func(r *gin.Engine) {
			r.GET("/ping", func(c *gin.Context) {
				_, traced = filter.ServerSpanContext(c.Request.Context())
				c.Status(200)
			})
		})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))

	assert.Equal(t, 200, rec.Code)
	assert.False(t, traced)
}

func TestMiddleware_StandardTagsByDefault(t *testing.T) {
	t.Parallel()
	ft := &fakeTracer{}
	r := newTestRouter(Config{Tracer: ft, Logger: nopLogger{}},
		func(r *gin.Engine) {
			r.GET("/tagged", func(c *gin.Context) { c.String(201, "x") })
		})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/tagged", nil))

	span := ft.lastSpan()
	span.mu.Lock()
	defer span.mu.Unlock()
	assert.Equal(t, "GET", span.attrs["http.method"])
	assert.Equal(t, 201, span.attrs["http.status_code"])
}

func TestMiddleware_ChildOfPropagatedContext(t *testing.T) {
	t.Parallel()
	client, err := tracer.NewClient(tracer.Config{ServiceName: "gin-test", AppEnv: "test"})
	require.NoError(t, err)

	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	var got string
	r := newTestRouter(Config{Tracer: client, Logger: nopLogger{}},
		func(r *gin.Engine) {
			r.GET("/orders", func(c *gin.Context) {
				sc, ok := filter.ServerSpanContext(c.Request.Context())
				require.True(t, ok)
				got = sc.TraceID().String()
				c.Status(200)
			})
		})

	req := httptest.NewRequest("GET", "/orders", nil)
	req.Header.Set("traceparent", "00-"+traceID+"-00f067aa0ba902b7-01")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, traceID, got)
}

func TestGinResponseInfo_NotWritten(t *testing.T) {
	t.Parallel()
	ft := &fakeTracer{}
	dec := &recordingDecorator{}
	var status int
	captured := &capturingDecorator{inner: dec, onResponse: func(resp filter.ResponseInfo) {
		status = resp.Status()
	}}
	r := newTestRouter(Config{Tracer: ft, Logger: nopLogger{}, Decorators: []filter.SpanDecorator{captured}},
		func(r *gin.Engine) {
			r.GET("/w", func(c *gin.Context) { c.String(200, "hello") })
		})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/w", nil))

	assert.Equal(t, 200, status)
}

// capturingDecorator lets a test look at the ResponseInfo handed to the chain.
type capturingDecorator struct {
	inner      filter.SpanDecorator
	onResponse func(resp filter.ResponseInfo)
}

func (d *capturingDecorator) OnRequest(r *http.Request, span tracer.Span) {
	d.inner.OnRequest(r, span)
}

func (d *capturingDecorator) OnResponse(r *http.Request, resp filter.ResponseInfo, span tracer.Span) {
	d.onResponse(resp)
	d.inner.OnResponse(r, resp, span)
}

func (d *capturingDecorator) OnError(r *http.Request, resp filter.ResponseInfo, err error, span tracer.Span) {
	d.inner.OnError(r, resp, err, span)
}

func (d *capturingDecorator) OnTimeout(r *http.Request, resp filter.ResponseInfo, timeout time.Duration, span tracer.Span) {
	d.inner.OnTimeout(r, resp, timeout, span)
}
