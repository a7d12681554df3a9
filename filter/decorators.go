package filter

import (
	"net/http"
	"time"

	"github.com/aalemi-dev/httptrace-lab/tracer"
)

// Decorators run in registration order at each lifecycle event. A panic in
// one decorator is contained to that decorator: it is logged and the
// remaining decorators still run, so an instrumentation bug cannot fail the
// request or starve the span of its other tags.

func (f *Filter) fireOnRequest(r *http.Request, span tracer.Span) {
	for _, d := range f.decorators {
		f.safeInvoke(r, "OnRequest", func() { d.OnRequest(r, span) })
	}
}

func (f *Filter) fireOnResponse(r *http.Request, resp ResponseInfo, span tracer.Span) {
	for _, d := range f.decorators {
		f.safeInvoke(r, "OnResponse", func() { d.OnResponse(r, resp, span) })
	}
}

func (f *Filter) fireOnError(r *http.Request, resp ResponseInfo, err error, span tracer.Span) {
	for _, d := range f.decorators {
		f.safeInvoke(r, "OnError", func() { d.OnError(r, resp, err, span) })
	}
}

func (f *Filter) fireOnTimeout(r *http.Request, resp ResponseInfo, timeout time.Duration, span tracer.Span) {
	for _, d := range f.decorators {
		f.safeInvoke(r, "OnTimeout", func() { d.OnTimeout(r, resp, timeout, span) })
	}
}

func (f *Filter) safeInvoke(r *http.Request, event string, invoke func()) {
	defer func() {
		if p := recover(); p != nil {
			f.log.WarnWithContext(r.Context(), "span decorator panicked", panicError(p),
				map[string]interface{}{
					"event":  event,
					"method": r.Method,
					"path":   r.URL.Path,
				})
		}
	}()
	invoke()
}
