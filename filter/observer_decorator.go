package filter

import (
	"net/http"
	"time"

	"github.com/aalemi-dev/httptrace-lab/observability"
	"github.com/aalemi-dev/httptrace-lab/tracer"
)

// ObserverDecorator bridges terminal request events to an
// observability.Observer. OnRequest is a no-op; the observer is notified
// exactly once per request, at its terminal event, mirroring the decorator
// contract.
type ObserverDecorator struct {
	observer observability.Observer
}

// NewObserverDecorator returns a decorator reporting request outcomes to the
// given observer. A nil observer yields a decorator that does nothing.
func NewObserverDecorator(observer observability.Observer) *ObserverDecorator {
	if observer == nil {
		observer = observability.NewNoOpObserver()
	}
	return &ObserverDecorator{observer: observer}
}

// OnRequest implements SpanDecorator.
func (ObserverDecorator) OnRequest(*http.Request, tracer.Span) {}

// OnResponse implements SpanDecorator.
func (d *ObserverDecorator) OnResponse(r *http.Request, resp ResponseInfo, _ tracer.Span) {
	d.observe(r, resp, observability.OutcomeResponse, nil, nil)
}

// OnError implements SpanDecorator.
func (d *ObserverDecorator) OnError(r *http.Request, resp ResponseInfo, err error, _ tracer.Span) {
	d.observe(r, resp, observability.OutcomeError, err, nil)
}

// OnTimeout implements SpanDecorator.
func (d *ObserverDecorator) OnTimeout(r *http.Request, resp ResponseInfo, timeout time.Duration, _ tracer.Span) {
	d.observe(r, resp, observability.OutcomeTimeout, ErrAsyncTimeout, map[string]interface{}{
		"timeout": timeout.String(),
	})
}

func (d *ObserverDecorator) observe(r *http.Request, resp ResponseInfo, outcome string, err error, metadata map[string]interface{}) {
	var duration time.Duration
	if start, ok := RequestStart(r.Context()); ok {
		duration = time.Since(start)
	}
	d.observer.ObserveRequest(observability.RequestContext{
		Component:    "http",
		Method:       r.Method,
		Route:        r.URL.Path,
		Outcome:      outcome,
		StatusCode:   resp.Status(),
		Duration:     duration,
		Error:        err,
		BytesWritten: resp.BytesWritten(),
		Metadata:     metadata,
	})
}
