package filter

import (
	"net/http"
	"time"

	"github.com/aalemi-dev/httptrace-lab/tracer"
)

// StandardTags is the default SpanDecorator. It applies the conventional
// HTTP span attributes: method, URL and host on request, status code on
// response, and the recorded error plus status on failures. Timeouts record
// the deadline that elapsed alongside the error.
type StandardTags struct{}

// NewStandardTags returns the decorator installed when no decorator list is
// configured.
func NewStandardTags() *StandardTags {
	return &StandardTags{}
}

// OnRequest implements SpanDecorator.
func (StandardTags) OnRequest(r *http.Request, span tracer.Span) {
	span.SetAttributes(map[string]interface{}{
		"http.method": r.Method,
		"http.url":    r.URL.String(),
		"http.host":   r.Host,
	})
}

// OnResponse implements SpanDecorator.
func (StandardTags) OnResponse(r *http.Request, resp ResponseInfo, span tracer.Span) {
	span.SetAttributes(map[string]interface{}{
		"http.status_code": resp.Status(),
	})
}

// OnError implements SpanDecorator.
func (StandardTags) OnError(r *http.Request, resp ResponseInfo, err error, span tracer.Span) {
	span.RecordError(err)
	attrs := map[string]interface{}{"error": true}
	if status := resp.Status(); status != 0 {
		attrs["http.status_code"] = status
	}
	span.SetAttributes(attrs)
}

// OnTimeout implements SpanDecorator.
func (StandardTags) OnTimeout(r *http.Request, resp ResponseInfo, timeout time.Duration, span tracer.Span) {
	span.RecordError(ErrAsyncTimeout)
	span.SetAttributes(map[string]interface{}{
		"error":            true,
		"http.timeout_ms":  timeout.Milliseconds(),
		"http.async.state": "timed_out",
	})
}
