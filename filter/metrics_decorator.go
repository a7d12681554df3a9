package filter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aalemi-dev/httptrace-lab/metrics"
	"github.com/aalemi-dev/httptrace-lab/tracer"
)

// MetricsDecorator exports request throughput, outcome counts, an in-flight
// gauge and a latency histogram for every traced request. It is stateless
// per request; durations come from the request start recorded on the
// context, so the same decorator instance serves all requests.
type MetricsDecorator struct {
	requests  metrics.Counter
	responses metrics.Counter
	errors    metrics.Counter
	timeouts  metrics.Counter
	inFlight  metrics.Gauge
	duration  metrics.Histogram
}

// NewMetricsDecorator registers the request metric families on the collector
// and returns the decorator exporting them.
func NewMetricsDecorator(collector metrics.Collector) *MetricsDecorator {
	return &MetricsDecorator{
		requests: collector.CreateCounter(
			"http_requests_total",
			"Total number of traced HTTP requests received.",
			[]string{"method"}),
		responses: collector.CreateCounter(
			"http_responses_total",
			"Total number of HTTP requests completed with a response.",
			[]string{"method", "status"}),
		errors: collector.CreateCounter(
			"http_request_errors_total",
			"Total number of HTTP requests that terminated with a failure.",
			[]string{"method"}),
		timeouts: collector.CreateCounter(
			"http_request_timeouts_total",
			"Total number of asynchronous HTTP requests that timed out.",
			[]string{"method"}),
		inFlight: collector.CreateGauge(
			"http_requests_in_flight",
			"Number of traced HTTP requests currently being processed.",
			nil),
		duration: collector.CreateHistogram(
			"http_request_duration_seconds",
			"Time from span start to the request's terminal event.",
			[]string{"method"}, nil),
	}
}

// OnRequest implements SpanDecorator.
func (d *MetricsDecorator) OnRequest(r *http.Request, _ tracer.Span) {
	d.requests.WithLabelValues(r.Method).Inc()
	d.inFlight.Inc()
}

// OnResponse implements SpanDecorator.
func (d *MetricsDecorator) OnResponse(r *http.Request, resp ResponseInfo, _ tracer.Span) {
	d.responses.WithLabelValues(r.Method, strconv.Itoa(resp.Status())).Inc()
	d.settle(r)
}

// OnError implements SpanDecorator.
func (d *MetricsDecorator) OnError(r *http.Request, _ ResponseInfo, _ error, _ tracer.Span) {
	d.errors.WithLabelValues(r.Method).Inc()
	d.settle(r)
}

// OnTimeout implements SpanDecorator.
func (d *MetricsDecorator) OnTimeout(r *http.Request, _ ResponseInfo, _ time.Duration, _ tracer.Span) {
	d.timeouts.WithLabelValues(r.Method).Inc()
	d.settle(r)
}

func (d *MetricsDecorator) settle(r *http.Request) {
	d.inFlight.Dec()
	if start, ok := RequestStart(r.Context()); ok {
		d.duration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	}
}
