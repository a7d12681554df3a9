package metrics

// Collector provides an interface for creating and exposing request metrics.
// It abstracts counter, gauge and histogram creation without exposing any
// Prometheus-specific types, which keeps consumers (like the filter package's
// metrics decorator) mockable in tests.
//
// This interface is implemented by the concrete *Metrics type. All metrics
// created through it are registered on the package registry and exposed via
// the metrics endpoint.
type Collector interface {
	// CreateCounter creates and registers a new counter metric.
	//
	// Counters are cumulative and only increase (e.g. total requests).
	//
	// Example:
	//   counter := m.CreateCounter("http_requests_total", "Total HTTP requests", []string{"method"})
	//   counter.WithLabelValues("GET").Inc()
	CreateCounter(name, help string, labels []string) Counter

	// CreateGauge creates and registers a new gauge metric.
	//
	// Gauges go up and down (e.g. in-flight requests).
	//
	// Example:
	//   gauge := m.CreateGauge("http_requests_in_flight", "In-flight HTTP requests", nil)
	//   gauge.Inc()
	//   defer gauge.Dec()
	CreateGauge(name, help string, labels []string) Gauge

	// CreateHistogram creates and registers a new histogram metric.
	//
	// Histograms track distributions (e.g. request durations) across the
	// given buckets; nil buckets use the Prometheus defaults.
	//
	// Example:
	//   hist := m.CreateHistogram("http_request_duration_seconds", "Request duration", []string{"method"}, nil)
	//   hist.WithLabelValues("GET").Observe(0.25)
	CreateHistogram(name, help string, labels []string, buckets []float64) Histogram
}
