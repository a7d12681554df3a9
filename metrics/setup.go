package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates one Prometheus registry and the HTTP server exposing
// it. Request metrics created through the Collector interface and the
// standard Go runtime/process collectors all land on the same registry.
//
// Metrics implements the Collector interface.
type Metrics struct {
	// Registry is the Prometheus registry backing all metrics created
	// through this instance.
	Registry *prometheus.Registry

	// Server is the HTTP server exposing /metrics. nil when the endpoint
	// was disabled via an empty Address.
	Server *http.Server

	// wrappedRegisterer is the service-label-wrapped registerer used
	// internally so every metric carries a constant service label.
	wrappedRegisterer prometheus.Registerer
}

// NewMetrics initializes and returns a new Metrics instance.
//
// The registry is pre-populated with the standard Go runtime and process
// collectors, and every metric is wrapped with a constant `service` label
// from the configuration. Metrics are served at /metrics on cfg.Address
// (default ":9090"); an explicitly empty address disables the server while
// keeping the registry functional.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "edge-gateway"})
//	go m.Server.ListenAndServe()
//
//	requests := m.CreateCounter("http_requests_total", "Total HTTP requests", []string{"method"})
//	requests.WithLabelValues("GET").Inc()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	wrapped.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry:          registry,
		wrappedRegisterer: wrapped,
	}

	addr := DefaultAddress
	if cfg.Address != nil {
		addr = *cfg.Address
	}

	if addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		m.Server = &http.Server{
			Addr:    addr,
			Handler: mux,
		}
	}

	return m
}

// CreateCounter creates a new counter metric and registers it on the
// registry. See Collector.CreateCounter.
func (m *Metrics) CreateCounter(name, help string, labels []string) Counter {
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
	m.wrappedRegisterer.MustRegister(vec)
	return &counterVec{vec: vec}
}

// CreateGauge creates a new gauge metric and registers it on the registry.
// See Collector.CreateGauge.
func (m *Metrics) CreateGauge(name, help string, labels []string) Gauge {
	vec := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
	m.wrappedRegisterer.MustRegister(vec)
	return &gaugeVec{vec: vec}
}

// CreateHistogram creates a new histogram metric and registers it on the
// registry. nil buckets fall back to prometheus.DefBuckets.
// See Collector.CreateHistogram.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) Histogram {
	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
	m.wrappedRegisterer.MustRegister(vec)
	return &histogramVec{vec: vec}
}
