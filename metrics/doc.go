// Package metrics provides Prometheus request metrics for the tracing
// middleware in this module.
//
// # Overview
//
// The package wraps a single Prometheus registry behind a small Collector
// interface (counters, gauges, histograms) and serves it over HTTP at
// /metrics. The filter package's metrics decorator consumes the Collector to
// record request counts, terminal outcomes, in-flight requests and request
// durations; applications can create additional metrics on the same
// registry.
//
// # Usage
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "edge-gateway"})
//	go m.Server.ListenAndServe()
//
//	f := filter.NewFilter(filter.Config{
//	    Tracer: tracerClient,
//	    Decorators: []filter.SpanDecorator{
//	        filter.NewStandardTags(),
//	        filter.NewMetricsDecorator(m),
//	    },
//	})
//
// Every metric carries a constant "service" label so multiple services can
// share one Prometheus without ambiguity.
//
// # FX Integration
//
// FXModule provides *Metrics and the Collector interface and manages the
// metrics server lifecycle; see fx_module.go.
package metrics
