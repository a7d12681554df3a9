package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Counter represents a cumulative metric that only increases.
//
// This interface abstracts the underlying Prometheus CounterVec implementation.
type Counter interface {
	// WithLabelValues returns the Counter for the given label values.
	// The number of label values must match the number of labels defined
	// when the counter was created.
	WithLabelValues(lvs ...string) Counter

	// Inc increments the counter by 1.
	Inc()

	// Add adds the given value to the counter. The value must be >= 0.
	Add(val float64)
}

// Gauge represents a metric that can arbitrarily go up and down.
//
// This interface abstracts the underlying Prometheus GaugeVec implementation.
type Gauge interface {
	// WithLabelValues returns the Gauge for the given label values.
	WithLabelValues(lvs ...string) Gauge

	// Set sets the gauge to an arbitrary value.
	Set(val float64)

	// Inc increments the gauge by 1.
	Inc()

	// Dec decrements the gauge by 1.
	Dec()

	// Add adds the given value to the gauge. The value can be negative.
	Add(val float64)
}

// Histogram tracks the distribution of observations, such as request
// durations or response sizes.
//
// This interface abstracts the underlying Prometheus HistogramVec implementation.
type Histogram interface {
	// WithLabelValues returns the Observer for the given label values.
	WithLabelValues(lvs ...string) Observer

	// Observe adds a single observation to the unlabeled histogram.
	Observe(val float64)
}

// Observer records observations for a single labeled series of a Histogram.
type Observer interface {
	// Observe adds a single observation.
	Observe(val float64)
}

// counterVec backs the Counter interface with a Prometheus CounterVec.
// An unbound counterVec targets the zero-label series; WithLabelValues
// returns a bound copy targeting one labeled series.
type counterVec struct {
	vec   *prometheus.CounterVec
	bound prometheus.Counter
}

func (c *counterVec) WithLabelValues(lvs ...string) Counter {
	return &counterVec{vec: c.vec, bound: c.vec.WithLabelValues(lvs...)}
}

func (c *counterVec) target() prometheus.Counter {
	if c.bound != nil {
		return c.bound
	}
	return c.vec.WithLabelValues()
}

func (c *counterVec) Inc()            { c.target().Inc() }
func (c *counterVec) Add(val float64) { c.target().Add(val) }

// gaugeVec backs the Gauge interface with a Prometheus GaugeVec.
type gaugeVec struct {
	vec   *prometheus.GaugeVec
	bound prometheus.Gauge
}

func (g *gaugeVec) WithLabelValues(lvs ...string) Gauge {
	return &gaugeVec{vec: g.vec, bound: g.vec.WithLabelValues(lvs...)}
}

func (g *gaugeVec) target() prometheus.Gauge {
	if g.bound != nil {
		return g.bound
	}
	return g.vec.WithLabelValues()
}

func (g *gaugeVec) Set(val float64) { g.target().Set(val) }
func (g *gaugeVec) Inc()            { g.target().Inc() }
func (g *gaugeVec) Dec()            { g.target().Dec() }
func (g *gaugeVec) Add(val float64) { g.target().Add(val) }

// histogramVec backs the Histogram interface with a Prometheus HistogramVec.
type histogramVec struct {
	vec *prometheus.HistogramVec
}

func (h *histogramVec) WithLabelValues(lvs ...string) Observer {
	return h.vec.WithLabelValues(lvs...)
}

func (h *histogramVec) Observe(val float64) {
	h.vec.WithLabelValues().Observe(val)
}
