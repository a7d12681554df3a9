package metrics

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// DefaultAddress is the listen address of the metrics HTTP server when none
// is configured.
const DefaultAddress = ":9090"

// Config defines the configuration for the Prometheus metrics endpoint.
type Config struct {
	// Address determines the network address where the metrics HTTP
	// server listens. The endpoint exposes Go runtime and process metrics
	// plus all request metrics created through the Collector.
	//
	// Example values:
	//   - ":9090"           → all interfaces, port 9090
	//   - "127.0.0.1:9090"  → localhost only
	//   - nil (or omitted)  → DefaultAddress
	//
	// To disable the endpoint entirely, set it to an empty string pointer
	// (metrics.Ptr("")); the registry still works, it just isn't served.
	Address *string `envconfig:"ADDRESS"`

	// ServiceName identifies the service exposing metrics. It is added as
	// a constant "service" label to every metric, which keeps dashboards
	// unambiguous when several services share a Prometheus.
	ServiceName string `envconfig:"SERVICE_NAME"`
}

// FromEnv loads a Config from METRICS_-prefixed environment variables:
// METRICS_ADDRESS, METRICS_SERVICE_NAME.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("metrics", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load metrics config from environment: %w", err)
	}
	return cfg, nil
}

// Ptr returns a pointer to the given string value.
// Helper for disabling the endpoint in configuration.
func Ptr(s string) *string {
	return &s
}
