package tracer

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config defines the configuration for the OpenTelemetry tracer.
// It controls service identification, environment settings, and whether
// traces should be exported to an observability backend.
type Config struct {
	// ServiceName specifies the name of the service using this tracer.
	// It appears on every span and should be a stable, descriptive name
	// that uniquely identifies the service in your architecture.
	//
	// Example values: "edge-gateway", "user-service"
	ServiceName string `envconfig:"SERVICE_NAME"`

	// AppEnv indicates the deployment environment where the service runs.
	// Common values are "development", "staging", "production". It is set
	// as the "deployment.environment" and "environment" resource
	// attributes on all spans.
	AppEnv string `envconfig:"APP_ENV"`

	// EnableExport controls whether traces are exported to an
	// observability backend. When true, the tracer configures an OTLP
	// HTTP exporter that sends spans to a collector. When false, spans
	// are created and propagated but never leave the process, which is
	// usually what you want in development and in tests.
	EnableExport bool `envconfig:"ENABLE_EXPORT"`
}

// FromEnv loads a Config from TRACER_-prefixed environment variables:
// TRACER_SERVICE_NAME, TRACER_APP_ENV, TRACER_ENABLE_EXPORT.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("tracer", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load tracer config from environment: %w", err)
	}
	return cfg, nil
}
