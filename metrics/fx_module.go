package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/aalemi-dev/httptrace-lab/logger"
)

// FXModule defines the Fx module for the metrics package.
//
// The module provides:
// 1. *Metrics (concrete type) for direct use
// 2. Collector interface for dependency injection
// 3. Lifecycle management for the metrics HTTP server
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{ServiceName: "edge-gateway"}
//	    }),
//	    fx.Invoke(func(m metrics.Collector) {
//	        counter := m.CreateCounter("http_requests_total", "Total HTTP requests", []string{"method"})
//	        counter.WithLabelValues("GET").Inc()
//	    }),
//	)
//
// A metrics.Config instance must be available in the dependency graph, along
// with a *logger.LoggerClient for lifecycle logging.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			func(m *Metrics) Collector { return m },
			fx.As(new(Collector)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the metrics HTTP server on application
// start and shuts it down gracefully on stop. When the endpoint is disabled
// (no server), the hooks are no-ops. Invoked automatically by FXModule.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.LoggerClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if m.Server == nil {
				return nil
			}
			log.Info("starting metrics server", nil, map[string]interface{}{
				"address": m.Server.Addr,
			})
			go func() {
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("metrics server failed", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if m.Server == nil {
				return nil
			}
			log.Info("stopping metrics server", nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
