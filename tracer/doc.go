// Package tracer provides distributed tracing functionality using
// OpenTelemetry, tailored to HTTP server instrumentation.
//
// The tracer package offers a simplified interface for implementing
// distributed tracing in Go services. It abstracts away the OpenTelemetry
// SDK wiring (provider, exporter, propagators, resource attributes) behind a
// small API used by the middleware packages in this module and usable
// directly by application code.
//
// # Architecture
//
// The package follows the "accept interfaces, return structs" Go idiom:
//   - Tracer interface: contract for span creation and context propagation
//   - TracerClient struct: concrete implementation of the Tracer interface
//   - Span interface: contract for span mutation and completion
//   - FX module provides both *TracerClient and Tracer interface
//
// Core features:
//   - Internal and server-kind span creation
//   - W3C Trace Context extraction from inbound HTTP headers
//   - Error recording and status tracking
//   - Cross-service trace context propagation via carrier maps
//   - Optional OTLP HTTP export to a collector
//
// # Basic Usage
//
//	client, err := tracer.NewClient(tracer.Config{
//	    ServiceName:  "edge-gateway",
//	    AppEnv:       "development",
//	    EnableExport: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, span := client.StartSpan(ctx, "load-profile")
//	defer span.End()
//
//	span.SetAttributes(map[string]interface{}{"user.id": "123"})
//	if err != nil {
//	    span.RecordError(err)
//	}
//
// # Inbound Requests
//
// For inbound HTTP requests, extract the caller's trace context before
// starting the server span so the span joins the caller's trace:
//
//	ctx := client.Extract(r.Context(), r.Header)
//	ctx, span := client.StartServerSpan(ctx, r.Method)
//	defer span.End()
//
// The filter package does this (plus lifecycle management and decorator
// dispatch) as ready-made middleware; prefer it over hand-rolling the above.
//
// # FX Module Integration
//
//	app := fx.New(
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config {
//	        return tracer.Config{ServiceName: "edge-gateway", AppEnv: "production", EnableExport: true}
//	    }),
//	    fx.Invoke(func(t tracer.Tracer) {
//	        ctx, span := t.StartSpan(context.Background(), "app-startup")
//	        defer span.End()
//	    }),
//	)
//	app.Run()
//
// # Thread Safety
//
// All methods on TracerClient and Span are safe for concurrent use by
// multiple goroutines.
package tracer
