// Package gintrace hosts the tracing middleware on the Gin framework.
//
// It applies the same semantics as the filter package: extract W3C Trace
// Context from the inbound headers, start a server span, run the
// SpanDecorator chain, finish the span exactly once. The span name defaults
// to the matched route pattern, so cardinality stays bounded even for
// parameterized routes.
//
// Handler failures reported through c.Error surface as OnError; a handler
// panic is reported and re-raised for Gin's recovery middleware to handle.
//
// Usage:
//
//	r := gin.New()
//	r.Use(gintrace.Middleware(gintrace.Config{Tracer: tracerClient}))
package gintrace
