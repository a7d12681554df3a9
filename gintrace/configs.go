package gintrace

import (
	"github.com/gin-gonic/gin"

	"github.com/aalemi-dev/httptrace-lab/filter"
	"github.com/aalemi-dev/httptrace-lab/logger"
	"github.com/aalemi-dev/httptrace-lab/tracer"
)

// Config defines the configuration for the Gin tracing middleware.
type Config struct {
	// Tracer creates and propagates spans. Required: when nil, the
	// middleware logs an error once and becomes a pass-through.
	Tracer tracer.Tracer

	// Logger receives the disable notice and decorator failure warnings.
	// Optional: when nil a default logger is constructed.
	Logger logger.Logger

	// Decorators is the ordered span decorator chain, sharing the
	// contract of the filter package. When nil, the standard tags
	// decorator is used; nil entries are removed.
	Decorators []filter.SpanDecorator

	// IsTraced decides per request whether to trace it.
	// Defaults to tracing every request.
	IsTraced func(c *gin.Context) bool

	// OperationName names the server span. Defaults to the HTTP method
	// plus the matched route pattern, e.g. "GET /users/:id", falling
	// back to the method alone when no route matched.
	OperationName func(c *gin.Context) string
}
