package filter

import (
	"net/http"
	"time"

	"github.com/aalemi-dev/httptrace-lab/logger"
	"github.com/aalemi-dev/httptrace-lab/tracer"
)

// DefaultAsyncTimeout is the deadline applied to detached asynchronous
// continuations when the configuration does not specify one.
const DefaultAsyncTimeout = 30 * time.Second

// Config defines the configuration for the tracing filter.
type Config struct {
	// Tracer creates and propagates spans. Required: when nil, the
	// filter logs an error once at construction time, disables itself
	// and passes every request through untouched.
	//
	// The tracer can be set directly here or wired through the fx graph;
	// see FXModule.
	Tracer tracer.Tracer

	// Logger receives the disable notice and decorator failure warnings.
	// Optional: when nil a default logger is constructed.
	Logger logger.Logger

	// Decorators is the ordered list of span decorators; insertion order
	// is execution order. nil entries are removed. When the field itself
	// is nil, the standard tags decorator is used. An explicitly empty,
	// non-nil slice disables decoration.
	Decorators []SpanDecorator

	// IsTraced decides per request whether to trace it.
	// Defaults to tracing every request.
	IsTraced TracedPredicate

	// OperationName names the server span for a request.
	// Defaults to the HTTP method, e.g. "GET".
	OperationName func(r *http.Request) string

	// AsyncTimeout is the deadline for detached asynchronous
	// continuations. A continuation that neither completes nor fails
	// within this duration is reported through OnTimeout and its span is
	// finished. Defaults to DefaultAsyncTimeout.
	AsyncTimeout time.Duration
}
