package filter

import (
	"net/http"
	"time"

	"github.com/aalemi-dev/httptrace-lab/logger"
	"github.com/aalemi-dev/httptrace-lab/tracer"
)

// Filter instruments inbound HTTP requests with server spans. For every
// traced request it extracts the caller's trace context from the headers,
// starts a server-kind span, dispatches the configured decorators at the
// request's lifecycle events, and guarantees the span finishes exactly once
// across synchronous, panicking, and asynchronous completion paths.
//
// A Filter is immutable after construction and safe for concurrent use.
// Construct it once and wrap handlers with Middleware.
type Filter struct {
	tracer        tracer.Tracer
	log           logger.Logger
	decorators    []SpanDecorator
	isTraced      TracedPredicate
	operationName func(r *http.Request) string
	asyncTimeout  time.Duration
	disabled      bool
}

// NewFilter builds a Filter from the configuration, applying defaults for
// every optional field.
//
// When cfg.Tracer is nil the filter cannot trace anything: it logs an error
// once, marks itself disabled, and Middleware becomes a transparent
// pass-through for its whole lifetime. Construction never fails, so a
// misconfigured deployment degrades to untraced rather than refusing
// traffic.
//
// Example:
//
//	f := filter.NewFilter(filter.Config{Tracer: tracerClient})
//	http.ListenAndServe(":8080", f.Middleware(mux))
func NewFilter(cfg Config) *Filter {
	log := cfg.Logger
	if log == nil {
		log = logger.NewLoggerClient(logger.Config{
			Level:         logger.Info,
			ServiceName:   "httptrace",
			EnableTracing: true,
		})
	}

	f := &Filter{
		log:          log,
		asyncTimeout: cfg.AsyncTimeout,
	}

	if cfg.Tracer == nil {
		log.Error("tracer not configured, tracing filter disabled", nil)
		f.disabled = true
		return f
	}
	f.tracer = cfg.Tracer

	if cfg.Decorators == nil {
		f.decorators = []SpanDecorator{NewStandardTags()}
	} else {
		f.decorators = make([]SpanDecorator, 0, len(cfg.Decorators))
		for _, d := range cfg.Decorators {
			if d != nil {
				f.decorators = append(f.decorators, d)
			}
		}
	}

	f.isTraced = cfg.IsTraced
	if f.isTraced == nil {
		f.isTraced = func(*http.Request) bool { return true }
	}

	f.operationName = cfg.OperationName
	if f.operationName == nil {
		f.operationName = func(r *http.Request) string { return r.Method }
	}

	if f.asyncTimeout <= 0 {
		f.asyncTimeout = DefaultAsyncTimeout
	}

	return f
}

// Disabled reports whether the filter passes requests through untraced
// because no tracer was configured.
func (f *Filter) Disabled() bool {
	return f.disabled
}
