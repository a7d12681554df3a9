package gintrace

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/aalemi-dev/httptrace-lab/filter"
	"github.com/aalemi-dev/httptrace-lab/logger"
	"github.com/aalemi-dev/httptrace-lab/tracer"
)

// ginResponseInfo adapts gin's ResponseWriter to the decorator contract.
type ginResponseInfo struct {
	w gin.ResponseWriter
}

func (g ginResponseInfo) Status() int {
	if !g.w.Written() {
		return 0
	}
	return g.w.Status()
}

func (g ginResponseInfo) BytesWritten() int64 {
	if size := g.w.Size(); size > 0 {
		return int64(size)
	}
	return 0
}

// Middleware returns a Gin handler tracing every request the predicate
// admits. A request already traced by an outer layer (for example the
// net/http filter wrapping the whole engine) passes through untouched.
func Middleware(cfg Config) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = logger.NewLoggerClient(logger.Config{
			Level:         logger.Info,
			ServiceName:   "httptrace",
			EnableTracing: true,
		})
	}

	if cfg.Tracer == nil {
		log.Error("tracer not configured, gin tracing middleware disabled", nil)
		return func(c *gin.Context) { c.Next() }
	}

	decorators := cfg.Decorators
	if decorators == nil {
		decorators = []filter.SpanDecorator{filter.NewStandardTags()}
	} else {
		kept := make([]filter.SpanDecorator, 0, len(decorators))
		for _, d := range decorators {
			if d != nil {
				kept = append(kept, d)
			}
		}
		decorators = kept
	}

	isTraced := cfg.IsTraced
	if isTraced == nil {
		isTraced = func(*gin.Context) bool { return true }
	}

	operationName := cfg.OperationName
	if operationName == nil {
		operationName = func(c *gin.Context) string {
			if route := c.FullPath(); route != "" {
				return c.Request.Method + " " + route
			}
			return c.Request.Method
		}
	}

	m := &middleware{
		tracer:     cfg.Tracer,
		log:        log,
		decorators: decorators,
	}

	return func(c *gin.Context) {
		if _, ok := filter.ServerSpanContext(c.Request.Context()); ok {
			c.Next()
			return
		}
		if !isTraced(c) {
			c.Next()
			return
		}

		ctx := m.tracer.Extract(c.Request.Context(), c.Request.Header)
		ctx, span := m.tracer.StartServerSpan(ctx, operationName(c))
		guard := filter.NewSpanGuard(span)
		c.Request = c.Request.WithContext(filter.ContextWithServerSpan(ctx, guard))

		resp := ginResponseInfo{w: c.Writer}
		m.fire(c, "OnRequest", func(d filter.SpanDecorator) { d.OnRequest(c.Request, span) })

		defer func() {
			if p := recover(); p != nil {
				m.fire(c, "OnError", func(d filter.SpanDecorator) {
					d.OnError(c.Request, resp, panicError(p), span)
				})
				guard.Finish()
				panic(p)
			}
		}()

		c.Next()

		if last := c.Errors.Last(); last != nil {
			m.fire(c, "OnError", func(d filter.SpanDecorator) {
				d.OnError(c.Request, resp, last.Err, span)
			})
		} else {
			m.fire(c, "OnResponse", func(d filter.SpanDecorator) {
				d.OnResponse(c.Request, resp, span)
			})
		}
		guard.Finish()
	}
}

type middleware struct {
	tracer     tracer.Tracer
	log        logger.Logger
	decorators []filter.SpanDecorator
}

// fire runs one event across the decorator chain, isolating panics the same
// way the filter package does.
func (m *middleware) fire(c *gin.Context, event string, invoke func(d filter.SpanDecorator)) {
	for _, d := range m.decorators {
		func() {
			defer func() {
				if p := recover(); p != nil {
					m.log.WarnWithContext(c.Request.Context(), "span decorator panicked", panicError(p),
						map[string]interface{}{
							"event":  event,
							"method": c.Request.Method,
							"path":   c.Request.URL.Path,
						})
				}
			}()
			invoke(d)
		}()
	}
}

func panicError(p interface{}) error {
	if err, ok := p.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", p)
}
