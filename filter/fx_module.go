package filter

import (
	"go.uber.org/fx"
)

// FXModule provides a Uber FX module exposing the tracing filter.
// The application supplies a Config (typically building it from the tracer
// and logger already in the graph) and receives a ready *Filter.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    filter.FXModule,
//	    fx.Provide(func(t tracer.Tracer, l logger.Logger) filter.Config {
//	        return filter.Config{Tracer: t, Logger: l}
//	    }),
//	    fx.Invoke(func(f *filter.Filter) {
//	        http.ListenAndServe(":8080", f.Middleware(mux))
//	    }),
//	)
var FXModule = fx.Module("filter",
	fx.Provide(NewFilter),
)
