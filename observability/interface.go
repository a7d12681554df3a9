package observability

import "time"

// Observer is a unified interface for observing HTTP request outcomes produced
// by the tracing middleware packages in this module (filter, gintrace).
// It allows external code to react to finished requests without coupling the
// middleware to a specific observability implementation (metrics, logging,
// audit trails, SLO accounting).
//
// This interface is optional - the middleware works perfectly fine without an observer.
type Observer interface {
	// ObserveRequest is called exactly once per traced request, when the
	// request's terminal outcome (response, error, or timeout) is known.
	// It provides all context about the request in a structured format.
	ObserveRequest(ctx RequestContext)
}

// RequestContext contains all information about one finished HTTP request.
// It is generic enough to work for both the net/http filter and the gin
// adapter while providing enough detail for comprehensive observability.
type RequestContext struct {
	// Component identifies which middleware produced the observation.
	// Examples: "http", "gin"
	Component string

	// Method is the HTTP method of the request.
	// Examples: "GET", "POST", "DELETE"
	Method string

	// Route identifies the request target. For the net/http filter this is
	// the URL path; for the gin adapter it is the matched route pattern
	// when one exists.
	// Examples: "/api/users", "/api/users/:id"
	Route string

	// Outcome describes how the request terminated.
	// One of "response", "error", "timeout".
	Outcome string

	// StatusCode is the HTTP status written to the client, when known.
	// Zero means no status was written (e.g. an async timeout before
	// the handler produced output).
	StatusCode int

	// Duration is how long the request took from span start to its
	// terminal event. For asynchronous requests this includes the time
	// the detached continuation was outstanding.
	Duration time.Duration

	// Error is the failure reported for the request, if any.
	// nil indicates a successful response.
	Error error

	// BytesWritten is the number of response body bytes written to the
	// client at the time the terminal event fired.
	BytesWritten int64

	// Metadata provides additional request-specific information (optional).
	// Examples: {"async": true}, {"panic": "division by zero"}
	Metadata map[string]interface{}
}

// Outcome values reported in RequestContext.Outcome.
const (
	// OutcomeResponse indicates the request completed with a response.
	OutcomeResponse = "response"

	// OutcomeError indicates the request terminated with a failure.
	OutcomeError = "error"

	// OutcomeTimeout indicates an asynchronous continuation timed out.
	OutcomeTimeout = "timeout"
)
