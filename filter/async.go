package filter

import (
	"net/http"
	"sync"
	"time"
)

// asyncOutcome is the terminal state of an asynchronous continuation.
type asyncOutcome int

const (
	outcomePending asyncOutcome = iota
	outcomeCompleted
	outcomeFailed
	outcomeTimedOut
)

// AsyncContext is the completion handle for a request whose processing
// outlives the handler call. A handler obtains one with Detach, hands it to
// the goroutine doing the work, and that goroutine reports the outcome with
// Complete or Fail. A timer armed at Detach time reports a timeout if
// neither happens within the configured deadline.
//
// Exactly one terminal outcome wins: Complete, Fail and the timeout race
// through a single guarded state transition, and listeners registered with
// onDone run exactly once, even when the outcome settles before the
// listener is attached.
type AsyncContext struct {
	timeout time.Duration

	mu        sync.Mutex
	started   bool
	outcome   asyncOutcome
	err       error
	timer     *time.Timer
	listeners []func(outcome asyncOutcome, err error)
}

func newAsyncContext(timeout time.Duration) *AsyncContext {
	return &AsyncContext{timeout: timeout}
}

// Detach marks the request's processing as asynchronous and returns its
// completion handle. After Detach, the filter no longer treats the handler's
// return as the request's terminal event; the span stays open until the
// returned handle completes, fails, or times out.
//
// Detach must be called before the handler returns. It returns
// ErrNoActiveSpan when the request carries no active server span.
func Detach(r *http.Request) (*AsyncContext, error) {
	ac, ok := asyncFromContext(r.Context())
	if !ok {
		return nil, ErrNoActiveSpan
	}
	ac.start()
	return ac, nil
}

// start arms the timeout timer. Idempotent: a second Detach on the same
// request returns the same already-started handle.
func (a *AsyncContext) start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started {
		return
	}
	a.started = true
	if a.timeout > 0 {
		a.timer = time.AfterFunc(a.timeout, func() {
			a.settle(outcomeTimedOut, nil)
		})
	}
}

// Started reports whether Detach was called for this request.
func (a *AsyncContext) Started() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.started
}

// Timeout returns the deadline applied to this continuation.
func (a *AsyncContext) Timeout() time.Duration {
	return a.timeout
}

// Complete reports successful completion of the continuation. No-op if the
// continuation already settled.
func (a *AsyncContext) Complete() {
	a.settle(outcomeCompleted, nil)
}

// Fail reports a failure of the continuation. A nil err is recorded as
// ErrAsyncFailure. No-op if the continuation already settled.
func (a *AsyncContext) Fail(err error) {
	if err == nil {
		err = ErrAsyncFailure
	}
	a.settle(outcomeFailed, err)
}

// settle performs the single pending→terminal transition. The first caller
// wins; it stops the timer and runs the registered listeners outside the
// lock. Later callers are no-ops.
func (a *AsyncContext) settle(outcome asyncOutcome, err error) bool {
	a.mu.Lock()
	if a.outcome != outcomePending {
		a.mu.Unlock()
		return false
	}
	a.outcome = outcome
	a.err = err
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	listeners := a.listeners
	a.listeners = nil
	a.mu.Unlock()

	for _, fn := range listeners {
		fn(outcome, err)
	}
	return true
}

// onDone attaches a continuation to the terminal outcome. If the outcome is
// already settled, fn runs synchronously in the calling goroutine; otherwise
// it runs in the goroutine that settles the outcome.
func (a *AsyncContext) onDone(fn func(outcome asyncOutcome, err error)) {
	a.mu.Lock()
	if a.outcome == outcomePending {
		a.listeners = append(a.listeners, fn)
		a.mu.Unlock()
		return
	}
	outcome, err := a.outcome, a.err
	a.mu.Unlock()
	fn(outcome, err)
}
