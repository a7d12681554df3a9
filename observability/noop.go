package observability

// NoOpObserver is a no-op implementation of Observer.
// It does nothing when ObserveRequest is called.
// This can be useful for testing or as a default value.
type NoOpObserver struct{}

// ObserveRequest does nothing (no-op).
func (n *NoOpObserver) ObserveRequest(ctx RequestContext) {
	// No-op
}

// NewNoOpObserver creates a new NoOpObserver.
func NewNoOpObserver() Observer {
	return &NoOpObserver{}
}
