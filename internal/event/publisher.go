package event

import "context"

// Publisher emits order lifecycle events. Publishing is best-effort: callers
// log failures and never fail the request that produced the event.
type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
	Close() error
}

// Noop discards events. Wired when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, Envelope) error { return nil }

func (Noop) Close() error { return nil }
