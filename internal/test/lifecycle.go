package test

import (
	"context"

	"go.uber.org/fx"
)

// LifecycleRecorder collects fx hooks instead of scheduling them, letting a
// test drive OnStart and OnStop by hand.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append records the hook.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// StartAll runs the recorded OnStart hooks in registration order and stops
// at the first failure.
func (l *LifecycleRecorder) StartAll(ctx context.Context) error {
	for _, h := range l.Hooks {
		if h.OnStart == nil {
			continue
		}
		if err := h.OnStart(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ShutdownerStub signals on Called whenever the application requests its own
// shutdown. The channel write never blocks.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown records the invocation.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called == nil {
		return nil
	}
	select {
	case s.Called <- struct{}{}:
	default:
	}
	return nil
}
