package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	l := New()
	if l == nil {
		t.Fatal("expected logger, got nil")
	}

	ctx := context.Background()
	for _, tc := range []struct {
		level   slog.Level
		enabled bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, true},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	} {
		if got := l.Enabled(ctx, tc.level); got != tc.enabled {
			t.Errorf("level %v: enabled=%v, want %v", tc.level, got, tc.enabled)
		}
	}
}

func TestNewLoggerUsesJSONHandler(t *testing.T) {
	l := New()
	if _, ok := l.Handler().(*slog.JSONHandler); !ok {
		t.Fatalf("expected JSON handler, got %T", l.Handler())
	}
}
