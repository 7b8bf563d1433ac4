// Package logging defines the logger abstraction used across the client.
package logging

import "context"

// Logger is the minimal structured logging surface the application needs.
// The slog-backed implementation is the only production one; tests may
// substitute a no-op.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
