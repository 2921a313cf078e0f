package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// ToContext attaches log to ctx. Middleware calls this once per request.
func ToContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext never returns nil; slog.Default stands in when ctx has no logger.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// With adds attrs to the request logger and returns it with a context that
// carries it, so later handlers and services log the same fields.
func With(ctx context.Context, args ...any) (*slog.Logger, context.Context) {
	log := FromContext(ctx).With(args...)
	return log, ToContext(ctx, log)
}

func IsDebugEnabled(ctx context.Context) bool {
	return FromContext(ctx).Enabled(ctx, slog.LevelDebug)
}
