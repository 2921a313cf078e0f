package helpers

import (
	"context"
	"log/slog"

	"github.com/GregMSThompson/bookkeeping-backend/pkg/logger"
)

// TestCtx returns a context carrying a discarding logger at info level.
func TestCtx() context.Context {
	return TestCtxAt(slog.LevelInfo)
}

// TestCtxAt is TestCtx with a chosen level, for code that branches on
// logger.IsDebugEnabled.
func TestCtxAt(level slog.Level) context.Context {
	return logger.ToContext(context.Background(), slog.New(logger.NewTestHandler(level)))
}
