package cmd

import (
	"context"
	"log/slog"
)

type cmdLogger struct{}

var cmdLoggerKey cmdLogger

func loggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(cmdLoggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

func ctxWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, cmdLoggerKey, logger)
}
