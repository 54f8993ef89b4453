package service

import (
	"context"
	"log/slog"
)

// Key the api middleware stores the request-scoped logger under.
const loggerContextKey = "Logger"

func loggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
