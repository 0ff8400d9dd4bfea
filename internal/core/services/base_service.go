package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_desk/internal/middleware"
)

// BaseService gives the ledger components access to the request-scoped logger.
type BaseService struct{}

// GetLogger returns the logger carried by ctx, or the default logger.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs a failure that is returned to the caller.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	s.logErr(ctx, slog.LevelError, err, msg, keyvals)
}

// LogWarn logs a failure the component recovered from, such as a fallback
// strategy that did not answer.
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	s.logErr(ctx, slog.LevelWarn, err, msg, keyvals)
}

func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

func (s *BaseService) logErr(ctx context.Context, level slog.Level, err error, msg string, keyvals []any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Log(ctx, level, msg, args...)
}
