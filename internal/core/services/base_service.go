package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/playware/game_lounge_app/internal/middleware"
)

// BaseService provides common functionality for all services.
type BaseService struct {
	// now supplies the current time; injectable so session timing, ledger
	// dating and dashboard windows are deterministic under test.
	now func() time.Time
}

// Now returns the current time from the injected clock, defaulting to time.Now.
func (s *BaseService) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
