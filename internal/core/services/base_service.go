package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/retail_ledger/internal/middleware"
	"github.com/SscSPs/retail_ledger/internal/platform/events"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Events events.Publisher
	Clock  func() time.Time
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
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a recoverable problem
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the service clock, defaulting to time.Now in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

// PublishEvent emits a ledger event. The ledger write it describes has already
// happened, so a failed publish is logged and not returned.
func (s *BaseService) PublishEvent(ctx context.Context, eventType string, payload any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, events.NewEvent(eventType, s.Now(), payload)); err != nil {
		s.LogWarn(ctx, err, "Failed to publish ledger event", slog.String("event_type", eventType))
	}
}
