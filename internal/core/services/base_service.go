package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/ganges/ganges_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// now is swapped in tests; nil means time.Now.
	now func() time.Time
}

// Now returns the current UTC time truncated to the precision storage keeps.
func (s *BaseService) Now() time.Time {
	if s.now != nil {
		return s.now().UTC().Truncate(time.Microsecond)
	}
	return time.Now().UTC().Truncate(time.Microsecond)
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

// LogWarn logs an expected failure such as a business-rule rejection.
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()), slog.String("kind", string(apperrors.KindOf(err))))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogFailure picks Warn for expected kinds and Error for the rest.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	switch apperrors.KindOf(err) {
	case apperrors.KindInternal, apperrors.KindTransient:
		s.LogError(ctx, err, msg, keyvals...)
	default:
		s.LogWarn(ctx, err, msg, keyvals...)
	}
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeOwner allows admins and the owner of a resource.
func (s *BaseService) AuthorizeOwner(ctx context.Context, actor domain.Actor, ownerID, resource string) error {
	if actor.IsAdmin() || (actor.UserID != "" && actor.UserID == ownerID) {
		return nil
	}
	err := fmt.Errorf("%w: %s belongs to another user", apperrors.ErrForbidden, resource)
	s.LogWarn(ctx, err, "Access denied",
		slog.String("user_id", actor.UserID),
		slog.String("role", string(actor.Role)),
		slog.String("resource", resource))
	return err
}

// AuthorizeAdmin allows admins only.
func (s *BaseService) AuthorizeAdmin(ctx context.Context, actor domain.Actor, action string) error {
	if actor.IsAdmin() {
		return nil
	}
	err := fmt.Errorf("%w: %s requires the ADMIN role", apperrors.ErrForbidden, action)
	s.LogWarn(ctx, err, "Access denied", slog.String("user_id", actor.UserID), slog.String("action", action))
	return err
}
