package utils

import (
	"context"

	"resto-dashboard/internal/session"
	"resto-dashboard/pkg/contextkeys"
	apperrors "resto-dashboard/pkg/errors"
)

func WithSession(ctx context.Context, s *session.Store) context.Context {
	return context.WithValue(ctx, contextkeys.SessionKey, s)
}

func GetSessionFromCtx(ctx context.Context) (*session.Store, error) {
	s, ok := ctx.Value(contextkeys.SessionKey).(*session.Store)
	if !ok || s == nil {
		return nil, apperrors.ErrSessionNotFoundInContext
	}
	return s, nil
}

func WithPermissions(ctx context.Context, permissions map[string]bool) context.Context {
	return context.WithValue(ctx, contextkeys.UserPermissionsKey, permissions)
}

func GetPermissionsMapFromCtx(ctx context.Context) (map[string]bool, error) {
	permissions, ok := ctx.Value(contextkeys.UserPermissionsKey).(map[string]bool)
	if !ok || permissions == nil {
		return nil, apperrors.ErrForbidden
	}
	return permissions, nil
}
