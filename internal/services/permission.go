package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"resto-dashboard/internal/authz"
	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/session"
	apperrors "resto-dashboard/pkg/errors"
)

type PermissionServiceInterface interface {
	Resolve(ctx context.Context, store *session.Store) (map[string]bool, error)
	Remember(ctx context.Context, store *session.Store, perms *dto.PermissionsDTO) error
}

// PermissionService достаёт права пользователя: сперва из хранилища сессии, затем из удалённого API.
type PermissionService struct {
	authAPI backend.AuthAPIInterface
	logger  *zap.Logger
}

func NewPermissionService(authAPI backend.AuthAPIInterface, logger *zap.Logger) PermissionServiceInterface {
	return &PermissionService{authAPI: authAPI, logger: logger}
}

func (s *PermissionService) Resolve(ctx context.Context, store *session.Store) (map[string]bool, error) {
	cached, err := store.Bridge().Permissions(ctx)
	if err != nil {
		s.logger.Warn("PermissionService: не удалось прочитать кеш прав", zap.String("session", store.ID()), zap.Error(err))
	}
	if cached != nil {
		var perms dto.PermissionsDTO
		if err := json.Unmarshal(cached, &perms); err == nil {
			return authz.Flatten(&perms), nil
		}
		s.logger.Warn("PermissionService: повреждённый кеш прав, запрос к API", zap.String("session", store.ID()))
	}

	token, err := store.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	perms, err := s.authAPI.Permissions(ctx, token)
	if err != nil {
		s.logger.Error("PermissionService: не удалось получить права из API", zap.String("session", store.ID()), zap.Error(err))
		return nil, err
	}
	if err := s.Remember(ctx, store, perms); err != nil {
		s.logger.Error("PermissionService: не удалось закешировать права", zap.String("session", store.ID()), zap.Error(err))
	}
	return authz.Flatten(perms), nil
}

func (s *PermissionService) Remember(ctx context.Context, store *session.Store, perms *dto.PermissionsDTO) error {
	if perms == nil {
		return nil
	}
	blob, err := json.Marshal(perms)
	if err != nil {
		return err
	}
	return store.Bridge().SavePermissions(ctx, blob)
}
