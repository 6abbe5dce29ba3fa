package services

import (
	"context"

	"go.uber.org/zap"

	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/session"
	apperrors "resto-dashboard/pkg/errors"
	"resto-dashboard/pkg/utils"
)

// Scope - чем подписывать запрос к удалённому API. Значения берутся только из хранилища сессии.
type Scope struct {
	Token        string
	RestaurantID string
	OutletID     string
}

// Auth - подпись для областей, которые шлют X-Outlet-Id.
func (s Scope) Auth() backend.Auth {
	return backend.Auth{Token: s.Token, OutletID: s.OutletID}
}

type BaseService struct {
	logger *zap.Logger
}

func NewBaseService(logger *zap.Logger) *BaseService {
	return &BaseService{logger: logger}
}

// TokenScope - только токен, ресторан и точка не нужны.
func (s *BaseService) TokenScope(ctx context.Context, store *session.Store) (Scope, error) {
	token, err := store.AccessToken(ctx)
	if err != nil {
		s.logger.Error("Не удалось прочитать access-токен", zap.String("session", store.ID()), zap.Error(err))
		return Scope{}, err
	}
	if token == "" {
		return Scope{}, apperrors.ErrUnauthorized
	}
	return Scope{Token: token}, nil
}

// RestaurantScope - нужен выбранный ресторан.
func (s *BaseService) RestaurantScope(ctx context.Context, store *session.Store) (Scope, error) {
	scope, err := s.TokenScope(ctx, store)
	if err != nil {
		return Scope{}, err
	}
	st := store.Snapshot()
	if st.RestaurantID == nil {
		return Scope{}, apperrors.ErrNoActiveRestaurant
	}
	scope.RestaurantID = utils.SafeDeref(st.RestaurantID)
	return scope, nil
}

// OutletScope - нужны и ресторан, и точка.
func (s *BaseService) OutletScope(ctx context.Context, store *session.Store) (Scope, error) {
	scope, err := s.TokenScope(ctx, store)
	if err != nil {
		return Scope{}, err
	}
	st := store.Snapshot()
	if st.RestaurantID == nil || st.OutletID == nil {
		s.logger.Debug("Запрос без выбранного контекста", zap.String("session", store.ID()))
		return Scope{}, apperrors.ErrNoActiveContext
	}
	scope.RestaurantID = utils.SafeDeref(st.RestaurantID)
	scope.OutletID = utils.SafeDeref(st.OutletID)
	return scope, nil
}
