package services

import (
	"context"

	"go.uber.org/zap"

	"resto-dashboard/internal/authz"
	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/session"
	apperrors "resto-dashboard/pkg/errors"
)

type ContextServiceInterface interface {
	Options(ctx context.Context, store *session.Store) (*dto.SwitcherDTO, error)
	SelectRestaurant(ctx context.Context, store *session.Store, payload dto.SelectRestaurantDTO) (*dto.ActiveContextDTO, error)
	SelectOutlet(ctx context.Context, store *session.Store, payload dto.SelectOutletDTO) (*dto.ActiveContextDTO, error)
	Clear(ctx context.Context, store *session.Store) error
}

// ContextService - переключатель ресторана/точки.
type ContextService struct {
	*BaseService
	restaurantAPI backend.RestaurantAPIInterface
	permissions   PermissionServiceInterface
	logger        *zap.Logger
}

func NewContextService(
	restaurantAPI backend.RestaurantAPIInterface,
	permissions PermissionServiceInterface,
	logger *zap.Logger,
) ContextServiceInterface {
	return &ContextService{
		BaseService:   NewBaseService(logger),
		restaurantAPI: restaurantAPI,
		permissions:   permissions,
		logger:        logger,
	}
}

// canSwitch - owner, root или superuser.
func (s *ContextService) canSwitch(ctx context.Context, store *session.Store) bool {
	if store.CanSwitch() {
		return true
	}
	perms, err := s.permissions.Resolve(ctx, store)
	if err != nil {
		return false
	}
	return perms[authz.Superuser]
}

// Options отдаёт данные переключателя и при необходимости сам выбирает ресторан и точку:
// первый ресторан, затем точку по умолчанию или первую.
func (s *ContextService) Options(ctx context.Context, store *session.Store) (*dto.SwitcherDTO, error) {
	scope, err := s.TokenScope(ctx, store)
	if err != nil {
		return nil, err
	}

	result := &dto.SwitcherDTO{
		Restaurants: []dto.RestaurantDTO{},
		Outlets:     []dto.OutletDTO{},
	}
	if !s.canSwitch(ctx, store) {
		result.Current = store.Snapshot().Context()
		return result, nil
	}
	result.CanSwitch = true

	restaurants, err := s.restaurantAPI.ListRestaurants(ctx, scope.Token)
	if err != nil {
		return nil, err
	}
	result.Restaurants = restaurants

	current := store.Snapshot()
	if current.RestaurantID == nil && len(restaurants) > 0 {
		first := restaurants[0]
		s.logger.Info("Автовыбор ресторана", zap.String("session", store.ID()), zap.String("restaurant_id", first.ID))
		if err := store.SetRestaurant(ctx, first.ID, first.Name); err != nil {
			return nil, err
		}
		current = store.Snapshot()
	}

	if current.RestaurantID != nil {
		outlets, err := s.restaurantAPI.ListOutlets(ctx, scope.Token, *current.RestaurantID)
		if err != nil {
			return nil, err
		}
		result.Outlets = outlets

		if current.OutletID == nil {
			if pick, ok := pickOutlet(outlets); ok {
				s.logger.Info("Автовыбор точки", zap.String("session", store.ID()), zap.String("outlet_id", pick.ID))
				if err := store.SetOutlet(ctx, pick.ID, pick.Name); err != nil {
					return nil, err
				}
			}
		}
	}

	result.Current = store.Snapshot().Context()
	return result, nil
}

// pickOutlet - точка по умолчанию, иначе первая.
func pickOutlet(outlets []dto.OutletDTO) (dto.OutletDTO, bool) {
	for _, o := range outlets {
		if o.IsDefault {
			return o, true
		}
	}
	if len(outlets) > 0 {
		return outlets[0], true
	}
	return dto.OutletDTO{}, false
}

func (s *ContextService) SelectRestaurant(ctx context.Context, store *session.Store, payload dto.SelectRestaurantDTO) (*dto.ActiveContextDTO, error) {
	scope, err := s.TokenScope(ctx, store)
	if err != nil {
		return nil, err
	}
	if !s.canSwitch(ctx, store) {
		s.logger.Warn("Смена ресторана без прав", zap.String("session", store.ID()))
		return nil, apperrors.ErrForbidden
	}

	name := payload.RestaurantName
	if name == "" {
		restaurant, err := s.restaurantAPI.GetRestaurant(ctx, scope.Token, payload.RestaurantID)
		if err != nil {
			return nil, err
		}
		name = restaurant.Name
	}

	if err := store.SetRestaurant(ctx, payload.RestaurantID, name); err != nil {
		return nil, err
	}
	current := store.Snapshot().Context()
	return &current, nil
}

func (s *ContextService) SelectOutlet(ctx context.Context, store *session.Store, payload dto.SelectOutletDTO) (*dto.ActiveContextDTO, error) {
	scope, err := s.RestaurantScope(ctx, store)
	if err != nil {
		return nil, err
	}
	if !s.canSwitch(ctx, store) {
		s.logger.Warn("Смена точки без прав", zap.String("session", store.ID()))
		return nil, apperrors.ErrForbidden
	}

	// Точка должна принадлежать выбранному ресторану.
	outlets, err := s.restaurantAPI.ListOutlets(ctx, scope.Token, scope.RestaurantID)
	if err != nil {
		return nil, err
	}
	var found *dto.OutletDTO
	for i := range outlets {
		if outlets[i].ID == payload.OutletID {
			found = &outlets[i]
			break
		}
	}
	if found == nil {
		return nil, apperrors.NewBadRequestError("Точка не принадлежит выбранному ресторану")
	}

	name := payload.OutletName
	if name == "" {
		name = found.Name
	}
	if err := store.SetOutlet(ctx, found.ID, name); err != nil {
		return nil, err
	}
	current := store.Snapshot().Context()
	return &current, nil
}

// Clear снимает выбор ресторана и точки. Профиль остаётся, в отличие от выхода.
func (s *ContextService) Clear(ctx context.Context, store *session.Store) error {
	return store.SetRestaurant(ctx, "", "")
}
