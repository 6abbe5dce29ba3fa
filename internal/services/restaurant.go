package services

import (
	"context"

	"go.uber.org/zap"

	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/session"
	"resto-dashboard/pkg/utils"
)

type RestaurantServiceInterface interface {
	ListRestaurants(ctx context.Context, store *session.Store) ([]dto.RestaurantDTO, error)
	GetRestaurant(ctx context.Context, store *session.Store, id string) (*dto.RestaurantDTO, error)
	CreateRestaurant(ctx context.Context, store *session.Store, payload dto.CreateRestaurantDTO) (*dto.RestaurantDTO, error)
	UpdateRestaurant(ctx context.Context, store *session.Store, id string, payload dto.UpdateRestaurantDTO) (*dto.RestaurantDTO, error)
	DeleteRestaurant(ctx context.Context, store *session.Store, id string) error

	ListOutlets(ctx context.Context, store *session.Store) ([]dto.OutletDTO, error)
	CreateOutlet(ctx context.Context, store *session.Store, payload dto.CreateOutletDTO) (*dto.OutletDTO, error)
	UpdateOutlet(ctx context.Context, store *session.Store, outletID string, payload dto.UpdateOutletDTO) (*dto.OutletDTO, error)
	DeleteOutlet(ctx context.Context, store *session.Store, outletID string) error
	SetDefaultOutlet(ctx context.Context, store *session.Store, outletID string) error

	GetOpeningHours(ctx context.Context, store *session.Store) (dto.OpeningHoursDTO, error)
	UpdateOpeningHours(ctx context.Context, store *session.Store, payload dto.SaveOpeningHoursDTO) (dto.OpeningHoursDTO, error)
}

type RestaurantService struct {
	*BaseService
	api    backend.RestaurantAPIInterface
	logger *zap.Logger
}

func NewRestaurantService(api backend.RestaurantAPIInterface, logger *zap.Logger) RestaurantServiceInterface {
	return &RestaurantService{
		BaseService: NewBaseService(logger),
		api:         api,
		logger:      logger,
	}
}

func (s *RestaurantService) ListRestaurants(ctx context.Context, store *session.Store) ([]dto.RestaurantDTO, error) {
	scope, err := s.TokenScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.ListRestaurants(ctx, scope.Token)
}

func (s *RestaurantService) GetRestaurant(ctx context.Context, store *session.Store, id string) (*dto.RestaurantDTO, error) {
	scope, err := s.TokenScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.GetRestaurant(ctx, scope.Token, id)
}

func (s *RestaurantService) CreateRestaurant(ctx context.Context, store *session.Store, payload dto.CreateRestaurantDTO) (*dto.RestaurantDTO, error) {
	scope, err := s.TokenScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.CreateRestaurant(ctx, scope.Token, payload)
}

// UpdateRestaurant обновляет и имя в активном контексте, если правят выбранный ресторан.
func (s *RestaurantService) UpdateRestaurant(ctx context.Context, store *session.Store, id string, payload dto.UpdateRestaurantDTO) (*dto.RestaurantDTO, error) {
	scope, err := s.TokenScope(ctx, store)
	if err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateRestaurant(ctx, scope.Token, id, payload)
	if err != nil {
		return nil, err
	}

	st := store.Snapshot()
	if utils.SafeDeref(st.RestaurantID) == id && updated.Name != st.RestaurantName {
		// SetRestaurant сбросил бы точку, поэтому возвращаем её обратно.
		outletID, outletName := utils.SafeDeref(st.OutletID), st.OutletName
		if err := store.SetRestaurant(ctx, id, updated.Name); err != nil {
			return nil, err
		}
		if outletID != "" {
			if err := store.SetOutlet(ctx, outletID, outletName); err != nil {
				return nil, err
			}
		}
	}
	return updated, nil
}

// DeleteRestaurant сбрасывает контекст, если удалён выбранный ресторан.
func (s *RestaurantService) DeleteRestaurant(ctx context.Context, store *session.Store, id string) error {
	scope, err := s.TokenScope(ctx, store)
	if err != nil {
		return err
	}
	if err := s.api.DeleteRestaurant(ctx, scope.Token, id); err != nil {
		return err
	}
	if utils.SafeDeref(store.Snapshot().RestaurantID) == id {
		s.logger.Info("Удалён выбранный ресторан, контекст сброшен", zap.String("session", store.ID()), zap.String("restaurant_id", id))
		return store.SetRestaurant(ctx, "", "")
	}
	return nil
}

func (s *RestaurantService) ListOutlets(ctx context.Context, store *session.Store) ([]dto.OutletDTO, error) {
	scope, err := s.RestaurantScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.ListOutlets(ctx, scope.Token, scope.RestaurantID)
}

func (s *RestaurantService) CreateOutlet(ctx context.Context, store *session.Store, payload dto.CreateOutletDTO) (*dto.OutletDTO, error) {
	scope, err := s.RestaurantScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.CreateOutlet(ctx, scope.Token, scope.RestaurantID, payload)
}

func (s *RestaurantService) UpdateOutlet(ctx context.Context, store *session.Store, outletID string, payload dto.UpdateOutletDTO) (*dto.OutletDTO, error) {
	scope, err := s.RestaurantScope(ctx, store)
	if err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateOutlet(ctx, scope.Token, scope.RestaurantID, outletID, payload)
	if err != nil {
		return nil, err
	}
	st := store.Snapshot()
	if utils.SafeDeref(st.OutletID) == outletID && updated.Name != st.OutletName {
		if err := store.SetOutlet(ctx, outletID, updated.Name); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func (s *RestaurantService) DeleteOutlet(ctx context.Context, store *session.Store, outletID string) error {
	scope, err := s.RestaurantScope(ctx, store)
	if err != nil {
		return err
	}
	if err := s.api.DeleteOutlet(ctx, scope.Token, scope.RestaurantID, outletID); err != nil {
		return err
	}
	if utils.SafeDeref(store.Snapshot().OutletID) == outletID {
		return store.SetOutlet(ctx, "", "")
	}
	return nil
}

func (s *RestaurantService) SetDefaultOutlet(ctx context.Context, store *session.Store, outletID string) error {
	scope, err := s.RestaurantScope(ctx, store)
	if err != nil {
		return err
	}
	return s.api.SetDefaultOutlet(ctx, scope.Token, scope.RestaurantID, outletID)
}

func (s *RestaurantService) GetOpeningHours(ctx context.Context, store *session.Store) (dto.OpeningHoursDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	hours, err := s.api.GetOpeningHours(ctx, scope.Token, scope.RestaurantID, scope.OutletID)
	if err != nil {
		return nil, err
	}
	if hours == nil {
		hours = dto.OpeningHoursDTO{}
	}
	return hours, nil
}

func (s *RestaurantService) UpdateOpeningHours(ctx context.Context, store *session.Store, payload dto.SaveOpeningHoursDTO) (dto.OpeningHoursDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateOpeningHours(ctx, scope.Token, scope.RestaurantID, scope.OutletID, payload.Hours)
}
