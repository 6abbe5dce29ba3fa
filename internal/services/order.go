package services

import (
	"context"

	"go.uber.org/zap"

	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/session"
)

// Выгрузка берёт заказы страницами до этого предела.
const (
	exportPageSize = 500
	exportMaxRows  = 10000
)

type OrderServiceInterface interface {
	List(ctx context.Context, store *session.Store, filter dto.OrderFilterDTO) (*dto.ListDTO[dto.OrderDTO], error)
	ListAll(ctx context.Context, store *session.Store, status string) ([]dto.OrderDTO, error)
	Get(ctx context.Context, store *session.Store, orderID string) (*dto.OrderDTO, error)
	Action(ctx context.Context, store *session.Store, orderID string, payload dto.OrderActionDTO) (*dto.OrderDTO, error)
	AddItem(ctx context.Context, store *session.Store, orderID string, payload dto.AddOrderItemDTO) (*dto.OrderDTO, error)
	UpdateItem(ctx context.Context, store *session.Store, orderID, itemID string, payload dto.UpdateOrderItemDTO) (*dto.OrderDTO, error)
	RemoveItem(ctx context.Context, store *session.Store, orderID, itemID string) (*dto.OrderDTO, error)
}

type OrderService struct {
	*BaseService
	api    backend.OrderAPIInterface
	logger *zap.Logger
}

func NewOrderService(api backend.OrderAPIInterface, logger *zap.Logger) OrderServiceInterface {
	return &OrderService{
		BaseService: NewBaseService(logger),
		api:         api,
		logger:      logger,
	}
}

func (s *OrderService) List(ctx context.Context, store *session.Store, filter dto.OrderFilterDTO) (*dto.ListDTO[dto.OrderDTO], error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	list, err := s.api.List(ctx, scope.Auth(), filter)
	if err != nil {
		return nil, err
	}
	if list.Items == nil {
		list.Items = []dto.OrderDTO{}
	}
	return list, nil
}

// ListAll проходит все страницы. Нужен для выгрузки в xlsx.
func (s *OrderService) ListAll(ctx context.Context, store *session.Store, status string) ([]dto.OrderDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}

	var all []dto.OrderDTO
	for page := 1; ; page++ {
		list, err := s.api.List(ctx, scope.Auth(), dto.OrderFilterDTO{Status: status, Page: page, Limit: exportPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, list.Items...)
		if len(list.Items) < exportPageSize || uint64(len(all)) >= list.Total || len(all) >= exportMaxRows {
			break
		}
	}
	if len(all) > exportMaxRows {
		all = all[:exportMaxRows]
	}
	return all, nil
}

func (s *OrderService) Get(ctx context.Context, store *session.Store, orderID string) (*dto.OrderDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.Get(ctx, scope.Auth(), orderID)
}

func (s *OrderService) Action(ctx context.Context, store *session.Store, orderID string, payload dto.OrderActionDTO) (*dto.OrderDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	order, err := s.api.Action(ctx, scope.Auth(), orderID, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Действие над заказом",
		zap.String("order_id", orderID),
		zap.String("action", payload.Action),
		zap.String("outlet_id", scope.OutletID),
	)
	return order, nil
}

func (s *OrderService) AddItem(ctx context.Context, store *session.Store, orderID string, payload dto.AddOrderItemDTO) (*dto.OrderDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.AddItem(ctx, scope.Auth(), orderID, payload)
}

func (s *OrderService) UpdateItem(ctx context.Context, store *session.Store, orderID, itemID string, payload dto.UpdateOrderItemDTO) (*dto.OrderDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateItem(ctx, scope.Auth(), orderID, itemID, payload)
}

func (s *OrderService) RemoveItem(ctx context.Context, store *session.Store, orderID, itemID string) (*dto.OrderDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.RemoveItem(ctx, scope.Auth(), orderID, itemID)
}
