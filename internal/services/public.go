package services

import (
	"context"

	"go.uber.org/zap"

	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/events"
	"resto-dashboard/internal/session"
)

// PublicServiceInterface - заказ гостя по QR. Авторизации нет, запросы подписываются device_id сессии.
type PublicServiceInterface interface {
	Resolve(ctx context.Context, store *session.Store, payload dto.ResolveQRDTO) (*dto.QRSessionDTO, error)
	CreateDraft(ctx context.Context, store *session.Store, qrSessionID string) (*dto.OrderDTO, error)
	GetOrder(ctx context.Context, store *session.Store, qrSessionID, orderID string) (*dto.OrderDTO, error)
	UpdateDraft(ctx context.Context, store *session.Store, qrSessionID, orderID string, payload dto.UpdateDraftDTO) (*dto.OrderDTO, error)
	Submit(ctx context.Context, store *session.Store, qrSessionID, orderID string) (*dto.OrderDTO, error)
	Heartbeat(ctx context.Context, store *session.Store, qrSessionID string) (*dto.QRSessionDTO, error)
	DeviceID(ctx context.Context, store *session.Store) (string, error)
}

type PublicService struct {
	api    backend.PublicAPIInterface
	bus    session.Publisher
	logger *zap.Logger
}

func NewPublicService(api backend.PublicAPIInterface, bus session.Publisher, logger *zap.Logger) PublicServiceInterface {
	return &PublicService{api: api, bus: bus, logger: logger}
}

func (s *PublicService) DeviceID(ctx context.Context, store *session.Store) (string, error) {
	deviceID, err := store.Bridge().DeviceID(ctx)
	if err != nil {
		s.logger.Error("Не удалось получить device_id", zap.String("session", store.ID()), zap.Error(err))
		return "", err
	}
	return deviceID, nil
}

func (s *PublicService) Resolve(ctx context.Context, store *session.Store, payload dto.ResolveQRDTO) (*dto.QRSessionDTO, error) {
	deviceID, err := s.DeviceID(ctx, store)
	if err != nil {
		return nil, err
	}
	qr, err := s.api.ResolveQR(ctx, deviceID, payload)
	if err != nil {
		s.logger.Info("QR-код не распознан", zap.Bool("static", payload.Static), zap.Error(err))
		return nil, err
	}
	return qr, nil
}

func (s *PublicService) CreateDraft(ctx context.Context, store *session.Store, qrSessionID string) (*dto.OrderDTO, error) {
	deviceID, err := s.DeviceID(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.CreateDraft(ctx, deviceID, qrSessionID)
}

func (s *PublicService) GetOrder(ctx context.Context, store *session.Store, qrSessionID, orderID string) (*dto.OrderDTO, error) {
	deviceID, err := s.DeviceID(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.GetOrder(ctx, deviceID, qrSessionID, orderID)
}

func (s *PublicService) UpdateDraft(ctx context.Context, store *session.Store, qrSessionID, orderID string, payload dto.UpdateDraftDTO) (*dto.OrderDTO, error) {
	deviceID, err := s.DeviceID(ctx, store)
	if err != nil {
		return nil, err
	}
	order, err := s.api.UpdateDraft(ctx, deviceID, qrSessionID, orderID, payload)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, qrSessionID, deviceID, order)
	return order, nil
}

func (s *PublicService) Submit(ctx context.Context, store *session.Store, qrSessionID, orderID string) (*dto.OrderDTO, error) {
	deviceID, err := s.DeviceID(ctx, store)
	if err != nil {
		return nil, err
	}
	order, err := s.api.SubmitToKitchen(ctx, deviceID, qrSessionID, orderID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Заказ гостя отправлен на кухню", zap.String("qr_session", qrSessionID), zap.String("order_id", orderID))
	s.publish(ctx, qrSessionID, deviceID, order)
	return order, nil
}

func (s *PublicService) Heartbeat(ctx context.Context, store *session.Store, qrSessionID string) (*dto.QRSessionDTO, error) {
	deviceID, err := s.DeviceID(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.Heartbeat(ctx, deviceID, qrSessionID)
}

func (s *PublicService) publish(ctx context.Context, qrSessionID, deviceID string, order *dto.OrderDTO) {
	if s.bus == nil || order == nil {
		return
	}
	s.bus.Publish(ctx, events.OrderUpdatedEvent{QRSessionID: qrSessionID, DeviceID: deviceID, Order: order})
}
