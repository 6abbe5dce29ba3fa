package services

import (
	"context"

	"go.uber.org/zap"

	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/session"
	apperrors "resto-dashboard/pkg/errors"
)

type BillingServiceInterface interface {
	Totals(ctx context.Context, store *session.Store, scope, scopeID string) (*dto.TotalsDTO, error)
	RecordPayment(ctx context.Context, store *session.Store, payload dto.RecordPaymentDTO) (*dto.PaymentDTO, error)
	CreatePaymentQR(ctx context.Context, store *session.Store, payload dto.CreatePaymentQRDTO) (*dto.PaymentQRDTO, error)
	CreateGroup(ctx context.Context, store *session.Store, payload dto.SaveBillingGroupDTO) (*dto.BillingGroupDTO, error)
	UpdateGroup(ctx context.Context, store *session.Store, groupID string, payload dto.SaveBillingGroupDTO) (*dto.BillingGroupDTO, error)
	DeleteGroup(ctx context.Context, store *session.Store, groupID string) error
}

type BillingService struct {
	*BaseService
	api    backend.BillingAPIInterface
	logger *zap.Logger
}

func NewBillingService(api backend.BillingAPIInterface, logger *zap.Logger) BillingServiceInterface {
	return &BillingService{
		BaseService: NewBaseService(logger),
		api:         api,
		logger:      logger,
	}
}

func (s *BillingService) Totals(ctx context.Context, store *session.Store, billingScope, scopeID string) (*dto.TotalsDTO, error) {
	if billingScope != dto.BillingScopeOrder && billingScope != dto.BillingScopeGroup {
		return nil, apperrors.NewBadRequestError("Неизвестная область расчёта: " + billingScope)
	}
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.Totals(ctx, scope.Auth(), billingScope, scopeID)
}

func (s *BillingService) RecordPayment(ctx context.Context, store *session.Store, payload dto.RecordPaymentDTO) (*dto.PaymentDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	payment, err := s.api.RecordPayment(ctx, scope.Auth(), payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Оплата записана",
		zap.String("scope", payload.Scope),
		zap.String("scope_id", payload.ScopeID),
		zap.String("method", payload.Method),
		zap.Float64("amount", payload.Amount),
	)
	return payment, nil
}

func (s *BillingService) CreatePaymentQR(ctx context.Context, store *session.Store, payload dto.CreatePaymentQRDTO) (*dto.PaymentQRDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.CreatePaymentQR(ctx, scope.Auth(), payload)
}

func (s *BillingService) CreateGroup(ctx context.Context, store *session.Store, payload dto.SaveBillingGroupDTO) (*dto.BillingGroupDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.CreateGroup(ctx, scope.Auth(), payload)
}

func (s *BillingService) UpdateGroup(ctx context.Context, store *session.Store, groupID string, payload dto.SaveBillingGroupDTO) (*dto.BillingGroupDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateGroup(ctx, scope.Auth(), groupID, payload)
}

func (s *BillingService) DeleteGroup(ctx context.Context, store *session.Store, groupID string) error {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return err
	}
	return s.api.DeleteGroup(ctx, scope.Auth(), groupID)
}
