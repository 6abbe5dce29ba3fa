package services

import (
	"context"

	"go.uber.org/zap"

	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/session"
)

type PayrollServiceInterface interface {
	UpsertPayRate(ctx context.Context, store *session.Store, payload dto.PayRateDTO) (*dto.PayRateDTO, error)
	ListPeriods(ctx context.Context, store *session.Store) ([]dto.PayrollPeriodDTO, error)
	CreatePeriod(ctx context.Context, store *session.Store, payload dto.CreatePayrollPeriodDTO) (*dto.PayrollPeriodDTO, error)
	ClosePeriod(ctx context.Context, store *session.Store, periodID string) (*dto.PayrollPeriodDTO, error)
	CalculatePeriod(ctx context.Context, store *session.Store, periodID string) (*dto.PayrollDetailDTO, error)
	PeriodDetail(ctx context.Context, store *session.Store, periodID string) (*dto.PayrollDetailDTO, error)
}

// PayrollService - зарплата считается на уровне ресторана, точка не нужна.
type PayrollService struct {
	*BaseService
	api    backend.StaffAPIInterface
	logger *zap.Logger
}

func NewPayrollService(api backend.StaffAPIInterface, logger *zap.Logger) PayrollServiceInterface {
	return &PayrollService{
		BaseService: NewBaseService(logger),
		api:         api,
		logger:      logger,
	}
}

func (s *PayrollService) UpsertPayRate(ctx context.Context, store *session.Store, payload dto.PayRateDTO) (*dto.PayRateDTO, error) {
	scope, err := s.RestaurantScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.UpsertPayRate(ctx, scope.Token, scope.RestaurantID, payload)
}

func (s *PayrollService) ListPeriods(ctx context.Context, store *session.Store) ([]dto.PayrollPeriodDTO, error) {
	scope, err := s.RestaurantScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.ListPayrollPeriods(ctx, scope.Token, scope.RestaurantID)
}

func (s *PayrollService) CreatePeriod(ctx context.Context, store *session.Store, payload dto.CreatePayrollPeriodDTO) (*dto.PayrollPeriodDTO, error) {
	if err := checkRange(payload.From, payload.To); err != nil {
		return nil, err
	}
	scope, err := s.RestaurantScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.CreatePayrollPeriod(ctx, scope.Token, scope.RestaurantID, payload)
}

func (s *PayrollService) ClosePeriod(ctx context.Context, store *session.Store, periodID string) (*dto.PayrollPeriodDTO, error) {
	scope, err := s.RestaurantScope(ctx, store)
	if err != nil {
		return nil, err
	}
	period, err := s.api.ClosePayrollPeriod(ctx, scope.Token, periodID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Период зарплаты закрыт", zap.String("period_id", periodID), zap.String("restaurant_id", scope.RestaurantID))
	return period, nil
}

func (s *PayrollService) CalculatePeriod(ctx context.Context, store *session.Store, periodID string) (*dto.PayrollDetailDTO, error) {
	scope, err := s.RestaurantScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.CalculatePayrollPeriod(ctx, scope.Token, periodID)
}

func (s *PayrollService) PeriodDetail(ctx context.Context, store *session.Store, periodID string) (*dto.PayrollDetailDTO, error) {
	scope, err := s.RestaurantScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.PayrollPeriodDetail(ctx, scope.Token, periodID)
}
