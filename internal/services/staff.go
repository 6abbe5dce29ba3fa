package services

import (
	"context"

	"go.uber.org/zap"

	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/session"
	apperrors "resto-dashboard/pkg/errors"
)

// StaffServiceInterface - персонал, смены и табель выбранной точки.
type StaffServiceInterface interface {
	ListStaff(ctx context.Context, store *session.Store) ([]dto.StaffDTO, error)
	CreateStaff(ctx context.Context, store *session.Store, payload dto.CreateStaffDTO) (*dto.StaffDTO, error)
	UpdateStaff(ctx context.Context, store *session.Store, staffID string, payload dto.UpdateStaffDTO) (*dto.StaffDTO, error)
	DeleteStaff(ctx context.Context, store *session.Store, staffID string) error

	ListShiftTemplates(ctx context.Context, store *session.Store) ([]dto.ShiftTemplateDTO, error)
	SaveShiftTemplate(ctx context.Context, store *session.Store, payload dto.ShiftTemplateDTO) (*dto.ShiftTemplateDTO, error)
	DeleteShiftTemplate(ctx context.Context, store *session.Store, templateID string) error

	ListAssignments(ctx context.Context, store *session.Store, filter dto.AssignmentFilterDTO) ([]dto.ShiftAssignmentDTO, error)
	CreateAssignment(ctx context.Context, store *session.Store, payload dto.ShiftAssignmentDTO) (*dto.ShiftAssignmentDTO, error)
	DeleteAssignment(ctx context.Context, store *session.Store, assignmentID string) error
	BulkSchedule(ctx context.Context, store *session.Store, payload dto.BulkScheduleDTO) ([]dto.ShiftAssignmentDTO, error)

	ClockIn(ctx context.Context, store *session.Store, payload dto.ClockDTO) (*dto.AttendanceDTO, error)
	ClockOut(ctx context.Context, store *session.Store, payload dto.ClockDTO) (*dto.AttendanceDTO, error)
	ListAttendance(ctx context.Context, store *session.Store, filter dto.AssignmentFilterDTO) ([]dto.AttendanceDTO, error)
	RequestAdjustment(ctx context.Context, store *session.Store, attendanceID string, payload dto.AdjustmentRequestDTO) (*dto.AdjustmentDTO, error)
	DecideAdjustment(ctx context.Context, store *session.Store, adjustmentID string, payload dto.AdjustmentDecisionDTO) (*dto.AdjustmentDTO, error)
}

type StaffService struct {
	*BaseService
	api    backend.StaffAPIInterface
	logger *zap.Logger
}

func NewStaffService(api backend.StaffAPIInterface, logger *zap.Logger) StaffServiceInterface {
	return &StaffService{
		BaseService: NewBaseService(logger),
		api:         api,
		logger:      logger,
	}
}

func (s *StaffService) ListStaff(ctx context.Context, store *session.Store) ([]dto.StaffDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.ListStaff(ctx, scope.Token, scope.OutletID)
}

func (s *StaffService) CreateStaff(ctx context.Context, store *session.Store, payload dto.CreateStaffDTO) (*dto.StaffDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.CreateStaff(ctx, scope.Token, scope.OutletID, payload)
}

func (s *StaffService) UpdateStaff(ctx context.Context, store *session.Store, staffID string, payload dto.UpdateStaffDTO) (*dto.StaffDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateStaff(ctx, scope.Token, scope.OutletID, staffID, payload)
}

func (s *StaffService) DeleteStaff(ctx context.Context, store *session.Store, staffID string) error {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return err
	}
	return s.api.DeleteStaff(ctx, scope.Token, scope.OutletID, staffID)
}

func (s *StaffService) ListShiftTemplates(ctx context.Context, store *session.Store) ([]dto.ShiftTemplateDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.ListShiftTemplates(ctx, scope.Token, scope.OutletID)
}

// SaveShiftTemplate создаёт шаблон без ID и обновляет с ID. Ночные смены (конец раньше начала) допустимы.
func (s *StaffService) SaveShiftTemplate(ctx context.Context, store *session.Store, payload dto.ShiftTemplateDTO) (*dto.ShiftTemplateDTO, error) {
	if payload.StartTime == payload.EndTime {
		return nil, apperrors.NewBadRequestError("Начало и конец смены совпадают")
	}
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.SaveShiftTemplate(ctx, scope.Token, scope.OutletID, payload)
}

func (s *StaffService) DeleteShiftTemplate(ctx context.Context, store *session.Store, templateID string) error {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return err
	}
	return s.api.DeleteShiftTemplate(ctx, scope.Token, scope.OutletID, templateID)
}

func (s *StaffService) ListAssignments(ctx context.Context, store *session.Store, filter dto.AssignmentFilterDTO) ([]dto.ShiftAssignmentDTO, error) {
	if err := checkRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.ListAssignments(ctx, scope.Token, scope.OutletID, filter)
}

func (s *StaffService) CreateAssignment(ctx context.Context, store *session.Store, payload dto.ShiftAssignmentDTO) (*dto.ShiftAssignmentDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.CreateAssignment(ctx, scope.Token, scope.OutletID, payload)
}

func (s *StaffService) DeleteAssignment(ctx context.Context, store *session.Store, assignmentID string) error {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return err
	}
	return s.api.DeleteAssignment(ctx, scope.Token, scope.OutletID, assignmentID)
}

func (s *StaffService) BulkSchedule(ctx context.Context, store *session.Store, payload dto.BulkScheduleDTO) ([]dto.ShiftAssignmentDTO, error) {
	if err := checkRange(payload.From, payload.To); err != nil {
		return nil, err
	}
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	created, err := s.api.BulkSchedule(ctx, scope.Token, scope.OutletID, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Смены расписаны пакетом",
		zap.String("outlet_id", scope.OutletID),
		zap.String("from", payload.From),
		zap.String("to", payload.To),
		zap.Int("created", len(created)),
	)
	return created, nil
}

func (s *StaffService) ClockIn(ctx context.Context, store *session.Store, payload dto.ClockDTO) (*dto.AttendanceDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.ClockIn(ctx, scope.Token, scope.OutletID, payload)
}

func (s *StaffService) ClockOut(ctx context.Context, store *session.Store, payload dto.ClockDTO) (*dto.AttendanceDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.ClockOut(ctx, scope.Token, scope.OutletID, payload)
}

func (s *StaffService) ListAttendance(ctx context.Context, store *session.Store, filter dto.AssignmentFilterDTO) ([]dto.AttendanceDTO, error) {
	if err := checkRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.ListAttendance(ctx, scope.Token, scope.OutletID, filter)
}

func (s *StaffService) RequestAdjustment(ctx context.Context, store *session.Store, attendanceID string, payload dto.AdjustmentRequestDTO) (*dto.AdjustmentDTO, error) {
	if payload.ClockIn == nil && payload.ClockOut == nil {
		return nil, apperrors.NewBadRequestError("Укажите новое время прихода или ухода")
	}
	if payload.ClockIn != nil && payload.ClockOut != nil && !payload.ClockOut.After(*payload.ClockIn) {
		return nil, apperrors.NewBadRequestError("Уход должен быть позже прихода")
	}
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.RequestAdjustment(ctx, scope.Token, attendanceID, payload)
}

func (s *StaffService) DecideAdjustment(ctx context.Context, store *session.Store, adjustmentID string, payload dto.AdjustmentDecisionDTO) (*dto.AdjustmentDTO, error) {
	scope, err := s.OutletScope(ctx, store)
	if err != nil {
		return nil, err
	}
	return s.api.DecideAdjustment(ctx, scope.Token, adjustmentID, payload)
}

// checkRange - даты в формате 2006-01-02 уже проверены валидатором, здесь только порядок.
func checkRange(from, to string) error {
	if from != "" && to != "" && from > to {
		return apperrors.NewBadRequestError("Дата начала позже даты окончания")
	}
	return nil
}
