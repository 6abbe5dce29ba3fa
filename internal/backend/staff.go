package backend

import (
	"context"
	"net/http"
	"net/url"

	"resto-dashboard/internal/dto"
)

// StaffAPIInterface - сотрудники, смены, посещаемость и зарплата.
// Точка и ресторан здесь часть пути, заголовок X-Outlet-Id не используется.
type StaffAPIInterface interface {
	ListStaff(ctx context.Context, token, outletID string) ([]dto.StaffDTO, error)
	CreateStaff(ctx context.Context, token, outletID string, payload dto.CreateStaffDTO) (*dto.StaffDTO, error)
	UpdateStaff(ctx context.Context, token, outletID, staffID string, payload dto.UpdateStaffDTO) (*dto.StaffDTO, error)
	DeleteStaff(ctx context.Context, token, outletID, staffID string) error

	ListShiftTemplates(ctx context.Context, token, outletID string) ([]dto.ShiftTemplateDTO, error)
	SaveShiftTemplate(ctx context.Context, token, outletID string, payload dto.ShiftTemplateDTO) (*dto.ShiftTemplateDTO, error)
	DeleteShiftTemplate(ctx context.Context, token, outletID, templateID string) error

	ListAssignments(ctx context.Context, token, outletID string, filter dto.AssignmentFilterDTO) ([]dto.ShiftAssignmentDTO, error)
	CreateAssignment(ctx context.Context, token, outletID string, payload dto.ShiftAssignmentDTO) (*dto.ShiftAssignmentDTO, error)
	DeleteAssignment(ctx context.Context, token, outletID, assignmentID string) error
	BulkSchedule(ctx context.Context, token, outletID string, payload dto.BulkScheduleDTO) ([]dto.ShiftAssignmentDTO, error)

	ClockIn(ctx context.Context, token, outletID string, payload dto.ClockDTO) (*dto.AttendanceDTO, error)
	ClockOut(ctx context.Context, token, outletID string, payload dto.ClockDTO) (*dto.AttendanceDTO, error)
	ListAttendance(ctx context.Context, token, outletID string, filter dto.AssignmentFilterDTO) ([]dto.AttendanceDTO, error)
	RequestAdjustment(ctx context.Context, token, attendanceID string, payload dto.AdjustmentRequestDTO) (*dto.AdjustmentDTO, error)
	DecideAdjustment(ctx context.Context, token, adjustmentID string, payload dto.AdjustmentDecisionDTO) (*dto.AdjustmentDTO, error)

	UpsertPayRate(ctx context.Context, token, restaurantID string, payload dto.PayRateDTO) (*dto.PayRateDTO, error)
	ListPayrollPeriods(ctx context.Context, token, restaurantID string) ([]dto.PayrollPeriodDTO, error)
	CreatePayrollPeriod(ctx context.Context, token, restaurantID string, payload dto.CreatePayrollPeriodDTO) (*dto.PayrollPeriodDTO, error)
	ClosePayrollPeriod(ctx context.Context, token, periodID string) (*dto.PayrollPeriodDTO, error)
	CalculatePayrollPeriod(ctx context.Context, token, periodID string) (*dto.PayrollDetailDTO, error)
	PayrollPeriodDetail(ctx context.Context, token, periodID string) (*dto.PayrollDetailDTO, error)
}

type staffAPI struct {
	c *Client
}

func NewStaffAPI(c *Client) StaffAPIInterface {
	return &staffAPI{c: c}
}

const areaStaff = "staff"

func (a *staffAPI) req(method, endpoint, token string, body interface{}) request {
	return request{area: areaStaff, method: method, endpoint: endpoint, auth: Auth{Token: token}, body: body}
}

func rangeQuery(filter dto.AssignmentFilterDTO) url.Values {
	query := url.Values{}
	if filter.From != "" {
		query.Set("from", filter.From)
	}
	if filter.To != "" {
		query.Set("to", filter.To)
	}
	return query
}

// --- Сотрудники ---

func (a *staffAPI) ListStaff(ctx context.Context, token, outletID string) ([]dto.StaffDTO, error) {
	return call[[]dto.StaffDTO](a.c, ctx, a.req(http.MethodGet, path("/outlets/%s/staff", outletID), token, nil))
}

func (a *staffAPI) CreateStaff(ctx context.Context, token, outletID string, payload dto.CreateStaffDTO) (*dto.StaffDTO, error) {
	return call[*dto.StaffDTO](a.c, ctx, a.req(http.MethodPost, path("/outlets/%s/staff", outletID), token, payload))
}

func (a *staffAPI) UpdateStaff(ctx context.Context, token, outletID, staffID string, payload dto.UpdateStaffDTO) (*dto.StaffDTO, error) {
	return call[*dto.StaffDTO](a.c, ctx, a.req(http.MethodPatch, path("/outlets/%s/staff/%s", outletID, staffID), token, payload))
}

func (a *staffAPI) DeleteStaff(ctx context.Context, token, outletID, staffID string) error {
	return exec(a.c, ctx, a.req(http.MethodDelete, path("/outlets/%s/staff/%s", outletID, staffID), token, nil))
}

// --- Шаблоны смен и назначения ---

func (a *staffAPI) ListShiftTemplates(ctx context.Context, token, outletID string) ([]dto.ShiftTemplateDTO, error) {
	return call[[]dto.ShiftTemplateDTO](a.c, ctx, a.req(http.MethodGet, path("/outlets/%s/shift-templates", outletID), token, nil))
}

// SaveShiftTemplate создаёт шаблон, а при заполненном ID - обновляет его.
func (a *staffAPI) SaveShiftTemplate(ctx context.Context, token, outletID string, payload dto.ShiftTemplateDTO) (*dto.ShiftTemplateDTO, error) {
	if payload.ID == "" {
		return call[*dto.ShiftTemplateDTO](a.c, ctx, a.req(http.MethodPost, path("/outlets/%s/shift-templates", outletID), token, payload))
	}
	return call[*dto.ShiftTemplateDTO](a.c, ctx, a.req(http.MethodPut, path("/outlets/%s/shift-templates/%s", outletID, payload.ID), token, payload))
}

func (a *staffAPI) DeleteShiftTemplate(ctx context.Context, token, outletID, templateID string) error {
	return exec(a.c, ctx, a.req(http.MethodDelete, path("/outlets/%s/shift-templates/%s", outletID, templateID), token, nil))
}

func (a *staffAPI) ListAssignments(ctx context.Context, token, outletID string, filter dto.AssignmentFilterDTO) ([]dto.ShiftAssignmentDTO, error) {
	r := a.req(http.MethodGet, path("/outlets/%s/shifts", outletID), token, nil)
	r.query = rangeQuery(filter)
	return call[[]dto.ShiftAssignmentDTO](a.c, ctx, r)
}

func (a *staffAPI) CreateAssignment(ctx context.Context, token, outletID string, payload dto.ShiftAssignmentDTO) (*dto.ShiftAssignmentDTO, error) {
	return call[*dto.ShiftAssignmentDTO](a.c, ctx, a.req(http.MethodPost, path("/outlets/%s/shifts", outletID), token, payload))
}

func (a *staffAPI) DeleteAssignment(ctx context.Context, token, outletID, assignmentID string) error {
	return exec(a.c, ctx, a.req(http.MethodDelete, path("/outlets/%s/shifts/%s", outletID, assignmentID), token, nil))
}

func (a *staffAPI) BulkSchedule(ctx context.Context, token, outletID string, payload dto.BulkScheduleDTO) ([]dto.ShiftAssignmentDTO, error) {
	return call[[]dto.ShiftAssignmentDTO](a.c, ctx, a.req(http.MethodPost, path("/outlets/%s/shifts/bulk", outletID), token, payload))
}

// --- Посещаемость ---

func (a *staffAPI) ClockIn(ctx context.Context, token, outletID string, payload dto.ClockDTO) (*dto.AttendanceDTO, error) {
	return call[*dto.AttendanceDTO](a.c, ctx, a.req(http.MethodPost, path("/outlets/%s/attendance/clock-in", outletID), token, payload))
}

func (a *staffAPI) ClockOut(ctx context.Context, token, outletID string, payload dto.ClockDTO) (*dto.AttendanceDTO, error) {
	return call[*dto.AttendanceDTO](a.c, ctx, a.req(http.MethodPost, path("/outlets/%s/attendance/clock-out", outletID), token, payload))
}

func (a *staffAPI) ListAttendance(ctx context.Context, token, outletID string, filter dto.AssignmentFilterDTO) ([]dto.AttendanceDTO, error) {
	r := a.req(http.MethodGet, path("/outlets/%s/attendance", outletID), token, nil)
	r.query = rangeQuery(filter)
	return call[[]dto.AttendanceDTO](a.c, ctx, r)
}

func (a *staffAPI) RequestAdjustment(ctx context.Context, token, attendanceID string, payload dto.AdjustmentRequestDTO) (*dto.AdjustmentDTO, error) {
	return call[*dto.AdjustmentDTO](a.c, ctx, a.req(http.MethodPost, path("/attendance/%s/adjustments", attendanceID), token, payload))
}

func (a *staffAPI) DecideAdjustment(ctx context.Context, token, adjustmentID string, payload dto.AdjustmentDecisionDTO) (*dto.AdjustmentDTO, error) {
	return call[*dto.AdjustmentDTO](a.c, ctx, a.req(http.MethodPost, path("/attendance/adjustments/%s/decision", adjustmentID), token, payload))
}

// --- Зарплата ---

func (a *staffAPI) UpsertPayRate(ctx context.Context, token, restaurantID string, payload dto.PayRateDTO) (*dto.PayRateDTO, error) {
	return call[*dto.PayRateDTO](a.c, ctx, a.req(http.MethodPut, path("/restaurants/%s/payroll/rates", restaurantID), token, payload))
}

func (a *staffAPI) ListPayrollPeriods(ctx context.Context, token, restaurantID string) ([]dto.PayrollPeriodDTO, error) {
	return call[[]dto.PayrollPeriodDTO](a.c, ctx, a.req(http.MethodGet, path("/restaurants/%s/payroll/periods", restaurantID), token, nil))
}

func (a *staffAPI) CreatePayrollPeriod(ctx context.Context, token, restaurantID string, payload dto.CreatePayrollPeriodDTO) (*dto.PayrollPeriodDTO, error) {
	return call[*dto.PayrollPeriodDTO](a.c, ctx, a.req(http.MethodPost, path("/restaurants/%s/payroll/periods", restaurantID), token, payload))
}

func (a *staffAPI) ClosePayrollPeriod(ctx context.Context, token, periodID string) (*dto.PayrollPeriodDTO, error) {
	return call[*dto.PayrollPeriodDTO](a.c, ctx, a.req(http.MethodPost, path("/payroll/periods/%s/close", periodID), token, nil))
}

func (a *staffAPI) CalculatePayrollPeriod(ctx context.Context, token, periodID string) (*dto.PayrollDetailDTO, error) {
	return call[*dto.PayrollDetailDTO](a.c, ctx, a.req(http.MethodPost, path("/payroll/periods/%s/calculate", periodID), token, nil))
}

func (a *staffAPI) PayrollPeriodDetail(ctx context.Context, token, periodID string) (*dto.PayrollDetailDTO, error) {
	return call[*dto.PayrollDetailDTO](a.c, ctx, a.req(http.MethodGet, path("/payroll/periods/%s", periodID), token, nil))
}
