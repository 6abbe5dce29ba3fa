package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type StaffDTO struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	OutletID string `json:"outlet_id"`
	IsActive bool   `json:"is_active"`
}

type CreateStaffDTO struct {
	FullName string `json:"full_name" validate:"required,max=120"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Role     string `json:"role" validate:"required,max=32"`
}

type UpdateStaffDTO struct {
	FullName null.String `json:"full_name" validate:"omitempty,max=120"`
	Email    null.String `json:"email" validate:"omitempty,email"`
	Phone    null.String `json:"phone" validate:"omitempty,max=32"`
	Role     null.String `json:"role" validate:"omitempty,max=32"`
	IsActive null.Bool   `json:"is_active"`
}

type ShiftTemplateDTO struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name" validate:"required,max=64"`
	StartTime string   `json:"start_time" validate:"required,hhmm"`
	EndTime   string   `json:"end_time" validate:"required,hhmm"`
	Weekdays  []string `json:"weekdays" validate:"omitempty,dive,oneof=mon tue wed thu fri sat sun"`
}

type ShiftAssignmentDTO struct {
	ID         string `json:"id,omitempty"`
	StaffID    string `json:"staff_id" validate:"required"`
	TemplateID string `json:"template_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

type AssignmentFilterDTO struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

type BulkScheduleDTO struct {
	TemplateID string   `json:"template_id" validate:"required"`
	StaffIDs   []string `json:"staff_ids" validate:"required,min=1,dive,required"`
	From       string   `json:"from" validate:"required,datetime=2006-01-02"`
	To         string   `json:"to" validate:"required,datetime=2006-01-02"`
}

type AttendanceDTO struct {
	ID       string     `json:"id"`
	StaffID  string     `json:"staff_id"`
	ClockIn  time.Time  `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out,omitempty"`
}

type ClockDTO struct {
	StaffID string `json:"staff_id" validate:"required"`
}

type AdjustmentRequestDTO struct {
	ClockIn  *time.Time `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out"`
	Reason   string     `json:"reason" validate:"required,max=255"`
}

type AdjustmentDecisionDTO struct {
	Approved bool   `json:"approved"`
	Comment  string `json:"comment" validate:"omitempty,max=255"`
}

type AdjustmentDTO struct {
	ID           string `json:"id"`
	AttendanceID string `json:"attendance_id"`
	Status       string `json:"status"`
	Reason       string `json:"reason"`
}

type PayRateDTO struct {
	StaffID    string  `json:"staff_id" validate:"required"`
	HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
	Currency   string  `json:"currency" validate:"omitempty,len=3"`
}

type CreatePayrollPeriodDTO struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

type PayrollPeriodDTO struct {
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Status string `json:"status"`
}

type PayrollLineDTO struct {
	StaffID   string  `json:"staff_id"`
	StaffName string  `json:"staff_name"`
	Hours     float64 `json:"hours"`
	Rate      float64 `json:"rate"`
	Gross     float64 `json:"gross"`
}

type PayrollDetailDTO struct {
	Period PayrollPeriodDTO `json:"period"`
	Lines  []PayrollLineDTO `json:"lines"`
	Total  float64          `json:"total"`
}
