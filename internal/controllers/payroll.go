package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/services"
	"resto-dashboard/pkg/utils"
)

type PayrollController struct {
	payrollService services.PayrollServiceInterface
	logger         *zap.Logger
}

func NewPayrollController(payrollService services.PayrollServiceInterface, logger *zap.Logger) *PayrollController {
	return &PayrollController{payrollService: payrollService, logger: logger}
}

func (c *PayrollController) UpsertPayRate(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.PayRateDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.payrollService.UpsertPayRate(ctx.Request().Context(), store, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Ставка сохранена", http.StatusOK)
}

func (c *PayrollController) ListPeriods(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.payrollService.ListPeriods(ctx.Request().Context(), store)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Периоды получены", http.StatusOK)
}

func (c *PayrollController) CreatePeriod(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.CreatePayrollPeriodDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.payrollService.CreatePeriod(ctx.Request().Context(), store, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Период создан", http.StatusCreated)
}

func (c *PayrollController) ClosePeriod(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.payrollService.ClosePeriod(ctx.Request().Context(), store, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Период закрыт", http.StatusOK)
}

func (c *PayrollController) CalculatePeriod(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.payrollService.CalculatePeriod(ctx.Request().Context(), store, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Расчёт выполнен", http.StatusOK)
}

// PeriodDetail - ведомость периода, с ?format=xlsx в виде файла.
func (c *PayrollController) PeriodDetail(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	periodID := ctx.Param("id")
	res, err := c.payrollService.PeriodDetail(ctx.Request().Context(), store, periodID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if strings.ToLower(ctx.QueryParam("format")) == "xlsx" {
		f, err := services.PayrollWorkbook(res)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return respondWithXLSX(ctx, f, fmt.Sprintf("payroll_%s.xlsx", periodID))
	}
	return utils.SuccessResponse(ctx, res, "Ведомость получена", http.StatusOK)
}
