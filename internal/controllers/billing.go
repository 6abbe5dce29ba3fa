package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/services"
	"resto-dashboard/pkg/utils"
)

type BillingController struct {
	billingService services.BillingServiceInterface
	logger         *zap.Logger
}

func NewBillingController(billingService services.BillingServiceInterface, logger *zap.Logger) *BillingController {
	return &BillingController{billingService: billingService, logger: logger}
}

// Totals - итоги по заказу или группе: /billing/:scope/:id/totals
func (c *BillingController) Totals(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.billingService.Totals(ctx.Request().Context(), store, ctx.Param("scope"), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Итоги рассчитаны", http.StatusOK)
}

func (c *BillingController) RecordPayment(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.RecordPaymentDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.billingService.RecordPayment(ctx.Request().Context(), store, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оплата проведена", http.StatusCreated)
}

func (c *BillingController) CreatePaymentQR(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.CreatePaymentQRDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.billingService.CreatePaymentQR(ctx.Request().Context(), store, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "QR для оплаты создан", http.StatusCreated)
}

func (c *BillingController) CreateGroup(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.SaveBillingGroupDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.billingService.CreateGroup(ctx.Request().Context(), store, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Группа создана", http.StatusCreated)
}

func (c *BillingController) UpdateGroup(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.SaveBillingGroupDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.billingService.UpdateGroup(ctx.Request().Context(), store, ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Группа обновлена", http.StatusOK)
}

func (c *BillingController) DeleteGroup(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.billingService.DeleteGroup(ctx.Request().Context(), store, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Группа удалена", http.StatusOK)
}
