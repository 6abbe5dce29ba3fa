package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/services"
	"resto-dashboard/pkg/utils"
)

type ContextController struct {
	contextService services.ContextServiceInterface
	logger         *zap.Logger
}

func NewContextController(contextService services.ContextServiceInterface, logger *zap.Logger) *ContextController {
	return &ContextController{contextService: contextService, logger: logger}
}

func (c *ContextController) Current(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, store.Snapshot().Context(), "Активный контекст", http.StatusOK)
}

func (c *ContextController) Options(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.contextService.Options(ctx.Request().Context(), store)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Данные переключателя получены", http.StatusOK)
}

func (c *ContextController) SelectRestaurant(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.SelectRestaurantDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.contextService.SelectRestaurant(ctx.Request().Context(), store, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Ресторан выбран", http.StatusOK)
}

func (c *ContextController) SelectOutlet(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.SelectOutletDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.contextService.SelectOutlet(ctx.Request().Context(), store, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Точка выбрана", http.StatusOK)
}

func (c *ContextController) Clear(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.contextService.Clear(ctx.Request().Context(), store); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, store.Snapshot().Context(), "Контекст сброшен", http.StatusOK)
}
