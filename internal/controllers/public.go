package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/services"
	"resto-dashboard/pkg/utils"
)

// PublicController - страницы гостя по QR-коду, без входа в систему.
type PublicController struct {
	publicService services.PublicServiceInterface
	logger        *zap.Logger
}

func NewPublicController(publicService services.PublicServiceInterface, logger *zap.Logger) *PublicController {
	return &PublicController{publicService: publicService, logger: logger}
}

func (c *PublicController) Resolve(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.ResolveQRDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.publicService.Resolve(ctx.Request().Context(), store, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "QR-код распознан", http.StatusOK)
}

func (c *PublicController) CreateDraft(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.publicService.CreateDraft(ctx.Request().Context(), store, ctx.Param("qr"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Черновик заказа создан", http.StatusCreated)
}

func (c *PublicController) GetOrder(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.publicService.GetOrder(ctx.Request().Context(), store, ctx.Param("qr"), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заказ найден", http.StatusOK)
}

func (c *PublicController) UpdateDraft(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateDraftDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.publicService.UpdateDraft(ctx.Request().Context(), store, ctx.Param("qr"), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заказ обновлён", http.StatusOK)
}

func (c *PublicController) Submit(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.publicService.Submit(ctx.Request().Context(), store, ctx.Param("qr"), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заказ отправлен на кухню", http.StatusOK)
}

func (c *PublicController) Heartbeat(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.publicService.Heartbeat(ctx.Request().Context(), store, ctx.Param("qr"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Сессия продлена", http.StatusOK)
}
