package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/services"
	"resto-dashboard/pkg/api"
	apperrors "resto-dashboard/pkg/errors"
	"resto-dashboard/pkg/utils"
)

const defaultOrderPageSize = 50

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

// GetOrders - список заказов точки. С ?format=xlsx отдаёт файл со всеми страницами.
func (c *OrderController) GetOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var filter dto.OrderFilterDTO
	if err := bindAndValidate(ctx, &filter); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if strings.ToLower(ctx.QueryParam("format")) == "xlsx" {
		orders, err := c.orderService.ListAll(reqCtx, store, filter.Status)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		f, err := services.OrdersWorkbook(orders)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return respondWithXLSX(ctx, f, fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02")))
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = defaultOrderPageSize
	}
	res, err := c.orderService.List(reqCtx, store, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Список заказов получен", res.Items, res.Total, filter.Page, filter.Limit)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.orderService.Get(ctx.Request().Context(), store, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заказ найден", http.StatusOK)
}

func (c *OrderController) Action(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.OrderActionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}
	// Действие из пути главнее тела.
	payload.Action = ctx.Param("action")
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.orderService.Action(ctx.Request().Context(), store, ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Действие выполнено", http.StatusOK)
}

func (c *OrderController) AddItem(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.AddOrderItemDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.orderService.AddItem(ctx.Request().Context(), store, ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Позиция добавлена", http.StatusOK)
}

func (c *OrderController) UpdateItem(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateOrderItemDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.orderService.UpdateItem(ctx.Request().Context(), store, ctx.Param("id"), ctx.Param("itemId"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Позиция обновлена", http.StatusOK)
}

func (c *OrderController) RemoveItem(ctx echo.Context) error {
	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.orderService.RemoveItem(ctx.Request().Context(), store, ctx.Param("id"), ctx.Param("itemId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Позиция удалена", http.StatusOK)
}

func respondWithXLSX(ctx echo.Context, f *excelize.File, fileName string) error {
	defer f.Close()
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
