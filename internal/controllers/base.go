package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"resto-dashboard/internal/session"
	apperrors "resto-dashboard/pkg/errors"
	"resto-dashboard/pkg/utils"
)

func sessionOf(ctx echo.Context) (*session.Store, error) {
	store, err := utils.GetSessionFromCtx(ctx.Request().Context())
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, apperrors.MsgInternal, err, nil)
	}
	return store, nil
}

// bindAndValidate - Bind + Validate. Ошибка Bind отдаётся как 400.
func bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil)
	}
	return ctx.Validate(payload)
}
