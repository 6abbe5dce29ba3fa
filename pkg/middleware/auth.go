package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"resto-dashboard/internal/authz"
	"resto-dashboard/internal/session"
	apperrors "resto-dashboard/pkg/errors"
	"resto-dashboard/pkg/service"
	"resto-dashboard/pkg/utils"
)

// PermissionResolver - откуда гард берёт права текущей сессии.
type PermissionResolver interface {
	Resolve(ctx context.Context, store *session.Store) (map[string]bool, error)
}

type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthMiddleware struct {
	jwtService  service.JWTService
	manager     *session.Manager
	permissions PermissionResolver
	gatekeeper  *authz.Gatekeeper
	cookie      CookieConfig
	logger      *zap.Logger
}

func NewAuthMiddleware(
	jwtSvc service.JWTService,
	manager *session.Manager,
	permissions PermissionResolver,
	cookie CookieConfig,
	logger *zap.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtSvc,
		manager:     manager,
		permissions: permissions,
		gatekeeper:  authz.NewGatekeeper(),
		cookie:      cookie,
		logger:      logger,
	}
}

// Session поднимает хранилище сессии по подписанной cookie.
// Нет cookie или она невалидна - выдаётся новая сессия.
func (m *AuthMiddleware) Session(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionID := ""
		if cookie, err := c.Cookie(m.cookie.Name); err == nil && cookie.Value != "" {
			claims, err := m.jwtService.ValidateToken(cookie.Value)
			if err != nil {
				m.logger.Debug("SessionMiddleware: невалидная cookie, выдаём новую сессию", zap.Error(err))
			} else {
				sessionID = claims.SessionID
			}
		}

		if sessionID == "" {
			sessionID = m.manager.NewID()
			if err := m.issueCookie(c, sessionID); err != nil {
				return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, apperrors.MsgInternal, err, nil), m.logger)
			}
		}

		store, err := m.manager.Open(c.Request().Context(), sessionID)
		if err != nil {
			m.logger.Error("SessionMiddleware: не удалось открыть сессию", zap.String("session", sessionID), zap.Error(err))
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusServiceUnavailable, "Хранилище сессий недоступно", err, nil), m.logger)
		}

		c.SetRequest(c.Request().WithContext(utils.WithSession(c.Request().Context(), store)))
		return next(c)
	}
}

func (m *AuthMiddleware) issueCookie(c echo.Context, sessionID string) error {
	token, err := m.jwtService.GenerateSessionToken(sessionID)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     m.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.jwtService.GetSessionTTL()),
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Auth - пропускает только вошедших пользователей. Иначе 401 с redirect на /login.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		store, err := utils.GetSessionFromCtx(c.Request().Context())
		if err != nil {
			m.logger.Error("AuthMiddleware: сессия не найдена в контексте", zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}
		if !store.IsAuthenticated(c.Request().Context()) {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}
		return next(c)
	}
}

// AuthorizeAny - Auth плюс хотя бы один из кодов прав (или фичефлаг "feature:<имя>").
func (m *AuthMiddleware) AuthorizeAny(codes ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.Auth(func(c echo.Context) error {
			ctx := c.Request().Context()
			store, err := utils.GetSessionFromCtx(ctx)
			if err != nil {
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
			}

			perms, err := utils.GetPermissionsMapFromCtx(ctx)
			if err != nil {
				perms, err = m.permissions.Resolve(ctx, store)
				if err != nil {
					return utils.ErrorResponse(c, err, m.logger)
				}
				ctx = utils.WithPermissions(ctx, perms)
				c.SetRequest(c.Request().WithContext(ctx))
			}

			if !m.gatekeeper.CanAny(perms, store.Me(), codes...) {
				m.logger.Warn("AuthMiddleware: отказано в доступе",
					zap.String("session", store.ID()),
					zap.Strings("required", codes),
				)
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		})
	}
}
