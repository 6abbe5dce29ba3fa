package services

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/session"
	apperrors "resto-dashboard/pkg/errors"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, store *session.Store, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Bootstrap(ctx context.Context, store *session.Store) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, store *session.Store) error
	Logout(ctx context.Context, store *session.Store) error
	VerifyEmail(ctx context.Context, payload dto.VerifyEmailDTO) error
	RequestPasswordReset(ctx context.Context, payload dto.PasswordResetRequestDTO) error
	ResetPassword(ctx context.Context, payload dto.PasswordResetDTO) error
}

type AuthService struct {
	authAPI     backend.AuthAPIInterface
	permissions PermissionServiceInterface
	logger      *zap.Logger
}

func NewAuthService(authAPI backend.AuthAPIInterface, permissions PermissionServiceInterface, logger *zap.Logger) AuthServiceInterface {
	return &AuthService{
		authAPI:     authAPI,
		permissions: permissions,
		logger:      logger,
	}
}

func (s *AuthService) Login(ctx context.Context, store *session.Store, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	logger := s.logger.With(zap.String("session", store.ID()))

	tokens, err := s.authAPI.Login(ctx, payload)
	if err != nil {
		logger.Warn("Неудачная попытка входа", zap.String("email", payload.Email), zap.Error(err))
		return nil, err
	}
	if tokens == nil || tokens.AccessToken == "" {
		logger.Error("API входа не вернул access-токен")
		return nil, apperrors.NewHttpError(http.StatusBadGateway, apperrors.MsgRequestFailed, errors.New("пустой access-токен"), nil)
	}

	// Новый вход начинается с пустого контекста: выбор прошлого пользователя не переносится.
	if !store.Snapshot().IsEmpty() || store.IsAuthenticated(ctx) {
		if err := store.Logout(ctx); err != nil {
			logger.Error("Не удалось очистить предыдущую сессию", zap.Error(err))
			return nil, err
		}
	}

	if err := store.Bridge().SetTokens(ctx, tokens.AccessToken, tokens.RefreshToken); err != nil {
		logger.Error("Не удалось сохранить токены", zap.Error(err))
		return nil, err
	}

	logger.Info("Пользователь вошёл", zap.String("email", payload.Email))
	return s.Bootstrap(ctx, store)
}

// Bootstrap - "кто я": профиль и права запрашиваются параллельно.
// Любая ошибка приводит к полному выходу из сессии и 401.
func (s *AuthService) Bootstrap(ctx context.Context, store *session.Store) (*dto.AuthResponseDTO, error) {
	logger := s.logger.With(zap.String("session", store.ID()))

	token, err := store.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var (
		me    *dto.MeDTO
		perms *dto.PermissionsDTO
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		me, err = s.authAPI.Me(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		perms, err = s.authAPI.Permissions(gctx, token)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Warn("Не удалось загрузить профиль, выходим из сессии", zap.Error(err))
		return nil, s.hardLogout(ctx, store)
	}
	if me == nil {
		logger.Warn("API вернул пустой профиль, выходим из сессии")
		return nil, s.hardLogout(ctx, store)
	}

	if err := store.HydrateFromMe(ctx, me); err != nil {
		return nil, err
	}
	if err := s.permissions.Remember(ctx, store, perms); err != nil {
		logger.Error("Не удалось закешировать права", zap.Error(err))
	}

	snapshot := store.Snapshot()
	return &dto.AuthResponseDTO{
		Me:          snapshot.Me,
		Permissions: perms,
		Context:     snapshot.Context(),
	}, nil
}

func (s *AuthService) hardLogout(ctx context.Context, store *session.Store) error {
	if err := store.Logout(ctx); err != nil {
		s.logger.Error("Не удалось очистить сессию", zap.String("session", store.ID()), zap.Error(err))
	}
	return apperrors.ErrUnauthorized
}

func (s *AuthService) Refresh(ctx context.Context, store *session.Store) error {
	_, refresh, err := store.Bridge().Tokens(ctx)
	if err != nil {
		return err
	}
	if refresh == "" {
		s.logger.Debug("Refresh без refresh-токена", zap.String("session", store.ID()), zap.Error(apperrors.ErrNoRefreshToken))
		return apperrors.ErrUnauthorized
	}

	tokens, err := s.authAPI.Refresh(ctx, refresh)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			return s.hardLogout(ctx, store)
		}
		return err
	}
	if tokens == nil || tokens.AccessToken == "" {
		return s.hardLogout(ctx, store)
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refresh
	}
	return store.Bridge().SetTokens(ctx, tokens.AccessToken, tokens.RefreshToken)
}

// Logout - выход на удалённом API по возможности, локальная очистка всегда.
func (s *AuthService) Logout(ctx context.Context, store *session.Store) error {
	access, refresh, err := store.Bridge().Tokens(ctx)
	if err != nil {
		s.logger.Warn("Не удалось прочитать токены перед выходом", zap.Error(err))
	}
	if access != "" {
		if err := s.authAPI.Logout(ctx, access, refresh); err != nil {
			s.logger.Warn("Выход на удалённом API не удался", zap.String("session", store.ID()), zap.Error(err))
		}
	}
	return store.Logout(ctx)
}

func (s *AuthService) VerifyEmail(ctx context.Context, payload dto.VerifyEmailDTO) error {
	return s.authAPI.VerifyEmail(ctx, payload)
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, payload dto.PasswordResetRequestDTO) error {
	if err := s.authAPI.RequestPasswordReset(ctx, payload); err != nil {
		// Не сообщаем фронту, существует ли такой email.
		var be *apperrors.BackendError
		if errors.As(err, &be) && be.Status == http.StatusNotFound {
			return nil
		}
		return err
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, payload dto.PasswordResetDTO) error {
	return s.authAPI.ResetPassword(ctx, payload)
}
