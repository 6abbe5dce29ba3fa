package backend

import (
	"context"
	"net/http"

	"resto-dashboard/internal/dto"
)

type AuthAPIInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Logout(ctx context.Context, token, refreshToken string) error
	Me(ctx context.Context, token string) (*dto.MeDTO, error)
	Permissions(ctx context.Context, token string) (*dto.PermissionsDTO, error)
	VerifyEmail(ctx context.Context, payload dto.VerifyEmailDTO) error
	RequestPasswordReset(ctx context.Context, payload dto.PasswordResetRequestDTO) error
	ResetPassword(ctx context.Context, payload dto.PasswordResetDTO) error
}

type authAPI struct {
	c *Client
}

func NewAuthAPI(c *Client) AuthAPIInterface {
	return &authAPI{c: c}
}

func (a *authAPI) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	return call[*dto.TokenPairDTO](a.c, ctx, request{area: "auth", method: http.MethodPost, endpoint: "/auth/login", body: payload})
}

func (a *authAPI) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	return call[*dto.TokenPairDTO](a.c, ctx, request{
		area:     "auth",
		method:   http.MethodPost,
		endpoint: "/auth/refresh",
		body:     dto.RefreshDTO{RefreshToken: refreshToken},
	})
}

func (a *authAPI) Logout(ctx context.Context, token, refreshToken string) error {
	return exec(a.c, ctx, request{
		area:     "auth",
		method:   http.MethodPost,
		endpoint: "/auth/logout",
		auth:     Auth{Token: token},
		body:     dto.RefreshDTO{RefreshToken: refreshToken},
	})
}

func (a *authAPI) Me(ctx context.Context, token string) (*dto.MeDTO, error) {
	return call[*dto.MeDTO](a.c, ctx, request{area: "auth", method: http.MethodGet, endpoint: "/auth/me", auth: Auth{Token: token}})
}

func (a *authAPI) Permissions(ctx context.Context, token string) (*dto.PermissionsDTO, error) {
	return call[*dto.PermissionsDTO](a.c, ctx, request{area: "auth", method: http.MethodGet, endpoint: "/auth/me/permissions", auth: Auth{Token: token}})
}

func (a *authAPI) VerifyEmail(ctx context.Context, payload dto.VerifyEmailDTO) error {
	return exec(a.c, ctx, request{area: "auth", method: http.MethodPost, endpoint: "/auth/verify-email", body: payload})
}

func (a *authAPI) RequestPasswordReset(ctx context.Context, payload dto.PasswordResetRequestDTO) error {
	return exec(a.c, ctx, request{area: "auth", method: http.MethodPost, endpoint: "/auth/password/forgot", body: payload})
}

func (a *authAPI) ResetPassword(ctx context.Context, payload dto.PasswordResetDTO) error {
	return exec(a.c, ctx, request{area: "auth", method: http.MethodPost, endpoint: "/auth/password/reset", body: payload})
}
