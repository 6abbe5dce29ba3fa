package dto

import (
	"github.com/aarondl/null/v8"
)

// Роли пользователя в удалённом API.
const (
	RoleStaff = "staff"
	RoleOwner = "owner"
	RoleRoot  = "root"

	// PermissionSuperuser - обходит все проверки прав.
	PermissionSuperuser = "superuser"
)

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// MeDTO - снимок текущего пользователя ("who am I").
// У владельцев и root ресторан/точка не закреплены и приходят null.
type MeDTO struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	FullName       string      `json:"full_name"`
	TenantID       string      `json:"tenant_id"`
	RestaurantID   null.String `json:"restaurant_id"`
	RestaurantName null.String `json:"restaurant_name"`
	OutletID       null.String `json:"outlet_id"`
	OutletName     null.String `json:"outlet_name"`
	Roles          []string    `json:"roles"`
}

func (m *MeDTO) HasRole(roles ...string) bool {
	if m == nil {
		return false
	}
	for _, have := range m.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// PermissionsDTO - коды прав и фичефлаги текущего пользователя.
type PermissionsDTO struct {
	Codes    []string        `json:"codes"`
	Features map[string]bool `json:"features"`
}

type VerifyEmailDTO struct {
	Token string `json:"token" validate:"required"`
}

type PasswordResetRequestDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetDTO struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// AuthResponseDTO - ответ BFF после входа. Токены наружу не отдаются.
type AuthResponseDTO struct {
	Me          *MeDTO           `json:"me"`
	Permissions *PermissionsDTO  `json:"permissions,omitempty"`
	Context     ActiveContextDTO `json:"context"`
}
