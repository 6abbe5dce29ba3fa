package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resto-dashboard/internal/dto"
)

func TestCanAny(t *testing.T) {
	g := NewGatekeeper()
	perms := Flatten(&dto.PermissionsDTO{
		Codes:    []string{OrdersView},
		Features: map[string]bool{"qr_payments": true, "payroll_beta": false},
	})
	staff := &dto.MeDTO{Roles: []string{dto.RoleStaff}}

	assert.True(t, g.CanAny(perms, staff, OrdersView))
	assert.True(t, g.CanAny(perms, staff, PayrollManage, OrdersView))
	assert.False(t, g.CanAny(perms, staff, PayrollManage))

	assert.True(t, g.CanAny(perms, staff, FeatureQRPay))
	assert.False(t, g.CanAny(perms, staff, FeaturePrefix+"payroll_beta"))

	assert.True(t, g.CanAny(map[string]bool{}, &dto.MeDTO{Roles: []string{dto.RoleRoot}}, PayrollManage))
	assert.True(t, g.CanAny(map[string]bool{Superuser: true}, staff, PayrollManage))
	assert.False(t, g.CanAny(nil, nil, OrdersView))
}
