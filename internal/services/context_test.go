package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/session"
	"resto-dashboard/internal/storage"
	apperrors "resto-dashboard/pkg/errors"
)

type fakeRestaurantAPI struct {
	backend.RestaurantAPIInterface
	restaurants []dto.RestaurantDTO
	outlets     map[string][]dto.OutletDTO
	calls       int
}

func (f *fakeRestaurantAPI) ListRestaurants(context.Context, string) ([]dto.RestaurantDTO, error) {
	f.calls++
	return f.restaurants, nil
}

func (f *fakeRestaurantAPI) GetRestaurant(_ context.Context, _ string, id string) (*dto.RestaurantDTO, error) {
	for _, r := range f.restaurants {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, &apperrors.BackendError{Status: 404, Message: "Not Found"}
}

func (f *fakeRestaurantAPI) ListOutlets(_ context.Context, _ string, restaurantID string) ([]dto.OutletDTO, error) {
	f.calls++
	return f.outlets[restaurantID], nil
}

type fakePermissions struct {
	perms map[string]bool
}

func (f *fakePermissions) Resolve(context.Context, *session.Store) (map[string]bool, error) {
	return f.perms, nil
}

func (f *fakePermissions) Remember(context.Context, *session.Store, *dto.PermissionsDTO) error {
	return nil
}

func signedInStore(t *testing.T, roles ...string) *session.Store {
	t.Helper()
	ctx := context.Background()
	store, err := session.NewManager(storage.NewMemory(), nil, zap.NewNop()).Open(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, store.Bridge().SetTokens(ctx, "token", "refresh"))
	require.NoError(t, store.HydrateFromMe(ctx, &dto.MeDTO{ID: "u1", Roles: roles}))
	return store
}

func newSwitcherAPI() *fakeRestaurantAPI {
	return &fakeRestaurantAPI{
		restaurants: []dto.RestaurantDTO{{ID: "R1", Name: "Первый"}, {ID: "R2", Name: "Второй"}},
		outlets: map[string][]dto.OutletDTO{
			"R1": {{ID: "O1", Name: "Север"}, {ID: "O2", Name: "Юг", IsDefault: true}},
			"R2": {{ID: "O3", Name: "Центр"}},
		},
	}
}

func TestOptionsAutoSelectsRestaurantAndDefaultOutlet(t *testing.T) {
	api := newSwitcherAPI()
	svc := NewContextService(api, &fakePermissions{}, zap.NewNop())
	store := signedInStore(t, dto.RoleOwner)

	out, err := svc.Options(context.Background(), store)
	require.NoError(t, err)

	assert.True(t, out.CanSwitch)
	assert.Len(t, out.Restaurants, 2)
	assert.Len(t, out.Outlets, 2)
	assert.Equal(t, "R1", *out.Current.RestaurantID)
	assert.Equal(t, "O2", *out.Current.OutletID)
	assert.Equal(t, "Юг", out.Current.OutletName)
}

func TestOptionsFallsBackToFirstOutlet(t *testing.T) {
	api := newSwitcherAPI()
	svc := NewContextService(api, &fakePermissions{}, zap.NewNop())
	store := signedInStore(t, dto.RoleRoot)
	require.NoError(t, store.SetRestaurant(context.Background(), "R2", "Второй"))

	out, err := svc.Options(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, "R2", *out.Current.RestaurantID)
	assert.Equal(t, "O3", *out.Current.OutletID)
}

func TestOptionsKeepsExistingSelection(t *testing.T) {
	api := newSwitcherAPI()
	svc := NewContextService(api, &fakePermissions{}, zap.NewNop())
	store := signedInStore(t, dto.RoleOwner)
	ctx := context.Background()
	require.NoError(t, store.SetRestaurant(ctx, "R1", "Первый"))
	require.NoError(t, store.SetOutlet(ctx, "O1", "Север"))

	out, err := svc.Options(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, "O1", *out.Current.OutletID)
}

func TestOptionsReadOnlyForStaff(t *testing.T) {
	api := newSwitcherAPI()
	svc := NewContextService(api, &fakePermissions{perms: map[string]bool{}}, zap.NewNop())
	store := signedInStore(t, dto.RoleStaff)

	out, err := svc.Options(context.Background(), store)
	require.NoError(t, err)
	assert.False(t, out.CanSwitch)
	assert.Empty(t, out.Restaurants)
	assert.Zero(t, api.calls)
	assert.Nil(t, out.Current.RestaurantID)
}

func TestSuperuserPermissionAllowsSwitch(t *testing.T) {
	api := newSwitcherAPI()
	svc := NewContextService(api, &fakePermissions{perms: map[string]bool{"superuser": true}}, zap.NewNop())
	store := signedInStore(t, dto.RoleStaff)

	out, err := svc.Options(context.Background(), store)
	require.NoError(t, err)
	assert.True(t, out.CanSwitch)
}

func TestSelectRestaurantResolvesNameAndClearsOutlet(t *testing.T) {
	api := newSwitcherAPI()
	svc := NewContextService(api, &fakePermissions{}, zap.NewNop())
	store := signedInStore(t, dto.RoleOwner)
	ctx := context.Background()
	require.NoError(t, store.SetRestaurant(ctx, "R1", "Первый"))
	require.NoError(t, store.SetOutlet(ctx, "O1", "Север"))

	current, err := svc.SelectRestaurant(ctx, store, dto.SelectRestaurantDTO{RestaurantID: "R2"})
	require.NoError(t, err)
	assert.Equal(t, "Второй", current.RestaurantName)
	assert.Nil(t, current.OutletID)
}

func TestSelectForbiddenForStaff(t *testing.T) {
	svc := NewContextService(newSwitcherAPI(), &fakePermissions{perms: map[string]bool{}}, zap.NewNop())
	store := signedInStore(t, dto.RoleStaff)

	_, err := svc.SelectRestaurant(context.Background(), store, dto.SelectRestaurantDTO{RestaurantID: "R1"})
	assert.True(t, apperrors.IsForbidden(err))
}

func TestSelectOutletMustBelongToRestaurant(t *testing.T) {
	svc := NewContextService(newSwitcherAPI(), &fakePermissions{}, zap.NewNop())
	store := signedInStore(t, dto.RoleOwner)
	ctx := context.Background()
	require.NoError(t, store.SetRestaurant(ctx, "R1", "Первый"))

	_, err := svc.SelectOutlet(ctx, store, dto.SelectOutletDTO{OutletID: "O3"})
	assert.Error(t, err)

	current, err := svc.SelectOutlet(ctx, store, dto.SelectOutletDTO{OutletID: "O1"})
	require.NoError(t, err)
	assert.Equal(t, "Север", current.OutletName)
}

func TestOutletScopedCallNeedsContext(t *testing.T) {
	svc := NewOrderService(nil, zap.NewNop())
	store := signedInStore(t, dto.RoleOwner)

	_, err := svc.List(context.Background(), store, dto.OrderFilterDTO{})
	assert.ErrorIs(t, err, apperrors.ErrNoActiveContext)
}
