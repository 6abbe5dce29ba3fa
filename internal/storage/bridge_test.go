package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(v string) *string { return &v }

func TestBridge_Tokens(t *testing.T) {
	ctx := context.Background()
	b := NewBridge(NewMemory(), "sess")

	require.NoError(t, b.SetTokens(ctx, "acc", "ref"))
	access, refresh, err := b.Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acc", access)
	assert.Equal(t, "ref", refresh)

	// Пустой refresh удаляет слот.
	require.NoError(t, b.SetTokens(ctx, "acc2", ""))
	access, refresh, err = b.Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acc2", access)
	assert.Empty(t, refresh)

	require.NoError(t, b.SavePermissions(ctx, []byte(`{"codes":["orders:view"]}`)))
	require.NoError(t, b.ClearTokens(ctx))
	access, _, err = b.Tokens(ctx)
	require.NoError(t, err)
	assert.Empty(t, access)
	perms, err := b.Permissions(ctx)
	require.NoError(t, err)
	assert.Nil(t, perms, "права удаляются вместе с токенами")
}

func TestBridge_RestaurantPair(t *testing.T) {
	ctx := context.Background()
	b := NewBridge(NewMemory(), "sess")

	id, name, err := b.Restaurant(ctx)
	require.NoError(t, err)
	assert.Nil(t, id)
	assert.Empty(t, name)

	require.NoError(t, b.SetRestaurant(ctx, strp("r1"), "Чайхана"))
	id, name, err = b.Restaurant(ctx)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "r1", *id)
	assert.Equal(t, "Чайхана", name)

	// Пустое имя удаляет только слот имени.
	require.NoError(t, b.SetRestaurant(ctx, strp("r2"), ""))
	id, name, err = b.Restaurant(ctx)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "r2", *id)
	assert.Empty(t, name)

	require.NoError(t, b.SetRestaurant(ctx, nil, "игнорируется"))
	id, _, err = b.Restaurant(ctx)
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestBridge_ClearContextKeepsTokensAndDevice(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	b := NewBridge(kv, "sess")

	require.NoError(t, b.SetTokens(ctx, "acc", "ref"))
	device, err := b.DeviceID(ctx)
	require.NoError(t, err)
	require.NoError(t, b.SetRestaurant(ctx, strp("r1"), "Чайхана"))
	require.NoError(t, b.SetOutlet(ctx, strp("o1"), "Центр"))
	require.NoError(t, b.SaveContext(ctx, []byte(`{"restaurant_id":"r1"}`)))

	require.NoError(t, b.ClearContext(ctx))
	require.NoError(t, b.ClearContext(ctx))

	for _, slot := range []string{SlotRestaurantID, SlotRestaurantName, SlotOutletID, SlotOutletName, SlotActiveContext} {
		_, err := kv.Get(ctx, "sess", slot)
		assert.ErrorIs(t, err, ErrNotFound, slot)
	}
	access, _, err := b.Tokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acc", access)

	again, err := b.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, device, again)
}

func TestBridge_DeviceIDIsPerSession(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	first, err := NewBridge(kv, "a").DeviceID(ctx)
	require.NoError(t, err)
	second, err := NewBridge(kv, "b").DeviceID(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

type brokenKV struct{ KeyValueStore }

var errBroken = errors.New("disk full")

func (brokenKV) Get(context.Context, string, string) (string, error) { return "", errBroken }
func (brokenKV) Set(context.Context, string, string, string) error  { return errBroken }

func TestBridge_SurfacesStorageErrors(t *testing.T) {
	ctx := context.Background()
	b := NewBridge(brokenKV{NewMemory()}, "sess")

	_, err := b.AccessToken(ctx)
	assert.ErrorIs(t, err, errBroken)
	_, err = b.DeviceID(ctx)
	assert.ErrorIs(t, err, errBroken)
	assert.ErrorIs(t, b.SetTokens(ctx, "acc", "ref"), errBroken)
}
