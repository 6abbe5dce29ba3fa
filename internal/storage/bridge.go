package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Плоские слоты. Старые страницы читают их напрямую, поэтому имена менять нельзя.
const (
	SlotAccessToken    = "access_token"
	SlotRefreshToken   = "refresh_token"
	SlotRestaurantID   = "restaurant_id"
	SlotRestaurantName = "restaurant_name"
	SlotOutletID       = "outlet_id"
	SlotOutletName     = "outlet_name"
	SlotActiveContext  = "active_context"
	SlotDeviceID       = "device_id"
	SlotPermissions    = "permissions"
)

// Bridge - мост между сессией и хранилищем: именованные слоты одной сессии.
type Bridge struct {
	kv        KeyValueStore
	namespace string
}

func NewBridge(kv KeyValueStore, namespace string) *Bridge {
	return &Bridge{kv: kv, namespace: namespace}
}

func (b *Bridge) Namespace() string { return b.namespace }

// get возвращает "" без ошибки, если слота нет.
func (b *Bridge) get(ctx context.Context, slot string) (string, error) {
	value, err := b.kv.Get(ctx, b.namespace, slot)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return value, err
}

// setOrDel пишет значение, а пустую строку превращает в удаление слота.
func (b *Bridge) setOrDel(ctx context.Context, slot, value string) error {
	if value == "" {
		return b.kv.Del(ctx, b.namespace, slot)
	}
	return b.kv.Set(ctx, b.namespace, slot, value)
}

func (b *Bridge) SetTokens(ctx context.Context, access, refresh string) error {
	if err := b.setOrDel(ctx, SlotAccessToken, access); err != nil {
		return fmt.Errorf("сохранение access-токена: %w", err)
	}
	if err := b.setOrDel(ctx, SlotRefreshToken, refresh); err != nil {
		return fmt.Errorf("сохранение refresh-токена: %w", err)
	}
	return nil
}

// ClearTokens удаляет токены и закешированные права: без токена они не действительны.
func (b *Bridge) ClearTokens(ctx context.Context) error {
	return b.kv.Del(ctx, b.namespace, SlotAccessToken, SlotRefreshToken, SlotPermissions)
}

func (b *Bridge) Tokens(ctx context.Context) (access, refresh string, err error) {
	if access, err = b.get(ctx, SlotAccessToken); err != nil {
		return "", "", err
	}
	if refresh, err = b.get(ctx, SlotRefreshToken); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (b *Bridge) AccessToken(ctx context.Context) (string, error) {
	return b.get(ctx, SlotAccessToken)
}

// SetRestaurant: nil id удаляет пару id/name целиком.
func (b *Bridge) SetRestaurant(ctx context.Context, id *string, name string) error {
	return b.setPair(ctx, SlotRestaurantID, SlotRestaurantName, id, name)
}

func (b *Bridge) Restaurant(ctx context.Context) (*string, string, error) {
	return b.getPair(ctx, SlotRestaurantID, SlotRestaurantName)
}

// SetOutlet - то же самое для точки.
func (b *Bridge) SetOutlet(ctx context.Context, id *string, name string) error {
	return b.setPair(ctx, SlotOutletID, SlotOutletName, id, name)
}

func (b *Bridge) Outlet(ctx context.Context) (*string, string, error) {
	return b.getPair(ctx, SlotOutletID, SlotOutletName)
}

func (b *Bridge) setPair(ctx context.Context, idSlot, nameSlot string, id *string, name string) error {
	if id == nil || *id == "" {
		return b.kv.Del(ctx, b.namespace, idSlot, nameSlot)
	}
	if err := b.kv.Set(ctx, b.namespace, idSlot, *id); err != nil {
		return err
	}
	return b.setOrDel(ctx, nameSlot, name)
}

func (b *Bridge) getPair(ctx context.Context, idSlot, nameSlot string) (*string, string, error) {
	id, err := b.get(ctx, idSlot)
	if err != nil {
		return nil, "", err
	}
	if id == "" {
		return nil, "", nil
	}
	name, err := b.get(ctx, nameSlot)
	if err != nil {
		return nil, "", err
	}
	return &id, name, nil
}

// ClearContext удаляет четыре слота контекста и JSON-снимок.
func (b *Bridge) ClearContext(ctx context.Context) error {
	return b.kv.Del(ctx, b.namespace,
		SlotRestaurantID, SlotRestaurantName, SlotOutletID, SlotOutletName, SlotActiveContext)
}

// LoadContext возвращает JSON-снимок структурированного хранилища или nil.
func (b *Bridge) LoadContext(ctx context.Context) ([]byte, error) {
	raw, err := b.get(ctx, SlotActiveContext)
	if err != nil || raw == "" {
		return nil, err
	}
	return []byte(raw), nil
}

func (b *Bridge) SaveContext(ctx context.Context, blob []byte) error {
	return b.setOrDel(ctx, SlotActiveContext, string(blob))
}

// Permissions - JSON прав, полученный при последнем входе, или nil.
func (b *Bridge) Permissions(ctx context.Context) ([]byte, error) {
	raw, err := b.get(ctx, SlotPermissions)
	if err != nil || raw == "" {
		return nil, err
	}
	return []byte(raw), nil
}

func (b *Bridge) SavePermissions(ctx context.Context, blob []byte) error {
	return b.setOrDel(ctx, SlotPermissions, string(blob))
}

// DeviceID - отпечаток устройства для публичных заказов. Создаётся один раз.
func (b *Bridge) DeviceID(ctx context.Context) (string, error) {
	id, err := b.get(ctx, SlotDeviceID)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	id = uuid.New().String()
	if err := b.kv.Set(ctx, b.namespace, SlotDeviceID, id); err != nil {
		return "", fmt.Errorf("сохранение device_id: %w", err)
	}
	return id, nil
}
