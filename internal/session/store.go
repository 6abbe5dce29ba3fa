// Package session - активный контекст (ресторан/точка) одной сессии браузера.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/storage"
	"resto-dashboard/pkg/eventbus"
)

// Publisher - куда уходит уведомление об изменении контекста.
type Publisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

// Store - единственный источник правды о пользователе и выбранном ресторане/точке.
// Каждая мутация пишет и JSON-снимок, и плоские слоты моста, затем публикует событие.
type Store struct {
	mu     sync.RWMutex
	id     string
	bridge *storage.Bridge
	bus    Publisher
	logger *zap.Logger
	state  State
}

func newStore(id string, bridge *storage.Bridge, bus Publisher, logger *zap.Logger) *Store {
	return &Store{
		id:     id,
		bridge: bridge,
		bus:    bus,
		logger: logger.With(zap.String("session", id)),
	}
}

func (s *Store) ID() string { return s.id }

// Bridge отдаёт плоский мост. Нужен для device_id публичных заказов.
func (s *Store) Bridge() *storage.Bridge { return s.bridge }

// Snapshot - копия текущего состояния.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) Me() *dto.MeDTO {
	return s.Snapshot().Me
}

// CanSwitch - менять контекст могут только owner и root.
func (s *Store) CanSwitch() bool {
	return s.Me().HasRole(dto.RoleOwner, dto.RoleRoot)
}

// AccessToken - единая точка чтения состояния авторизации для гардов и сервисов.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	return s.bridge.AccessToken(ctx)
}

func (s *Store) IsAuthenticated(ctx context.Context) bool {
	token, err := s.AccessToken(ctx)
	if err != nil {
		s.logger.Error("Не удалось прочитать access-токен из хранилища", zap.Error(err))
		return false
	}
	return token != ""
}

// load поднимает состояние из JSON-снимка, а если его нет - из плоских слотов.
func (s *Store) load(ctx context.Context) error {
	blob, err := s.bridge.LoadContext(ctx)
	if err != nil {
		return fmt.Errorf("чтение снимка контекста: %w", err)
	}

	var st State
	if blob != nil {
		if err := json.Unmarshal(blob, &st); err == nil {
			s.state = st
			return nil
		}
		s.logger.Warn("Повреждённый снимок контекста, восстанавливаем из плоских слотов")
	}

	restaurantID, restaurantName, err := s.bridge.Restaurant(ctx)
	if err != nil {
		return fmt.Errorf("чтение ресторана: %w", err)
	}
	outletID, outletName, err := s.bridge.Outlet(ctx)
	if err != nil {
		return fmt.Errorf("чтение точки: %w", err)
	}
	s.state = State{
		RestaurantID:   restaurantID,
		RestaurantName: restaurantName,
		OutletID:       outletID,
		OutletName:     outletName,
	}
	return nil
}

// persist пишет состояние в оба представления: плоские слоты и JSON-снимок.
func (s *Store) persist(ctx context.Context, st State) error {
	if st.IsEmpty() {
		return s.bridge.ClearContext(ctx)
	}
	if err := s.bridge.SetRestaurant(ctx, st.RestaurantID, st.RestaurantName); err != nil {
		return fmt.Errorf("запись ресторана: %w", err)
	}
	if err := s.bridge.SetOutlet(ctx, st.OutletID, st.OutletName); err != nil {
		return fmt.Errorf("запись точки: %w", err)
	}
	blob, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("сериализация контекста: %w", err)
	}
	if err := s.bridge.SaveContext(ctx, blob); err != nil {
		return fmt.Errorf("запись снимка контекста: %w", err)
	}
	return nil
}

// mutate применяет изменение, сохраняет и публикует событие.
// При ошибке записи состояние в памяти не меняется, а уже записанные слоты
// откатываются к прежнему состоянию.
func (s *Store) mutate(ctx context.Context, reason string, change func(st *State)) error {
	s.mu.Lock()
	next := s.state.clone()
	change(&next)
	if err := s.persist(ctx, next); err != nil {
		if rbErr := s.persist(ctx, s.state); rbErr != nil {
			s.logger.Error("Не удалось откатить активный контекст", zap.String("reason", reason), zap.Error(rbErr))
		}
		s.mu.Unlock()
		s.logger.Error("Не удалось сохранить активный контекст", zap.String("reason", reason), zap.Error(err))
		return err
	}
	s.state = next
	snapshot := next.clone()
	s.mu.Unlock()

	s.logger.Debug("Активный контекст изменён",
		zap.String("reason", reason),
		zap.Stringp("restaurant_id", snapshot.RestaurantID),
		zap.Stringp("outlet_id", snapshot.OutletID),
	)
	if s.bus != nil {
		s.bus.Publish(ctx, ContextChangedEvent{SessionID: s.id, Reason: reason, State: snapshot})
	}
	return nil
}

// SetRestaurant меняет ресторан и всегда сбрасывает точку:
// точка принадлежит ровно одному ресторану.
func (s *Store) SetRestaurant(ctx context.Context, restaurantID, restaurantName string) error {
	return s.mutate(ctx, ReasonRestaurant, func(st *State) {
		st.RestaurantID = strPtr(restaurantID)
		st.RestaurantName = restaurantName
		if st.RestaurantID == nil {
			st.RestaurantName = ""
		}
		st.OutletID = nil
		st.OutletName = ""
	})
}

// SetOutlet меняет только точку.
func (s *Store) SetOutlet(ctx context.Context, outletID, outletName string) error {
	return s.mutate(ctx, ReasonOutlet, func(st *State) {
		st.OutletID = strPtr(outletID)
		st.OutletName = outletName
		if st.OutletID == nil {
			st.OutletName = ""
		}
	})
}

// HydrateFromMe вливает профиль с сервера.
// Ненулевые ресторан/точка с сервера перезаписывают выбор, null - оставляет выбор пользователя.
// Если сервер сменил ресторан, а точку не прислал, старая точка сбрасывается.
func (s *Store) HydrateFromMe(ctx context.Context, me *dto.MeDTO) error {
	if me == nil {
		return fmt.Errorf("пустой профиль пользователя")
	}
	return s.mutate(ctx, ReasonHydrate, func(st *State) {
		copied := *me
		copied.Roles = append([]string(nil), me.Roles...)
		st.Me = &copied

		restaurantChanged := false
		if me.RestaurantID.Valid && me.RestaurantID.String != "" {
			serverID := me.RestaurantID.String
			restaurantChanged = !sameID(st.RestaurantID, &serverID)
			if restaurantChanged || me.RestaurantName.String != "" {
				st.RestaurantName = me.RestaurantName.String
			}
			st.RestaurantID = &serverID
		}

		if me.OutletID.Valid && me.OutletID.String != "" {
			serverID := me.OutletID.String
			if !sameID(st.OutletID, &serverID) || me.OutletName.String != "" {
				st.OutletName = me.OutletName.String
			}
			st.OutletID = &serverID
		} else if restaurantChanged {
			st.OutletID = nil
			st.OutletName = ""
		}
	})
}

// ClearContext сбрасывает всё, включая профиль. Повторный вызов даёт то же пустое состояние.
func (s *Store) ClearContext(ctx context.Context) error {
	return s.mutate(ctx, ReasonClear, func(st *State) {
		*st = State{}
	})
}

// Logout - токены и контекст удаляются целиком.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.bridge.ClearTokens(ctx); err != nil {
		return fmt.Errorf("удаление токенов: %w", err)
	}
	return s.ClearContext(ctx)
}
