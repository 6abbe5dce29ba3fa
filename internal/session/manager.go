package session

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resto-dashboard/internal/storage"
)

// Manager открывает хранилища контекста по идентификатору сессии.
type Manager struct {
	kv     storage.KeyValueStore
	bus    Publisher
	logger *zap.Logger
}

func NewManager(kv storage.KeyValueStore, bus Publisher, logger *zap.Logger) *Manager {
	return &Manager{kv: kv, bus: bus, logger: logger.Named("session")}
}

// NewID - идентификатор новой сессии браузера.
func (m *Manager) NewID() string {
	return uuid.New().String()
}

// Open поднимает состояние сессии из хранилища. Для новой сессии оно пустое.
func (m *Manager) Open(ctx context.Context, sessionID string) (*Store, error) {
	s := newStore(sessionID, storage.NewBridge(m.kv, sessionID), m.bus, m.logger)
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
