package eventbus

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event представляет собой любое событие в системе.
type Event interface {
	Name() string
}

// Listener - это обработчик (слушатель) событий.
type Listener func(ctx context.Context, event Event) error

type subscription struct {
	id       uint64
	name     string
	listener Listener
}

// Bus - шина событий. Подписчики именованы, чтобы их можно было перечислить.
type Bus struct {
	listeners map[string][]subscription
	nextID    uint64
	mu        sync.RWMutex
	logger    *zap.Logger
	timeout   time.Duration
	wg        sync.WaitGroup
}

// New создает новую шину событий.
func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]subscription),
		logger:    logger,
		timeout:   time.Minute,
	}
}

// Subscribe подписывает слушателя на событие. Возвращает функцию отписки.
func (b *Bus) Subscribe(eventName, listenerName string, listener Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.listeners[eventName] = append(b.listeners[eventName], subscription{id: id, name: listenerName, listener: listener})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.listeners[eventName]
		for i, s := range subs {
			if s.id == id {
				b.listeners[eventName] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(b.listeners[eventName]) == 0 {
			delete(b.listeners, eventName)
		}
	}
}

// Listeners возвращает имена подписчиков события.
func (b *Bus) Listeners(eventName string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.listeners[eventName]))
	for _, s := range b.listeners[eventName] {
		names = append(names, s.name)
	}
	sort.Strings(names)
	return names
}

// Publish публикует событие. Каждый подписчик вызывается в своей горутине.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	for _, sub := range b.listeners[eventName] {
		b.wg.Add(1)
		go func(s subscription) {
			defer b.wg.Done()
			ctxWithTimeout, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
			defer cancel()

			if err := s.listener(ctxWithTimeout, event); err != nil {
				b.logger.Error("Ошибка в обработчике события",
					zap.String("event", eventName),
					zap.String("listener", s.name),
					zap.Error(err),
				)
			}
		}(sub)
	}
}

// Wait ждёт завершения всех запущенных обработчиков. Используется при остановке и в тестах.
func (b *Bus) Wait() {
	b.wg.Wait()
}
