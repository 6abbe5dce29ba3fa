package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/events"
	"resto-dashboard/pkg/eventbus"
	"resto-dashboard/pkg/metrics"
	"resto-dashboard/pkg/websocket"
)

// Pusher - куда уходят обновления заказа. Реализуется websocket.Hub.
type Pusher interface {
	Topics() []websocket.Topic
	SendToTopic(topicKey string, payload interface{}, messageType string) (int, error)
}

// OrderWatcher опрашивает публичные заказы, на которые кто-то подписан, и рассылает изменения.
// Это лучшая попытка: ошибки опроса пишутся в лог и пропускаются.
type OrderWatcher struct {
	api      backend.PublicAPIInterface
	pusher   Pusher
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger

	mu   sync.Mutex
	last map[string][32]byte
}

func NewOrderWatcher(api backend.PublicAPIInterface, pusher Pusher, interval time.Duration, m *metrics.Metrics, logger *zap.Logger) *OrderWatcher {
	return &OrderWatcher{
		api:      api,
		pusher:   pusher,
		interval: interval,
		metrics:  m,
		logger:   logger,
		last:     make(map[string][32]byte),
	}
}

func (w *OrderWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.logger.Info("Опрос публичных заказов запущен", zap.Duration("interval", w.interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Poll - один проход по всем отслеживаемым заказам.
func (w *OrderWatcher) Poll(ctx context.Context) {
	topics := w.pusher.Topics()
	w.forget(topics)
	for _, topic := range topics {
		order, err := w.api.GetOrder(ctx, topic.DeviceID, topic.QRSessionID, topic.OrderID)
		if err != nil {
			w.logger.Debug("Опрос заказа не удался", zap.String("topic", topic.Key()), zap.Error(err))
			continue
		}
		w.push(topic.Key(), order)
	}
}

// OnOrderUpdated - подписчик события order.updated: рассылка сразу после локального изменения.
func (w *OrderWatcher) OnOrderUpdated(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderUpdatedEvent)
	if !ok || e.Order == nil {
		return nil
	}
	topic := websocket.Topic{QRSessionID: e.QRSessionID, OrderID: e.Order.ID}
	w.push(topic.Key(), e.Order)
	return nil
}

// push отправляет заказ, только если он изменился с прошлой отправки.
func (w *OrderWatcher) push(key string, order *dto.OrderDTO) {
	raw, err := json.Marshal(order)
	if err != nil {
		w.logger.Error("Не удалось сериализовать заказ", zap.String("topic", key), zap.Error(err))
		return
	}
	sum := sha256.Sum256(raw)

	w.mu.Lock()
	if prev, ok := w.last[key]; ok && prev == sum {
		w.mu.Unlock()
		return
	}
	w.last[key] = sum
	w.mu.Unlock()

	sent, err := w.pusher.SendToTopic(key, order, websocket.TypeOrderUpdated)
	if err != nil {
		w.logger.Warn("Не удалось разослать заказ", zap.String("topic", key), zap.Error(err))
		return
	}
	if sent > 0 {
		w.metrics.PublicPush()
	}
}

// forget удаляет отпечатки заказов, у которых не осталось подписчиков.
func (w *OrderWatcher) forget(active []websocket.Topic) {
	keep := make(map[string]struct{}, len(active))
	for _, t := range active {
		keep[t.Key()] = struct{}{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for key := range w.last {
		if _, ok := keep[key]; !ok {
			delete(w.last, key)
		}
	}
}
