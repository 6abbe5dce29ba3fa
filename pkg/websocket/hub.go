package websocket

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Topic - публичный заказ, за которым следят соединения.
// DeviceID нужен, чтобы опрашивать заказ от имени того же устройства.
type Topic struct {
	QRSessionID string
	OrderID     string
	DeviceID    string
}

func (t Topic) Key() string {
	return t.QRSessionID + ":" + t.OrderID
}

// Hub управляет всеми клиентами и рассылкой сообщений по темам.
// Последнее сообщение темы хранится, пока у неё есть подписчики, и сразу уходит новому клиенту.
type Hub struct {
	topics     map[string][]*Client
	last       map[string][]byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		topics:     make(map[string][]*Client),
		last:       make(map[string][]byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Register подписывает клиента. false - хаб уже остановлен, соединение нужно закрыть.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer h.stop()
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// stop закрывает очереди всех клиентов: WritePump каждого закроет соединение.
func (h *Hub) stop() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, clients := range h.topics {
		for _, c := range clients {
			close(c.Send)
		}
		delete(h.topics, key)
	}
	h.last = make(map[string][]byte)
	h.logger.Info("WebSocket: хаб остановлен")
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := client.Topic.Key()
	h.topics[key] = append(h.topics[key], client)
	if msg, ok := h.last[key]; ok {
		select {
		case client.Send <- msg:
		default:
		}
	}
	h.logger.Debug("WebSocket: клиент подписан", zap.String("topic", key))
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := client.Topic.Key()
	clients := h.topics[key]
	for i, c := range clients {
		if c == client {
			close(client.Send)
			h.topics[key] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.topics[key]) == 0 {
		delete(h.topics, key)
		delete(h.last, key)
	}
	h.logger.Debug("WebSocket: клиент отсоединен", zap.String("topic", key))
}

// Topics - темы, у которых есть хотя бы один подписчик.
func (h *Hub) Topics() []Topic {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Topic, 0, len(h.topics))
	for _, clients := range h.topics {
		if len(clients) > 0 {
			out = append(out, clients[0].Topic)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// SendToTopic отправляет сообщение всем подписчикам темы. Возвращает число получателей.
// Медленный клиент, у которого забит буфер, пропускает сообщение.
func (h *Hub) SendToTopic(topicKey string, payload interface{}, messageType string) (int, error) {
	envelope := Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	messageBytes, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("Ошибка сериализации сообщения для WebSocket", zap.Error(err))
		return 0, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.topics[topicKey]
	if len(clients) > 0 {
		h.last[topicKey] = messageBytes
	}
	sent := 0
	for _, client := range clients {
		select {
		case client.Send <- messageBytes:
			sent++
		default:
			h.logger.Warn("WebSocket: буфер клиента переполнен, сообщение пропущено", zap.String("topic", topicKey))
		}
	}
	return sent, nil
}
