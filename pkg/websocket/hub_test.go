package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return hub, cancel
}

func newTestClient(hub *Hub, order string) *Client {
	return NewClient(hub, nil, Topic{QRSessionID: "qr-1", OrderID: order, DeviceID: "dev-1"})
}

func subscribe(t *testing.T, hub *Hub, c *Client) {
	t.Helper()
	require.True(t, hub.Register(c))
	require.Eventually(t, func() bool { return len(hub.Topics()) > 0 }, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case msg := <-c.Send:
		var env Envelope
		require.NoError(t, json.Unmarshal(msg, &env))
		return env
	case <-time.After(time.Second):
		t.Fatal("сообщение не пришло")
		return Envelope{}
	}
}

func TestLateSubscriberGetsLastMessage(t *testing.T) {
	hub, _ := startHub(t)

	first := newTestClient(hub, "o1")
	subscribe(t, hub, first)
	sent, err := hub.SendToTopic("qr-1:o1", map[string]string{"status": "submitted"}, TypeOrderUpdated)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, TypeOrderUpdated, receive(t, first).Type)

	late := newTestClient(hub, "o1")
	require.True(t, hub.Register(late))
	env := receive(t, late)
	assert.Equal(t, TypeOrderUpdated, env.Type)
	assert.Equal(t, map[string]interface{}{"status": "submitted"}, env.Payload)
}

func TestLastMessageDroppedWithTopic(t *testing.T) {
	hub, _ := startHub(t)

	c := newTestClient(hub, "o1")
	subscribe(t, hub, c)
	_, err := hub.SendToTopic("qr-1:o1", "v1", TypeOrderUpdated)
	require.NoError(t, err)
	receive(t, c)

	hub.leave(c)
	require.Eventually(t, func() bool { return len(hub.Topics()) == 0 }, time.Second, 10*time.Millisecond)

	again := newTestClient(hub, "o1")
	require.True(t, hub.Register(again))
	select {
	case <-again.Send:
		t.Fatal("старое сообщение не должно уходить новой подписке")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStoppedHubDoesNotBlock(t *testing.T) {
	hub, cancel := startHub(t)

	c := newTestClient(hub, "o1")
	subscribe(t, hub, c)
	cancel()

	// Очередь клиента закрывается при остановке.
	select {
	case _, open := <-c.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("очередь клиента не закрыта")
	}

	done := make(chan struct{})
	go func() {
		assert.False(t, hub.Register(newTestClient(hub, "o2")))
		hub.leave(c)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Register/leave заблокировались после остановки хаба")
	}
	assert.Empty(t, hub.Topics())
}
