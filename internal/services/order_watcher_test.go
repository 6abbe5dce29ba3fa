package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/events"
	"resto-dashboard/pkg/websocket"
)

type fakePublicAPI struct {
	backend.PublicAPIInterface
	mu     sync.Mutex
	orders map[string]*dto.OrderDTO
	err    error
}

func (f *fakePublicAPI) GetOrder(_ context.Context, _, _, orderID string) (*dto.OrderDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	o := *f.orders[orderID]
	return &o, nil
}

func (f *fakePublicAPI) setStatus(orderID, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[orderID].Status = status
}

type fakePusher struct {
	topics []websocket.Topic
	sent   map[string][]string
}

func (p *fakePusher) Topics() []websocket.Topic { return p.topics }

func (p *fakePusher) SendToTopic(key string, payload interface{}, _ string) (int, error) {
	if p.sent == nil {
		p.sent = make(map[string][]string)
	}
	p.sent[key] = append(p.sent[key], payload.(*dto.OrderDTO).Status)
	return 1, nil
}

func newWatcherFixture() (*OrderWatcher, *fakePublicAPI, *fakePusher) {
	api := &fakePublicAPI{orders: map[string]*dto.OrderDTO{"o1": {ID: "o1", Status: "draft"}}}
	pusher := &fakePusher{topics: []websocket.Topic{{QRSessionID: "q1", OrderID: "o1", DeviceID: "d1"}}}
	return NewOrderWatcher(api, pusher, 0, nil, zap.NewNop()), api, pusher
}

func TestWatcherPushesOnlyOnChange(t *testing.T) {
	w, api, pusher := newWatcherFixture()
	ctx := context.Background()

	w.Poll(ctx)
	w.Poll(ctx)
	api.setStatus("o1", "cooking")
	w.Poll(ctx)

	assert.Equal(t, []string{"draft", "cooking"}, pusher.sent["q1:o1"])
}

func TestWatcherSkipsPollErrors(t *testing.T) {
	w, api, pusher := newWatcherFixture()
	api.err = errors.New("timeout")

	w.Poll(context.Background())
	assert.Empty(t, pusher.sent)
}

func TestWatcherPushesImmediatelyOnEvent(t *testing.T) {
	w, _, pusher := newWatcherFixture()

	err := w.OnOrderUpdated(context.Background(), events.OrderUpdatedEvent{
		QRSessionID: "q1",
		Order:       &dto.OrderDTO{ID: "o1", Status: "submitted"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"submitted"}, pusher.sent["q1:o1"])

	// Опрос вернул другое состояние, оно тоже уходит подписчикам.
	w.Poll(context.Background())
	assert.Equal(t, []string{"submitted", "draft"}, pusher.sent["q1:o1"])
}

func TestWatcherEventThenSamePollIsDeduplicated(t *testing.T) {
	w, _, pusher := newWatcherFixture()

	_ = w.OnOrderUpdated(context.Background(), events.OrderUpdatedEvent{
		QRSessionID: "q1",
		Order:       &dto.OrderDTO{ID: "o1", Status: "draft"},
	})
	w.Poll(context.Background())

	assert.Equal(t, []string{"draft"}, pusher.sent["q1:o1"])
}
