package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pingEvent struct{}

func (pingEvent) Name() string { return "ping" }

func TestPublishReachesEveryListener(t *testing.T) {
	bus := New(zap.NewNop())
	var calls int32
	listener := func(context.Context, Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}
	bus.Subscribe("ping", "b", listener)
	bus.Subscribe("ping", "a", listener)
	bus.Subscribe("pong", "c", listener)

	bus.Publish(context.Background(), pingEvent{})
	bus.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"a", "b"}, bus.Listeners("ping"))
}

func TestUnsubscribe(t *testing.T) {
	bus := New(zap.NewNop())
	var calls int32
	unsubscribe := bus.Subscribe("ping", "once", func(context.Context, Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	bus.Publish(context.Background(), pingEvent{})
	bus.Wait()
	unsubscribe()
	bus.Publish(context.Background(), pingEvent{})
	bus.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Empty(t, bus.Listeners("ping"))
}

func TestListenerErrorDoesNotStopOthers(t *testing.T) {
	bus := New(zap.NewNop())
	var ok int32
	bus.Subscribe("ping", "failing", func(context.Context, Event) error { return errors.New("boom") })
	bus.Subscribe("ping", "working", func(context.Context, Event) error {
		atomic.AddInt32(&ok, 1)
		return nil
	})

	bus.Publish(context.Background(), pingEvent{})
	bus.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&ok))
}

func TestListenerOutlivesCancelledRequest(t *testing.T) {
	bus := New(zap.NewNop())
	var ctxErr error
	bus.Subscribe("ping", "late", func(ctx context.Context, _ Event) error {
		ctxErr = ctx.Err()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, pingEvent{})
	bus.Wait()

	assert.NoError(t, ctxErr)
}
