package listeners

import (
	"context"

	"go.uber.org/zap"

	"resto-dashboard/internal/session"
	"resto-dashboard/pkg/eventbus"
	"resto-dashboard/pkg/metrics"
)

const contextListenerName = "context-audit"

// ContextListener пишет аудит смены ресторана/точки и считает изменения по причинам.
type ContextListener struct {
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewContextListener(m *metrics.Metrics, logger *zap.Logger) *ContextListener {
	return &ContextListener{metrics: m, logger: logger}
}

// Register подписывает слушателя. Возвращает функцию отписки.
func (l *ContextListener) Register(bus *eventbus.Bus) func() {
	unsubscribe := bus.Subscribe(session.EventContextChanged, contextListenerName, l.handleContextChanged)
	l.logger.Info("ContextListener подписан на событие", zap.String("event", session.EventContextChanged))
	return unsubscribe
}

func (l *ContextListener) handleContextChanged(_ context.Context, event eventbus.Event) error {
	e, ok := event.(session.ContextChangedEvent)
	if !ok {
		return nil
	}
	l.metrics.ContextChanged(e.Reason)

	fields := []zap.Field{
		zap.String("session", e.SessionID),
		zap.String("reason", e.Reason),
		zap.Stringp("restaurant_id", e.State.RestaurantID),
		zap.Stringp("outlet_id", e.State.OutletID),
	}
	if e.State.Me != nil {
		fields = append(fields, zap.String("user_id", e.State.Me.ID))
	}
	if e.Reason == session.ReasonClear {
		l.logger.Info("Контекст сессии сброшен", fields...)
		return nil
	}
	l.logger.Info("Контекст сессии изменён", fields...)
	return nil
}
