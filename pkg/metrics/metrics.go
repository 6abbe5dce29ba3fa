// Package metrics - счётчики Prometheus для BFF.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	contextChanges  *prometheus.CounterVec
	publicPushes    prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resto",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Запросы к удалённому API по области и статусу.",
		}, []string{"area", "method", "status"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "resto",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Длительность запросов к удалённому API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"area"}),
		contextChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resto",
			Subsystem: "context",
			Name:      "changes_total",
			Help:      "Изменения активного контекста по причине.",
		}, []string{"reason"}),
		publicPushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resto",
			Subsystem: "public",
			Name:      "order_pushes_total",
			Help:      "Отправки обновлённого заказа гостям по WebSocket.",
		}),
	}
	reg.MustRegister(m.backendRequests, m.backendDuration, m.contextChanges, m.publicPushes)
	return m
}

// ObserveBackend; status 0 - ошибка транспорта.
func (m *Metrics) ObserveBackend(area, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(area, method, strconv.Itoa(status)).Inc()
	m.backendDuration.WithLabelValues(area).Observe(elapsed.Seconds())
}

func (m *Metrics) ContextChanged(reason string) {
	if m == nil {
		return
	}
	m.contextChanges.WithLabelValues(reason).Inc()
}

func (m *Metrics) PublicPush() {
	if m == nil {
		return
	}
	m.publicPushes.Inc()
}

func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Gatherer - для тестов.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }
