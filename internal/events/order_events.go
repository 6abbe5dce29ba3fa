package events

import (
	"resto-dashboard/internal/dto"
)

const OrderUpdated = "order.updated"

// OrderUpdatedEvent - публичный заказ изменён из этого же BFF (правка черновика или отправка на кухню).
type OrderUpdatedEvent struct {
	QRSessionID string
	DeviceID    string
	Order       *dto.OrderDTO
}

// Name - реализуем интерфейс eventbus.Event
func (e OrderUpdatedEvent) Name() string {
	return OrderUpdated
}
