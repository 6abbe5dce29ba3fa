package dto

import "time"

// Действия жизненного цикла заказа.
const (
	OrderActionSubmit   = "submit"
	OrderActionFire     = "fire"
	OrderActionVoid     = "void"
	OrderActionReopen   = "reopen"
	OrderActionClose    = "close"
	OrderActionFinalize = "finalize"
)

type OrderItemDTO struct {
	ID         string  `json:"id"`
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Notes      string  `json:"notes,omitempty"`
	Status     string  `json:"status,omitempty"`
}

type OrderDTO struct {
	ID        string         `json:"id"`
	Number    string         `json:"number"`
	OutletID  string         `json:"outlet_id"`
	TableID   string         `json:"table_id,omitempty"`
	TableName string         `json:"table_name,omitempty"`
	Status    string         `json:"status"`
	Items     []OrderItemDTO `json:"items"`
	Subtotal  float64        `json:"subtotal"`
	Total     float64        `json:"total"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ListDTO - постраничный список удалённого API.
type ListDTO[T any] struct {
	Items []T    `json:"items"`
	Total uint64 `json:"total"`
}

type OrderFilterDTO struct {
	Status string `query:"status" validate:"omitempty,max=32"`
	Page   int    `query:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
}

type OrderActionDTO struct {
	Action string `json:"action" validate:"required,oneof=submit fire void reopen close finalize"`
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

type AddOrderItemDTO struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
	Notes      string `json:"notes" validate:"omitempty,max=255"`
}

type UpdateOrderItemDTO struct {
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Notes    string `json:"notes" validate:"omitempty,max=255"`
}
