package dto

import "time"

type ResolveQRDTO struct {
	Code   string `json:"code" validate:"required"`
	Static bool   `json:"static"`
}

// QRSessionDTO - анонимная сессия заказа за столом.
type QRSessionDTO struct {
	SessionID      string    `json:"session_id"`
	TableID        string    `json:"table_id"`
	TableName      string    `json:"table_name"`
	OutletID       string    `json:"outlet_id"`
	RestaurantName string    `json:"restaurant_name"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type PublicItemChangeDTO struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"min=0"`
	Notes      string `json:"notes" validate:"omitempty,max=255"`
}

type UpdateDraftDTO struct {
	Items []PublicItemChangeDTO `json:"items" validate:"required,min=1,dive"`
}
