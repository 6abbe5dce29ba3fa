package dto

import "time"

const (
	BillingScopeOrder = "order"
	BillingScopeGroup = "group"
)

type TotalsDTO struct {
	Scope         string  `json:"scope"`
	ScopeID       string  `json:"scope_id"`
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	Tax           float64 `json:"tax"`
	ServiceCharge float64 `json:"service_charge"`
	Total         float64 `json:"total"`
	Paid          float64 `json:"paid"`
	Due           float64 `json:"due"`
}

type RecordPaymentDTO struct {
	Scope     string  `json:"scope" validate:"required,oneof=order group"`
	ScopeID   string  `json:"scope_id" validate:"required"`
	Method    string  `json:"method" validate:"required,payment_method"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Reference string  `json:"reference" validate:"omitempty,max=128"`
}

type PaymentDTO struct {
	ID        string    `json:"id"`
	Method    string    `json:"method"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePaymentQRDTO struct {
	Scope   string `json:"scope" validate:"required,oneof=order group"`
	ScopeID string `json:"scope_id" validate:"required"`
}

type PaymentQRDTO struct {
	Code      string    `json:"code"`
	Amount    float64   `json:"amount"`
	ExpiresAt time.Time `json:"expires_at"`
}

type BillingGroupDTO struct {
	ID       string   `json:"id"`
	OrderIDs []string `json:"order_ids"`
}

type SaveBillingGroupDTO struct {
	OrderIDs []string `json:"order_ids" validate:"required,min=2,dive,required"`
}
