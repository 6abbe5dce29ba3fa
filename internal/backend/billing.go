package backend

import (
	"context"
	"net/http"

	"resto-dashboard/internal/dto"
)

type BillingAPIInterface interface {
	Totals(ctx context.Context, auth Auth, scope, scopeID string) (*dto.TotalsDTO, error)
	RecordPayment(ctx context.Context, auth Auth, payload dto.RecordPaymentDTO) (*dto.PaymentDTO, error)
	CreatePaymentQR(ctx context.Context, auth Auth, payload dto.CreatePaymentQRDTO) (*dto.PaymentQRDTO, error)
	CreateGroup(ctx context.Context, auth Auth, payload dto.SaveBillingGroupDTO) (*dto.BillingGroupDTO, error)
	UpdateGroup(ctx context.Context, auth Auth, groupID string, payload dto.SaveBillingGroupDTO) (*dto.BillingGroupDTO, error)
	DeleteGroup(ctx context.Context, auth Auth, groupID string) error
}

type billingAPI struct {
	c *Client
}

func NewBillingAPI(c *Client) BillingAPIInterface {
	return &billingAPI{c: c}
}

const areaBilling = "billing"

// Totals - итоги по одному заказу (scope=order) или группе (scope=group). Считает удалённый API.
func (a *billingAPI) Totals(ctx context.Context, auth Auth, scope, scopeID string) (*dto.TotalsDTO, error) {
	return call[*dto.TotalsDTO](a.c, ctx, request{
		area:     areaBilling,
		method:   http.MethodGet,
		endpoint: path("/billing/%s/%s/totals", scope, scopeID),
		auth:     auth,
	})
}

func (a *billingAPI) RecordPayment(ctx context.Context, auth Auth, payload dto.RecordPaymentDTO) (*dto.PaymentDTO, error) {
	return call[*dto.PaymentDTO](a.c, ctx, request{area: areaBilling, method: http.MethodPost, endpoint: "/billing/payments", auth: auth, body: payload})
}

func (a *billingAPI) CreatePaymentQR(ctx context.Context, auth Auth, payload dto.CreatePaymentQRDTO) (*dto.PaymentQRDTO, error) {
	return call[*dto.PaymentQRDTO](a.c, ctx, request{area: areaBilling, method: http.MethodPost, endpoint: "/billing/payment-qr", auth: auth, body: payload})
}

func (a *billingAPI) CreateGroup(ctx context.Context, auth Auth, payload dto.SaveBillingGroupDTO) (*dto.BillingGroupDTO, error) {
	return call[*dto.BillingGroupDTO](a.c, ctx, request{area: areaBilling, method: http.MethodPost, endpoint: "/billing/groups", auth: auth, body: payload})
}

func (a *billingAPI) UpdateGroup(ctx context.Context, auth Auth, groupID string, payload dto.SaveBillingGroupDTO) (*dto.BillingGroupDTO, error) {
	return call[*dto.BillingGroupDTO](a.c, ctx, request{area: areaBilling, method: http.MethodPut, endpoint: path("/billing/groups/%s", groupID), auth: auth, body: payload})
}

func (a *billingAPI) DeleteGroup(ctx context.Context, auth Auth, groupID string) error {
	return exec(a.c, ctx, request{area: areaBilling, method: http.MethodDelete, endpoint: path("/billing/groups/%s", groupID), auth: auth})
}
