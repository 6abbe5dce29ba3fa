package backend

import (
	"context"
	"net/http"

	"resto-dashboard/internal/dto"
)

// PublicAPIInterface - анонимный заказ по QR. Без bearer-токена, с X-Device-Id.
type PublicAPIInterface interface {
	ResolveQR(ctx context.Context, deviceID string, payload dto.ResolveQRDTO) (*dto.QRSessionDTO, error)
	CreateDraft(ctx context.Context, deviceID, sessionID string) (*dto.OrderDTO, error)
	GetOrder(ctx context.Context, deviceID, sessionID, orderID string) (*dto.OrderDTO, error)
	UpdateDraft(ctx context.Context, deviceID, sessionID, orderID string, payload dto.UpdateDraftDTO) (*dto.OrderDTO, error)
	SubmitToKitchen(ctx context.Context, deviceID, sessionID, orderID string) (*dto.OrderDTO, error)
	Heartbeat(ctx context.Context, deviceID, sessionID string) (*dto.QRSessionDTO, error)
}

type publicAPI struct {
	c *Client
}

func NewPublicAPI(c *Client) PublicAPIInterface {
	return &publicAPI{c: c}
}

const areaPublic = "public"

func (a *publicAPI) ResolveQR(ctx context.Context, deviceID string, payload dto.ResolveQRDTO) (*dto.QRSessionDTO, error) {
	endpoint := "/public/qr/dynamic"
	if payload.Static {
		endpoint = "/public/qr/static"
	}
	return call[*dto.QRSessionDTO](a.c, ctx, request{
		area:     areaPublic,
		method:   http.MethodPost,
		endpoint: endpoint,
		auth:     Auth{DeviceID: deviceID},
		body:     map[string]string{"code": payload.Code},
	})
}

func (a *publicAPI) CreateDraft(ctx context.Context, deviceID, sessionID string) (*dto.OrderDTO, error) {
	return call[*dto.OrderDTO](a.c, ctx, request{
		area:     areaPublic,
		method:   http.MethodPost,
		endpoint: path("/public/sessions/%s/orders", sessionID),
		auth:     Auth{DeviceID: deviceID},
	})
}

func (a *publicAPI) GetOrder(ctx context.Context, deviceID, sessionID, orderID string) (*dto.OrderDTO, error) {
	return call[*dto.OrderDTO](a.c, ctx, request{
		area:     areaPublic,
		method:   http.MethodGet,
		endpoint: path("/public/sessions/%s/orders/%s", sessionID, orderID),
		auth:     Auth{DeviceID: deviceID},
	})
}

func (a *publicAPI) UpdateDraft(ctx context.Context, deviceID, sessionID, orderID string, payload dto.UpdateDraftDTO) (*dto.OrderDTO, error) {
	return call[*dto.OrderDTO](a.c, ctx, request{
		area:     areaPublic,
		method:   http.MethodPatch,
		endpoint: path("/public/sessions/%s/orders/%s/items", sessionID, orderID),
		auth:     Auth{DeviceID: deviceID},
		body:     payload,
	})
}

func (a *publicAPI) SubmitToKitchen(ctx context.Context, deviceID, sessionID, orderID string) (*dto.OrderDTO, error) {
	return call[*dto.OrderDTO](a.c, ctx, request{
		area:     areaPublic,
		method:   http.MethodPost,
		endpoint: path("/public/sessions/%s/orders/%s/submit", sessionID, orderID),
		auth:     Auth{DeviceID: deviceID},
	})
}

func (a *publicAPI) Heartbeat(ctx context.Context, deviceID, sessionID string) (*dto.QRSessionDTO, error) {
	return call[*dto.QRSessionDTO](a.c, ctx, request{
		area:     areaPublic,
		method:   http.MethodPost,
		endpoint: path("/public/sessions/%s/heartbeat", sessionID),
		auth:     Auth{DeviceID: deviceID},
	})
}
