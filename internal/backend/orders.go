package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"resto-dashboard/internal/dto"
)

// OrderAPIInterface - заказы. Точка передаётся заголовком X-Outlet-Id.
type OrderAPIInterface interface {
	List(ctx context.Context, auth Auth, filter dto.OrderFilterDTO) (*dto.ListDTO[dto.OrderDTO], error)
	Get(ctx context.Context, auth Auth, orderID string) (*dto.OrderDTO, error)
	Action(ctx context.Context, auth Auth, orderID string, payload dto.OrderActionDTO) (*dto.OrderDTO, error)
	AddItem(ctx context.Context, auth Auth, orderID string, payload dto.AddOrderItemDTO) (*dto.OrderDTO, error)
	UpdateItem(ctx context.Context, auth Auth, orderID, itemID string, payload dto.UpdateOrderItemDTO) (*dto.OrderDTO, error)
	RemoveItem(ctx context.Context, auth Auth, orderID, itemID string) (*dto.OrderDTO, error)
}

type orderAPI struct {
	c *Client
}

func NewOrderAPI(c *Client) OrderAPIInterface {
	return &orderAPI{c: c}
}

const areaOrders = "orders"

func (a *orderAPI) List(ctx context.Context, auth Auth, filter dto.OrderFilterDTO) (*dto.ListDTO[dto.OrderDTO], error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	return call[*dto.ListDTO[dto.OrderDTO]](a.c, ctx, request{area: areaOrders, method: http.MethodGet, endpoint: "/orders", auth: auth, query: query})
}

func (a *orderAPI) Get(ctx context.Context, auth Auth, orderID string) (*dto.OrderDTO, error) {
	return call[*dto.OrderDTO](a.c, ctx, request{area: areaOrders, method: http.MethodGet, endpoint: path("/orders/%s", orderID), auth: auth})
}

// Action - submit / fire / void / reopen / close / finalize.
func (a *orderAPI) Action(ctx context.Context, auth Auth, orderID string, payload dto.OrderActionDTO) (*dto.OrderDTO, error) {
	var body interface{}
	if payload.Reason != "" {
		body = map[string]string{"reason": payload.Reason}
	}
	return call[*dto.OrderDTO](a.c, ctx, request{
		area:     areaOrders,
		method:   http.MethodPost,
		endpoint: path("/orders/%s/", orderID) + url.PathEscape(payload.Action),
		auth:     auth,
		body:     body,
	})
}

func (a *orderAPI) AddItem(ctx context.Context, auth Auth, orderID string, payload dto.AddOrderItemDTO) (*dto.OrderDTO, error) {
	return call[*dto.OrderDTO](a.c, ctx, request{area: areaOrders, method: http.MethodPost, endpoint: path("/orders/%s/items", orderID), auth: auth, body: payload})
}

func (a *orderAPI) UpdateItem(ctx context.Context, auth Auth, orderID, itemID string, payload dto.UpdateOrderItemDTO) (*dto.OrderDTO, error) {
	return call[*dto.OrderDTO](a.c, ctx, request{area: areaOrders, method: http.MethodPatch, endpoint: path("/orders/%s/items/%s", orderID, itemID), auth: auth, body: payload})
}

func (a *orderAPI) RemoveItem(ctx context.Context, auth Auth, orderID, itemID string) (*dto.OrderDTO, error) {
	return call[*dto.OrderDTO](a.c, ctx, request{area: areaOrders, method: http.MethodDelete, endpoint: path("/orders/%s/items/%s", orderID, itemID), auth: auth})
}
