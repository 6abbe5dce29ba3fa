package backend

import (
	"context"
	"net/http"

	"resto-dashboard/internal/dto"
)

type RestaurantAPIInterface interface {
	ListRestaurants(ctx context.Context, token string) ([]dto.RestaurantDTO, error)
	GetRestaurant(ctx context.Context, token, id string) (*dto.RestaurantDTO, error)
	CreateRestaurant(ctx context.Context, token string, payload dto.CreateRestaurantDTO) (*dto.RestaurantDTO, error)
	UpdateRestaurant(ctx context.Context, token, id string, payload dto.UpdateRestaurantDTO) (*dto.RestaurantDTO, error)
	DeleteRestaurant(ctx context.Context, token, id string) error

	ListOutlets(ctx context.Context, token, restaurantID string) ([]dto.OutletDTO, error)
	CreateOutlet(ctx context.Context, token, restaurantID string, payload dto.CreateOutletDTO) (*dto.OutletDTO, error)
	UpdateOutlet(ctx context.Context, token, restaurantID, outletID string, payload dto.UpdateOutletDTO) (*dto.OutletDTO, error)
	DeleteOutlet(ctx context.Context, token, restaurantID, outletID string) error
	SetDefaultOutlet(ctx context.Context, token, restaurantID, outletID string) error

	GetOpeningHours(ctx context.Context, token, restaurantID, outletID string) (dto.OpeningHoursDTO, error)
	UpdateOpeningHours(ctx context.Context, token, restaurantID, outletID string, hours dto.OpeningHoursDTO) (dto.OpeningHoursDTO, error)
}

type restaurantAPI struct {
	c *Client
}

func NewRestaurantAPI(c *Client) RestaurantAPIInterface {
	return &restaurantAPI{c: c}
}

const areaRestaurants = "restaurants"

func (a *restaurantAPI) ListRestaurants(ctx context.Context, token string) ([]dto.RestaurantDTO, error) {
	return call[[]dto.RestaurantDTO](a.c, ctx, request{area: areaRestaurants, method: http.MethodGet, endpoint: "/restaurants", auth: Auth{Token: token}})
}

func (a *restaurantAPI) GetRestaurant(ctx context.Context, token, id string) (*dto.RestaurantDTO, error) {
	return call[*dto.RestaurantDTO](a.c, ctx, request{area: areaRestaurants, method: http.MethodGet, endpoint: path("/restaurants/%s", id), auth: Auth{Token: token}})
}

func (a *restaurantAPI) CreateRestaurant(ctx context.Context, token string, payload dto.CreateRestaurantDTO) (*dto.RestaurantDTO, error) {
	return call[*dto.RestaurantDTO](a.c, ctx, request{area: areaRestaurants, method: http.MethodPost, endpoint: "/restaurants", auth: Auth{Token: token}, body: payload})
}

func (a *restaurantAPI) UpdateRestaurant(ctx context.Context, token, id string, payload dto.UpdateRestaurantDTO) (*dto.RestaurantDTO, error) {
	return call[*dto.RestaurantDTO](a.c, ctx, request{area: areaRestaurants, method: http.MethodPatch, endpoint: path("/restaurants/%s", id), auth: Auth{Token: token}, body: payload})
}

func (a *restaurantAPI) DeleteRestaurant(ctx context.Context, token, id string) error {
	return exec(a.c, ctx, request{area: areaRestaurants, method: http.MethodDelete, endpoint: path("/restaurants/%s", id), auth: Auth{Token: token}})
}

func (a *restaurantAPI) ListOutlets(ctx context.Context, token, restaurantID string) ([]dto.OutletDTO, error) {
	return call[[]dto.OutletDTO](a.c, ctx, request{
		area:     areaRestaurants,
		method:   http.MethodGet,
		endpoint: path("/restaurants/%s/outlets", restaurantID),
		auth:     Auth{Token: token},
	})
}

func (a *restaurantAPI) CreateOutlet(ctx context.Context, token, restaurantID string, payload dto.CreateOutletDTO) (*dto.OutletDTO, error) {
	return call[*dto.OutletDTO](a.c, ctx, request{
		area:     areaRestaurants,
		method:   http.MethodPost,
		endpoint: path("/restaurants/%s/outlets", restaurantID),
		auth:     Auth{Token: token},
		body:     payload,
	})
}

func (a *restaurantAPI) UpdateOutlet(ctx context.Context, token, restaurantID, outletID string, payload dto.UpdateOutletDTO) (*dto.OutletDTO, error) {
	return call[*dto.OutletDTO](a.c, ctx, request{
		area:     areaRestaurants,
		method:   http.MethodPatch,
		endpoint: path("/restaurants/%s/outlets/%s", restaurantID, outletID),
		auth:     Auth{Token: token},
		body:     payload,
	})
}

func (a *restaurantAPI) DeleteOutlet(ctx context.Context, token, restaurantID, outletID string) error {
	return exec(a.c, ctx, request{
		area:     areaRestaurants,
		method:   http.MethodDelete,
		endpoint: path("/restaurants/%s/outlets/%s", restaurantID, outletID),
		auth:     Auth{Token: token},
	})
}

func (a *restaurantAPI) SetDefaultOutlet(ctx context.Context, token, restaurantID, outletID string) error {
	return exec(a.c, ctx, request{
		area:     areaRestaurants,
		method:   http.MethodPost,
		endpoint: path("/restaurants/%s/outlets/%s/default", restaurantID, outletID),
		auth:     Auth{Token: token},
	})
}

func (a *restaurantAPI) GetOpeningHours(ctx context.Context, token, restaurantID, outletID string) (dto.OpeningHoursDTO, error) {
	return call[dto.OpeningHoursDTO](a.c, ctx, request{
		area:     areaRestaurants,
		method:   http.MethodGet,
		endpoint: path("/restaurants/%s/outlets/%s/opening-hours", restaurantID, outletID),
		auth:     Auth{Token: token},
	})
}

func (a *restaurantAPI) UpdateOpeningHours(ctx context.Context, token, restaurantID, outletID string, hours dto.OpeningHoursDTO) (dto.OpeningHoursDTO, error) {
	return call[dto.OpeningHoursDTO](a.c, ctx, request{
		area:     areaRestaurants,
		method:   http.MethodPut,
		endpoint: path("/restaurants/%s/outlets/%s/opening-hours", restaurantID, outletID),
		auth:     Auth{Token: token},
		body:     hours,
	})
}
