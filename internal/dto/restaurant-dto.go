package dto

import "github.com/aarondl/null/v8"

type RestaurantDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive bool   `json:"is_active"`
}

type CreateRestaurantDTO struct {
	Name    string `json:"name" validate:"required,max=120"`
	Address string `json:"address" validate:"omitempty,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
}

type UpdateRestaurantDTO struct {
	Name     null.String `json:"name" validate:"omitempty,max=120"`
	Address  null.String `json:"address" validate:"omitempty,max=255"`
	Phone    null.String `json:"phone" validate:"omitempty,max=32"`
	IsActive null.Bool   `json:"is_active"`
}

type OutletDTO struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	Address      string `json:"address,omitempty"`
	IsDefault    bool   `json:"is_default"`
}

type CreateOutletDTO struct {
	Name    string `json:"name" validate:"required,max=120"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

type UpdateOutletDTO struct {
	Name    null.String `json:"name" validate:"omitempty,max=120"`
	Address null.String `json:"address" validate:"omitempty,max=255"`
}

// OpeningHoursDTO - часы работы по дням недели: {"mon": [["09:00","22:00"]], ...}.
type OpeningHoursDTO map[string][][2]string

type SaveOpeningHoursDTO struct {
	Hours OpeningHoursDTO `json:"hours" validate:"required,weekday_keys"`
}
