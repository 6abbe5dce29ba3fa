package dto

// ActiveContextDTO - выбранный ресторан и точка.
type ActiveContextDTO struct {
	RestaurantID   *string `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name,omitempty"`
	OutletID       *string `json:"outlet_id"`
	OutletName     string  `json:"outlet_name,omitempty"`
}

type SelectRestaurantDTO struct {
	RestaurantID   string `json:"restaurant_id" validate:"required"`
	RestaurantName string `json:"restaurant_name"`
}

type SelectOutletDTO struct {
	OutletID   string `json:"outlet_id" validate:"required"`
	OutletName string `json:"outlet_name"`
}

// SwitcherDTO - данные переключателя ресторана/точки.
type SwitcherDTO struct {
	CanSwitch   bool             `json:"can_switch"`
	Current     ActiveContextDTO `json:"current"`
	Restaurants []RestaurantDTO  `json:"restaurants"`
	Outlets     []OutletDTO      `json:"outlets"`
}
