package routes

import (
	"github.com/labstack/echo/v4"

	"resto-dashboard/internal/authz"
	"resto-dashboard/internal/controllers"
	"resto-dashboard/pkg/middleware"
)

func runRestaurantRouter(secureGroup *echo.Group, ctrl *controllers.RestaurantController, authMW *middleware.AuthMiddleware) {
	view := authMW.AuthorizeAny(authz.RestaurantsView, authz.RestaurantsManage)
	manage := authMW.AuthorizeAny(authz.RestaurantsManage)

	restaurants := secureGroup.Group("/restaurants")
	{
		restaurants.GET("", ctrl.ListRestaurants, view)
		restaurants.POST("", ctrl.CreateRestaurant, manage)
		restaurants.GET("/:id", ctrl.GetRestaurant, view)
		restaurants.PUT("/:id", ctrl.UpdateRestaurant, manage)
		restaurants.DELETE("/:id", ctrl.DeleteRestaurant, manage)
	}

	// Точки и часы работы относятся к ресторану из активного контекста.
	outlets := secureGroup.Group("/outlets")
	{
		outlets.GET("", ctrl.ListOutlets, view)
		outlets.POST("", ctrl.CreateOutlet, manage)
		outlets.PUT("/:id", ctrl.UpdateOutlet, manage)
		outlets.DELETE("/:id", ctrl.DeleteOutlet, manage)
		outlets.POST("/:id/default", ctrl.SetDefaultOutlet, manage)
	}

	secureGroup.GET("/opening_hours", ctrl.GetOpeningHours, view)
	secureGroup.PUT("/opening_hours", ctrl.UpdateOpeningHours, manage)
}
