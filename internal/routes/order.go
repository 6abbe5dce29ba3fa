package routes

import (
	"github.com/labstack/echo/v4"

	"resto-dashboard/internal/authz"
	"resto-dashboard/internal/controllers"
	"resto-dashboard/pkg/middleware"
)

func runOrderRouter(secureGroup *echo.Group, orderCtrl *controllers.OrderController, authMW *middleware.AuthMiddleware) {
	view := authMW.AuthorizeAny(authz.OrdersView, authz.OrdersManage)
	manage := authMW.AuthorizeAny(authz.OrdersManage)

	orders := secureGroup.Group("/orders")
	{
		orders.GET("", orderCtrl.GetOrders, view)
		orders.GET("/:id", orderCtrl.FindOrder, view)
		orders.POST("/:id/actions/:action", orderCtrl.Action, manage)
		orders.POST("/:id/items", orderCtrl.AddItem, manage)
		orders.PUT("/:id/items/:itemId", orderCtrl.UpdateItem, manage)
		orders.DELETE("/:id/items/:itemId", orderCtrl.RemoveItem, manage)
	}
}
