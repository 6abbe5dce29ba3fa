package routes

import (
	"github.com/labstack/echo/v4"

	"resto-dashboard/internal/controllers"
)

// Гостевые маршруты без входа. Сессия нужна только ради device_id.
func runPublicRouter(api *echo.Group, ws *echo.Group, publicCtrl *controllers.PublicController, wsCtrl *controllers.WebSocketController) {
	public := api.Group("/public")
	{
		public.POST("/qr/resolve", publicCtrl.Resolve)
		public.POST("/sessions/:qr/heartbeat", publicCtrl.Heartbeat)
		public.POST("/sessions/:qr/orders", publicCtrl.CreateDraft)
		public.GET("/sessions/:qr/orders/:id", publicCtrl.GetOrder)
		public.PUT("/sessions/:qr/orders/:id", publicCtrl.UpdateDraft)
		public.POST("/sessions/:qr/orders/:id/submit", publicCtrl.Submit)
	}

	ws.GET("/public", wsCtrl.ServeWs)
}
