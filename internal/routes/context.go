package routes

import (
	"github.com/labstack/echo/v4"

	"resto-dashboard/internal/controllers"
)

// Переключатель доступен любому вошедшему. Кто может менять выбор, решает сервис.
func runContextRouter(secureGroup *echo.Group, contextCtrl *controllers.ContextController) {
	contextGroup := secureGroup.Group("/context")
	{
		contextGroup.GET("", contextCtrl.Current)
		contextGroup.GET("/options", contextCtrl.Options)
		contextGroup.PUT("/restaurant", contextCtrl.SelectRestaurant)
		contextGroup.PUT("/outlet", contextCtrl.SelectOutlet)
		contextGroup.DELETE("", contextCtrl.Clear)
	}
}
