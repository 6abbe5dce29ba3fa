package routes

import (
	"github.com/labstack/echo/v4"

	"resto-dashboard/internal/controllers"
	"resto-dashboard/pkg/middleware"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/verify_email", authCtrl.VerifyEmail)
		authGroup.POST("/password/forgot", authCtrl.RequestPasswordReset)
		authGroup.POST("/password/reset", authCtrl.ResetPassword)
		authGroup.POST("/logout", authCtrl.Logout)

		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
		authGroup.POST("/refresh", authCtrl.Refresh, authMW.Auth)
	}
}
