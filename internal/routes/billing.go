package routes

import (
	"github.com/labstack/echo/v4"

	"resto-dashboard/internal/authz"
	"resto-dashboard/internal/controllers"
	"resto-dashboard/pkg/middleware"
)

func runBillingRouter(secureGroup *echo.Group, billingCtrl *controllers.BillingController, authMW *middleware.AuthMiddleware) {
	view := authMW.AuthorizeAny(authz.BillingView, authz.BillingManage)
	manage := authMW.AuthorizeAny(authz.BillingManage)

	billing := secureGroup.Group("/billing")
	{
		billing.GET("/:scope/:id/totals", billingCtrl.Totals, view)
		billing.POST("/payments", billingCtrl.RecordPayment, manage)
		billing.POST("/payment_qr", billingCtrl.CreatePaymentQR, authMW.AuthorizeAny(authz.FeatureQRPay))
		billing.POST("/groups", billingCtrl.CreateGroup, manage)
		billing.PUT("/groups/:id", billingCtrl.UpdateGroup, manage)
		billing.DELETE("/groups/:id", billingCtrl.DeleteGroup, manage)
	}
}
