package routes

import (
	"github.com/labstack/echo/v4"

	"resto-dashboard/internal/authz"
	"resto-dashboard/internal/controllers"
	"resto-dashboard/pkg/middleware"
)

func runPayrollRouter(secureGroup *echo.Group, payrollCtrl *controllers.PayrollController, authMW *middleware.AuthMiddleware) {
	view := authMW.AuthorizeAny(authz.PayrollView, authz.PayrollManage)
	manage := authMW.AuthorizeAny(authz.PayrollManage)

	payroll := secureGroup.Group("/payroll")
	{
		payroll.PUT("/rates", payrollCtrl.UpsertPayRate, manage)
		payroll.GET("/periods", payrollCtrl.ListPeriods, view)
		payroll.POST("/periods", payrollCtrl.CreatePeriod, manage)
		payroll.GET("/periods/:id", payrollCtrl.PeriodDetail, view)
		payroll.POST("/periods/:id/calculate", payrollCtrl.CalculatePeriod, manage)
		payroll.POST("/periods/:id/close", payrollCtrl.ClosePeriod, manage)
	}
}
