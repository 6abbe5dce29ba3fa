package routes

import (
	"github.com/labstack/echo/v4"

	"resto-dashboard/internal/authz"
	"resto-dashboard/internal/controllers"
	"resto-dashboard/pkg/middleware"
)

func runStaffRouter(secureGroup *echo.Group, staffCtrl *controllers.StaffController, authMW *middleware.AuthMiddleware) {
	view := authMW.AuthorizeAny(authz.StaffView, authz.StaffManage)
	manage := authMW.AuthorizeAny(authz.StaffManage)
	shifts := authMW.AuthorizeAny(authz.ShiftsManage)
	clock := authMW.AuthorizeAny(authz.AttendanceClock, authz.AttendanceAdmin)
	approve := authMW.AuthorizeAny(authz.AttendanceAdmin)

	staff := secureGroup.Group("/staff")
	{
		staff.GET("", staffCtrl.ListStaff, view)
		staff.POST("", staffCtrl.CreateStaff, manage)
		staff.PUT("/:id", staffCtrl.UpdateStaff, manage)
		staff.DELETE("/:id", staffCtrl.DeleteStaff, manage)
	}

	shiftGroup := secureGroup.Group("/shifts")
	{
		shiftGroup.GET("/templates", staffCtrl.ListShiftTemplates, view)
		shiftGroup.POST("/templates", staffCtrl.SaveShiftTemplate, shifts)
		shiftGroup.PUT("/templates/:id", staffCtrl.SaveShiftTemplate, shifts)
		shiftGroup.DELETE("/templates/:id", staffCtrl.DeleteShiftTemplate, shifts)

		shiftGroup.GET("/assignments", staffCtrl.ListAssignments, view)
		shiftGroup.POST("/assignments", staffCtrl.CreateAssignment, shifts)
		shiftGroup.DELETE("/assignments/:id", staffCtrl.DeleteAssignment, shifts)
		shiftGroup.POST("/bulk", staffCtrl.BulkSchedule, shifts)
	}

	attendance := secureGroup.Group("/attendance")
	{
		attendance.GET("", staffCtrl.ListAttendance, clock)
		attendance.POST("/clock_in", staffCtrl.ClockIn, clock)
		attendance.POST("/clock_out", staffCtrl.ClockOut, clock)
		attendance.POST("/:id/adjustments", staffCtrl.RequestAdjustment, clock)
		attendance.PUT("/adjustments/:id", staffCtrl.DecideAdjustment, approve)
	}
}
