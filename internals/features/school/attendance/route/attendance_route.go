package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/attendance/controller"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	authMiddleware "github.com/nillpakhi2003-droid/saroyarsir/internals/middlewares/auth"
)

func AttendanceRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := attendanceController.NewAttendanceController(db, v)

	staff := authMiddleware.RequireRoles(userModel.RoleTeacher, userModel.RoleSuperUser)

	attendance := api.Group("/attendance", authMiddleware.AuthMiddleware(db))
	attendance.Get("/daily", ctl.Daily)
	attendance.Get("/monthly", ctl.Monthly)
	attendance.Post("/bulk", staff, ctl.BulkMark)
}
