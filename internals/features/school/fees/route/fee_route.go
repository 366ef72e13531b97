package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeController "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/fees/controller"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	authMiddleware "github.com/nillpakhi2003-droid/saroyarsir/internals/middlewares/auth"
)

func FeeRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate) {
	ctl := feeController.NewFeeController(db, v)

	fees := app.Group("/api/fees",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.RequireRoles(userModel.RoleTeacher, userModel.RoleSuperUser),
	)
	fees.Get("/load-monthly", ctl.LoadMonthly)
	fees.Post("/save-monthly", ctl.SaveMonthly)
	fees.Post("/mark-paid", ctl.MarkPaid)
}
