package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	batchController "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/controller"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	authMiddleware "github.com/nillpakhi2003-droid/saroyarsir/internals/middlewares/auth"
)

func BatchRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := batchController.NewBatchController(db, v)

	batches := api.Group("/batches", authMiddleware.AuthMiddleware(db))
	batches.Get("/", ctl.List)
	batches.Get("/:id", ctl.Detail)
	batches.Get("/:id/students", ctl.Students)

	staff := authMiddleware.RequireRoles(userModel.RoleTeacher, userModel.RoleSuperUser)
	batches.Post("/", staff, ctl.Create)
	batches.Put("/:id", staff, ctl.Update)
	batches.Delete("/:id", staff, ctl.Delete)
	batches.Post("/:id/students", staff, ctl.Enroll)
	batches.Delete("/:id/students/:student_id", staff, ctl.Unenroll)
}
