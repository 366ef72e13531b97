package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/controller"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	authMiddleware "github.com/nillpakhi2003-droid/saroyarsir/internals/middlewares/auth"
)

func UserRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := userController.NewUserController(db, v)

	staff := authMiddleware.RequireRoles(userModel.RoleTeacher, userModel.RoleSuperUser)

	users := api.Group("/users", authMiddleware.AuthMiddleware(db), staff)
	users.Get("/students", ctl.ListStudents)
	users.Post("/students", ctl.CreateStudent)
	users.Get("/students/:id", ctl.StudentDetail)
	users.Put("/students/:id", ctl.UpdateStudent)
	users.Post("/students/:id/archive", ctl.ArchiveStudent)
	users.Post("/students/:id/unarchive", ctl.UnarchiveStudent)
	users.Get("/teachers", ctl.ListTeachers)
}
