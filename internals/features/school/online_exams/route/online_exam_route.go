package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	onlineExamController "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/online_exams/controller"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	authMiddleware "github.com/nillpakhi2003-droid/saroyarsir/internals/middlewares/auth"
)

func OnlineExamRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := onlineExamController.NewOnlineExamController(db, v)

	staff := authMiddleware.RequireRoles(userModel.RoleTeacher, userModel.RoleSuperUser)

	exams := api.Group("/online-exams", authMiddleware.AuthMiddleware(db))
	exams.Get("/", ctl.List)
	exams.Get("/:id", ctl.Detail)

	exams.Post("/", staff, ctl.Create)
	exams.Put("/:id", staff, ctl.Update)
	exams.Delete("/:id", staff, ctl.Delete)
	exams.Post("/publish-ready", staff, ctl.PublishReady)
	exams.Post("/:id/publish", staff, ctl.Publish)
	exams.Post("/:id/questions", staff, ctl.AddQuestion)

	questions := api.Group("/online-questions", authMiddleware.AuthMiddleware(db), staff)
	questions.Put("/:id", ctl.UpdateQuestion)
	questions.Delete("/:id", ctl.DeleteQuestion)
}
