package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	examController "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/exams/controller"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	authMiddleware "github.com/nillpakhi2003-droid/saroyarsir/internals/middlewares/auth"
)

func ExamRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate) {
	monthlyCtl := examController.NewMonthlyExamController(db, v)
	individualCtl := examController.NewIndividualExamController(db, v)

	staffOnly := authMiddleware.RequireRoles(userModel.RoleTeacher, userModel.RoleSuperUser)

	exams := app.Group("/api/monthly-exams", authMiddleware.AuthMiddleware(db))
	exams.Get("/", monthlyCtl.List)
	exams.Get("/:id", monthlyCtl.Detail)
	exams.Get("/:id/rankings", monthlyCtl.Rankings)
	exams.Post("/", staffOnly, monthlyCtl.Create)
	exams.Put("/:id", staffOnly, monthlyCtl.Update)
	exams.Delete("/:id", staffOnly, monthlyCtl.Delete)
	exams.Post("/:id/marks", staffOnly, monthlyCtl.SaveMarks)
	exams.Post("/:id/individual-exams", staffOnly, individualCtl.Create)

	individual := app.Group("/api/individual-exams",
		authMiddleware.AuthMiddleware(db), staffOnly)
	individual.Put("/:id", individualCtl.Update)
	individual.Delete("/:id", individualCtl.Delete)
}
