package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	smsController "github.com/nillpakhi2003-droid/saroyarsir/internals/features/sms/controller"
	authMiddleware "github.com/nillpakhi2003-droid/saroyarsir/internals/middlewares/auth"
)

func SMSRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := smsController.NewSMSController(db, v)

	staff := authMiddleware.RequireRoles(userModel.RoleTeacher, userModel.RoleSuperUser)

	sms := api.Group("/sms", authMiddleware.AuthMiddleware(db), staff)
	sms.Get("/templates", ctl.Templates)
	sms.Put("/templates/:id", ctl.UpdateTemplate)
}
