package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/auth/controller"
	authMiddleware "github.com/nillpakhi2003-droid/saroyarsir/internals/middlewares/auth"
	middlewares "github.com/nillpakhi2003-droid/saroyarsir/internals/middlewares"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Get("/session-check", authMiddleware.AuthMiddleware(db), ctl.SessionCheck)

	protected := auth.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", ctl.Logout)
	protected.Get("/me", ctl.Me)
	protected.Post("/change-password", ctl.ChangePassword)
}
