package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/auth/service"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	return authService.Login(ctl.DB, c)
}

func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	return authService.Logout(ctl.DB, c)
}

func (ctl *AuthController) Me(c *fiber.Ctx) error {
	return authService.Me(ctl.DB, c)
}

func (ctl *AuthController) ChangePassword(c *fiber.Ctx) error {
	return authService.ChangePassword(ctl.DB, c)
}

func (ctl *AuthController) SessionCheck(c *fiber.Ctx) error {
	return authService.SessionCheck(ctl.DB, c)
}
