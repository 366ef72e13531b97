package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	smsService "github.com/nillpakhi2003-droid/saroyarsir/internals/features/sms/service"
	helper "github.com/nillpakhi2003-droid/saroyarsir/internals/helpers"
)

type SMSController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSMSController(db *gorm.DB, v *validator.Validate) *SMSController {
	if v == nil {
		v = validator.New()
	}
	return &SMSController{DB: db, Validator: v}
}

type templateUpdateDTO struct {
	Name    string `json:"name" validate:"omitempty,max=100"`
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

func (ctl *SMSController) Templates(c *fiber.Ctx) error {
	templates, err := smsService.LoadTemplates(ctl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load SMS templates")
	}
	return helper.JsonOK(c, "SMS templates loaded", templates)
}

func (ctl *SMSController) UpdateTemplate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid template id")
	}
	var p templateUpdateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	tpl, err := smsService.UpdateTemplate(ctl.DB, id, p.Name, p.Message)
	if err != nil {
		if errors.Is(err, smsService.ErrTemplateNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "SMS template not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update SMS template")
	}
	return helper.JsonUpdated(c, "SMS template updated", tpl)
}
