package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/dto"
	batchModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/model"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	helper "github.com/nillpakhi2003-droid/saroyarsir/internals/helpers"
)

type BatchController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewBatchController(db *gorm.DB, v *validator.Validate) *BatchController {
	if v == nil {
		v = validator.New()
	}
	return &BatchController{DB: db, Validator: v}
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

/* ============================================
   CRUD
============================================ */

func (ctl *BatchController) Create(c *fiber.Ctx) error {
	var p dto.BatchCreateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	isActive := true
	if p.IsActive != nil {
		isActive = *p.IsActive
	}
	batch := batchModel.BatchModel{
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
		FeeAmount:   p.FeeAmount,
		IsActive:    isActive,
	}
	if err := ctl.DB.Create(&batch).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "A batch with this name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create batch")
	}
	return helper.JsonCreated(c, "Batch created", batch)
}

func (ctl *BatchController) List(c *fiber.Ctx) error {
	q := ctl.DB.Model(&batchModel.BatchModel{})
	if c.QueryBool("active_only", false) {
		q = q.Where("is_active = ?", true)
	}
	var batches []batchModel.BatchModel
	if err := q.Order("name ASC").Find(&batches).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load batches")
	}
	return helper.JsonOK(c, "Batches loaded", batches)
}

func (ctl *BatchController) Detail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid batch id")
	}
	var batch batchModel.BatchModel
	if err := ctl.DB.First(&batch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load batch")
	}
	return helper.JsonOK(c, "Batch loaded", batch)
}

func (ctl *BatchController) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid batch id")
	}

	var p dto.BatchUpdateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var batch batchModel.BatchModel
	if err := ctl.DB.First(&batch, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
	}

	if p.Name != nil {
		batch.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		batch.Description = strings.TrimSpace(*p.Description)
	}
	if p.FeeAmount != nil {
		batch.FeeAmount = *p.FeeAmount
	}
	if p.IsActive != nil {
		batch.IsActive = *p.IsActive
	}
	if err := ctl.DB.Save(&batch).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update batch")
	}
	return helper.JsonUpdated(c, "Batch updated", batch)
}

// Delete deactivates a batch instead of dropping the row, so its fees,
// exams and attendance history stay readable.
func (ctl *BatchController) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid batch id")
	}
	var batch batchModel.BatchModel
	if err := ctl.DB.First(&batch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load batch")
	}
	if !batch.IsActive {
		return helper.JsonError(c, fiber.StatusConflict, "Batch is already deactivated")
	}
	if err := ctl.DB.Model(&batch).Update("is_active", false).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to deactivate batch")
	}
	return helper.JsonDeleted(c, "Batch deactivated", fiber.Map{"id": batch.ID})
}

/* ============================================
   Enrollment
============================================ */

func (ctl *BatchController) Enroll(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid batch id")
	}
	var p dto.EnrollDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var batch batchModel.BatchModel
	if err := ctl.DB.First(&batch, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
	}
	var student userModel.UserModel
	if err := ctl.DB.Where("id = ? AND role = ? AND is_active = ? AND is_archived = ?",
		p.StudentID, userModel.RoleStudent, true, false).First(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found or inactive")
	}

	if err := ctl.DB.Model(&student).Association("Batches").Append(&batch); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to enroll student")
	}
	return helper.JsonOK(c, "Student enrolled", fiber.Map{
		"batch_id":   batch.ID,
		"student_id": student.ID,
	})
}

func (ctl *BatchController) Unenroll(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid batch id")
	}
	studentID, err := paramID(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var batch batchModel.BatchModel
	if err := ctl.DB.First(&batch, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
	}
	var student userModel.UserModel
	if err := ctl.DB.First(&student, studentID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}

	if err := ctl.DB.Model(&student).Association("Batches").Delete(&batch); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to unenroll student")
	}
	return helper.JsonOK(c, "Student unenrolled", fiber.Map{
		"batch_id":   batch.ID,
		"student_id": student.ID,
	})
}

// Students lists the batch's active, non-archived students.
func (ctl *BatchController) Students(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid batch id")
	}
	var batch batchModel.BatchModel
	if err := ctl.DB.First(&batch, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
	}

	var students []userModel.UserModel
	if err := ctl.DB.
		Joins("JOIN batch_students bs ON bs.user_id = users.id").
		Where("bs.batch_id = ? AND users.role = ? AND users.is_active = ? AND users.is_archived = ?",
			id, userModel.RoleStudent, true, false).
		Order("users.first_name ASC").
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}
	return helper.JsonOK(c, "Students loaded", students)
}
