package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	batchModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/model"
	dto "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/exams/dto"
	examModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/exams/model"
	examService "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/exams/service"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	helper "github.com/nillpakhi2003-droid/saroyarsir/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type MonthlyExamController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewMonthlyExamController(db *gorm.DB, v *validator.Validate) *MonthlyExamController {
	if v == nil {
		v = validator.New()
	}
	return &MonthlyExamController{DB: db, Validator: v}
}

func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return err
		}
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

/* ============================================
   CREATE
   POST /api/monthly-exams
============================================ */

func (ctl *MonthlyExamController) Create(c *fiber.Ctx) error {
	var p dto.MonthlyExamCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonValidationError(c, err)
	}

	var batch batchModel.BatchModel
	if err := ctl.DB.First(&batch, p.BatchID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
	}

	var cnt int64
	if err := ctl.DB.Model(&examModel.MonthlyExamModel{}).
		Where("batch_id = ? AND month = ? AND year = ?", p.BatchID, p.Month, p.Year).
		Count(&cnt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing exams")
	}
	if cnt > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Monthly exam already exists for this batch and month")
	}

	createdBy, _ := c.Locals("user_id").(uint)
	status := p.Status
	if status == "" {
		status = examModel.ExamStatusDraft
	}
	showResults := false
	if p.ShowResults != nil {
		showResults = *p.ShowResults
	}

	exam := examModel.MonthlyExamModel{
		BatchID:     p.BatchID,
		Month:       p.Month,
		Year:        p.Year,
		Title:       p.Title,
		Description: p.Description,
		PassMarks:   p.PassMarks,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      status,
		ShowResults: showResults,
		CreatedBy:   createdBy,
	}
	if err := ctl.DB.Create(&exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create monthly exam")
	}
	return helper.JsonCreated(c, "Monthly exam created", exam)
}

/* ============================================
   LIST / DETAIL
   GET /api/monthly-exams?batch_id=&year=
   GET /api/monthly-exams/:id
============================================ */

func (ctl *MonthlyExamController) List(c *fiber.Ctx) error {
	q := ctl.DB.Model(&examModel.MonthlyExamModel{}).Preload("IndividualExams")

	if batchID := c.QueryInt("batch_id"); batchID > 0 {
		q = q.Where("batch_id = ?", batchID)
	}
	if year := c.QueryInt("year"); year > 0 {
		q = q.Where("year = ?", year)
	}
	// Students only see published result sets.
	if role, _ := c.Locals("user_role").(string); role == userModel.RoleStudent {
		q = q.Where("show_results = ?", true)
	}

	var exams []examModel.MonthlyExamModel
	if err := q.Order("year DESC, month DESC").Find(&exams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load monthly exams")
	}
	return helper.JsonOK(c, "Monthly exams loaded", exams)
}

func (ctl *MonthlyExamController) Detail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}
	var exam examModel.MonthlyExamModel
	if err := ctl.DB.Preload("IndividualExams", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&exam, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Monthly exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load monthly exam")
	}
	if role, _ := c.Locals("user_role").(string); role == userModel.RoleStudent && !exam.ShowResults {
		return helper.JsonError(c, fiber.StatusNotFound, "Monthly exam not found")
	}
	return helper.JsonOK(c, "Monthly exam loaded", exam)
}

/* ============================================
   UPDATE / DELETE
============================================ */

func (ctl *MonthlyExamController) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}

	var p dto.MonthlyExamUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonValidationError(c, err)
	}

	var exam examModel.MonthlyExamModel
	if err := ctl.DB.First(&exam, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Monthly exam not found")
	}

	if p.Title != nil {
		exam.Title = *p.Title
	}
	if p.Description != nil {
		exam.Description = *p.Description
	}
	if p.PassMarks != nil {
		exam.PassMarks = *p.PassMarks
	}
	if p.StartDate != nil {
		exam.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		exam.EndDate = *p.EndDate
	}
	if p.Status != nil {
		exam.Status = *p.Status
	}
	if p.ShowResults != nil {
		exam.ShowResults = *p.ShowResults
	}

	// total_marks is derived from individual exams, never taken from input
	if err := ctl.DB.Save(&exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update monthly exam")
	}
	return helper.JsonUpdated(c, "Monthly exam updated", exam)
}

func (ctl *MonthlyExamController) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("monthly_exam_id = ?", id).Delete(&examModel.MonthlyRankingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("monthly_exam_id = ?", id).Delete(&examModel.MonthlyMarkModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("monthly_exam_id = ?", id).Delete(&examModel.IndividualExamModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&examModel.MonthlyExamModel{}, id).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete monthly exam")
	}
	return helper.JsonDeleted(c, "Monthly exam deleted", fiber.Map{"id": id})
}

/* ============================================
   MARK ENTRY + RESULTS
   POST /api/monthly-exams/:id/marks
   GET  /api/monthly-exams/:id/rankings
============================================ */

func (ctl *MonthlyExamController) SaveMarks(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}

	var p dto.SaveMarksDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonValidationError(c, err)
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		return examService.SaveMarks(tx, id, p.Marks)
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Monthly exam not found")
		case errors.Is(err, examService.ErrExamNotFound),
			errors.Is(err, examService.ErrNegativeMarks),
			errors.Is(err, examService.ErrMarksExceedCeiling):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save marks")
		}
	}
	return helper.JsonOK(c, "Marks saved and ranking updated", fiber.Map{
		"monthly_exam_id": id,
		"saved":           len(p.Marks),
	})
}

func (ctl *MonthlyExamController) Rankings(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}

	var exam examModel.MonthlyExamModel
	if err := ctl.DB.First(&exam, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Monthly exam not found")
	}
	if role, _ := c.Locals("user_role").(string); role == userModel.RoleStudent && !exam.ShowResults {
		return helper.JsonError(c, fiber.StatusNotFound, "Monthly exam not found")
	}

	var rankings []examModel.MonthlyRankingModel
	if err := ctl.DB.Where("monthly_exam_id = ?", id).
		Order("position ASC").
		Find(&rankings).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load rankings")
	}
	return helper.JsonOK(c, "Rankings loaded", fiber.Map{
		"monthly_exam_id": id,
		"total_marks":     exam.TotalMarks,
		"rankings":        rankings,
	})
}
