package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/exams/dto"
	examModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/exams/model"
	examService "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/exams/service"
	helper "github.com/nillpakhi2003-droid/saroyarsir/internals/helpers"
)

type IndividualExamController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewIndividualExamController(db *gorm.DB, v *validator.Validate) *IndividualExamController {
	if v == nil {
		v = validator.New()
	}
	return &IndividualExamController{DB: db, Validator: v}
}

/* ============================================
   CREATE
   POST /api/monthly-exams/:id/individual-exams
============================================ */

func (ctl *IndividualExamController) Create(c *fiber.Ctx) error {
	monthlyExamID, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}

	var p dto.IndividualExamCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonValidationError(c, err)
	}

	var parent examModel.MonthlyExamModel
	if err := ctl.DB.First(&parent, monthlyExamID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Monthly exam not found")
	}

	duration := p.Duration
	if duration == 0 {
		duration = 60
	}
	exam := examModel.IndividualExamModel{
		MonthlyExamID: monthlyExamID,
		Title:         p.Title,
		Subject:       p.Subject,
		Marks:         p.Marks,
		ExamDate:      p.ExamDate,
		Duration:      duration,
		OrderIndex:    p.OrderIndex,
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&exam).Error; err != nil {
			return err
		}
		return examService.RecomputeTotalMarks(tx, monthlyExamID)
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create individual exam")
	}
	return helper.JsonCreated(c, "Individual exam created", exam)
}

/* ============================================
   UPDATE
   PUT /api/individual-exams/:id
============================================ */

func (ctl *IndividualExamController) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}

	var p dto.IndividualExamUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonValidationError(c, err)
	}

	var exam examModel.IndividualExamModel
	if err := ctl.DB.First(&exam, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Individual exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load individual exam")
	}

	oldCeiling := exam.Marks

	if p.Title != nil {
		exam.Title = *p.Title
	}
	if p.Subject != nil {
		exam.Subject = *p.Subject
	}
	if p.Marks != nil {
		exam.Marks = *p.Marks
	}
	if p.ExamDate != nil {
		exam.ExamDate = *p.ExamDate
	}
	if p.Duration != nil {
		exam.Duration = *p.Duration
	}
	if p.OrderIndex != nil {
		exam.OrderIndex = *p.OrderIndex
	}
	if p.IsCompleted != nil {
		exam.IsCompleted = *p.IsCompleted
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&exam).Error; err != nil {
			return err
		}
		if err := examService.RecomputeTotalMarks(tx, exam.MonthlyExamID); err != nil {
			return err
		}
		if exam.Marks != oldCeiling {
			// Stored marks were graded against the old ceiling.
			return examService.ReconcileCeilingChange(tx, &exam)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, examService.ErrCeilingBelowObtained) {
			return helper.JsonError(c, fiber.StatusConflict,
				"New mark ceiling is below an already recorded mark")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update individual exam")
	}
	return helper.JsonUpdated(c, "Individual exam updated", exam)
}

/* ============================================
   DELETE
   DELETE /api/individual-exams/:id
============================================ */

func (ctl *IndividualExamController) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}

	var exam examModel.IndividualExamModel
	if err := ctl.DB.First(&exam, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Individual exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load individual exam")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("individual_exam_id = ?", id).
			Delete(&examModel.MonthlyMarkModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&exam).Error; err != nil {
			return err
		}
		if err := examService.RecomputeTotalMarks(tx, exam.MonthlyExamID); err != nil {
			return err
		}
		// Marks changed, so the ranking must change with them.
		var parent examModel.MonthlyExamModel
		if err := tx.First(&parent, exam.MonthlyExamID).Error; err != nil {
			return err
		}
		return examService.RecomputeRankings(tx, &parent)
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete individual exam")
	}
	return helper.JsonDeleted(c, "Individual exam deleted", fiber.Map{"id": id})
}
