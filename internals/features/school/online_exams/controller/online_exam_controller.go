package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	batchModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/model"
	dto "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/online_exams/dto"
	onlineExamModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/online_exams/model"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	helper "github.com/nillpakhi2003-droid/saroyarsir/internals/helpers"
)

type OnlineExamController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewOnlineExamController(db *gorm.DB, v *validator.Validate) *OnlineExamController {
	if v == nil {
		v = validator.New()
	}
	return &OnlineExamController{DB: db, Validator: v}
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func isStaff(c *fiber.Ctx) bool {
	role, _ := c.Locals("user_role").(string)
	return role == userModel.RoleTeacher || role == userModel.RoleSuperUser
}

/* ============================================
   Exams
============================================ */

func (ctl *OnlineExamController) Create(c *fiber.Ctx) error {
	var p dto.OnlineExamCreateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var batch batchModel.BatchModel
	if err := ctl.DB.First(&batch, p.BatchID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
	}

	passPct := p.PassPercentage
	if passPct == 0 {
		passPct = 40
	}
	createdBy, _ := c.Locals("user_id").(uint)
	exam := onlineExamModel.OnlineExamModel{
		BatchID:        p.BatchID,
		Title:          p.Title,
		Subject:        p.Subject,
		ChapterName:    p.ChapterName,
		Duration:       p.Duration,
		TotalQuestions: p.TotalQuestions,
		PassPercentage: passPct,
		AllowRetake:    p.AllowRetake,
		CreatedBy:      createdBy,
	}
	if err := ctl.DB.Create(&exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create online exam")
	}
	return helper.JsonCreated(c, "Online exam created", exam)
}

func (ctl *OnlineExamController) List(c *fiber.Ctx) error {
	q := ctl.DB.Model(&onlineExamModel.OnlineExamModel{})
	if batchID := c.QueryInt("batch_id", 0); batchID > 0 {
		q = q.Where("batch_id = ?", batchID)
	}
	// Students only see published active exams, and never the answer key.
	if !isStaff(c) {
		q = q.Where("is_published = ? AND is_active = ?", true, true)
	}

	var exams []onlineExamModel.OnlineExamModel
	if err := q.Order("created_at DESC").Find(&exams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load online exams")
	}
	return helper.JsonOK(c, "Online exams loaded", exams)
}

func (ctl *OnlineExamController) Detail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}
	var exam onlineExamModel.OnlineExamModel
	if err := ctl.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC, id ASC")
	}).First(&exam, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Online exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load online exam")
	}

	if !isStaff(c) {
		if !exam.IsPublished || !exam.IsActive {
			return helper.JsonError(c, fiber.StatusForbidden, "Exam is not available")
		}
		for i := range exam.Questions {
			exam.Questions[i].CorrectOption = ""
		}
	}
	return helper.JsonOK(c, "Online exam loaded", exam)
}

func (ctl *OnlineExamController) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}
	var p dto.OnlineExamUpdateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var exam onlineExamModel.OnlineExamModel
	if err := ctl.DB.First(&exam, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Online exam not found")
	}

	if p.Title != nil {
		exam.Title = *p.Title
	}
	if p.Subject != nil {
		exam.Subject = *p.Subject
	}
	if p.ChapterName != nil {
		exam.ChapterName = *p.ChapterName
	}
	if p.Duration != nil {
		exam.Duration = *p.Duration
	}
	if p.TotalQuestions != nil {
		exam.TotalQuestions = *p.TotalQuestions
	}
	if p.PassPercentage != nil {
		exam.PassPercentage = *p.PassPercentage
	}
	if p.AllowRetake != nil {
		exam.AllowRetake = *p.AllowRetake
	}
	if p.IsActive != nil {
		exam.IsActive = *p.IsActive
	}
	if err := ctl.DB.Save(&exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update online exam")
	}
	return helper.JsonUpdated(c, "Online exam updated", exam)
}

func (ctl *OnlineExamController) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}
	var exam onlineExamModel.OnlineExamModel
	if err := ctl.DB.First(&exam, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Online exam not found")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).
			Delete(&onlineExamModel.OnlineQuestionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&exam).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete online exam")
	}
	return helper.JsonDeleted(c, "Online exam deleted", fiber.Map{"id": id})
}

// Publish flips is_published once the exam carries enough questions.
func (ctl *OnlineExamController) Publish(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}
	var exam onlineExamModel.OnlineExamModel
	if err := ctl.DB.First(&exam, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Online exam not found")
	}

	var count int64
	if err := ctl.DB.Model(&onlineExamModel.OnlineQuestionModel{}).
		Where("exam_id = ?", id).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count questions")
	}
	if count < int64(exam.TotalQuestions) {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"Exam needs at least "+strconv.Itoa(exam.TotalQuestions)+" questions before publishing")
	}

	if err := ctl.DB.Model(&exam).
		Updates(map[string]interface{}{"is_published": true, "is_active": true}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to publish online exam")
	}
	return helper.JsonOK(c, "Online exam published", fiber.Map{
		"id":             exam.ID,
		"question_count": count,
	})
}

// PublishReady publishes every unpublished exam that already carries at
// least total_questions questions.
func (ctl *OnlineExamController) PublishReady(c *fiber.Ctx) error {
	var exams []onlineExamModel.OnlineExamModel
	if err := ctl.DB.Where("is_published = ?", false).Find(&exams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load online exams")
	}

	published := make([]uint, 0)
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		for _, exam := range exams {
			var count int64
			if err := tx.Model(&onlineExamModel.OnlineQuestionModel{}).
				Where("exam_id = ?", exam.ID).Count(&count).Error; err != nil {
				return err
			}
			if count < int64(exam.TotalQuestions) {
				continue
			}
			if err := tx.Model(&onlineExamModel.OnlineExamModel{}).
				Where("id = ?", exam.ID).
				Updates(map[string]interface{}{"is_published": true, "is_active": true}).Error; err != nil {
				return err
			}
			published = append(published, exam.ID)
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to publish online exams")
	}
	return helper.JsonOK(c, "Ready exams published", fiber.Map{
		"published_count": len(published),
		"published_ids":   published,
	})
}

/* ============================================
   Questions
============================================ */

func (ctl *OnlineExamController) AddQuestion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}
	var p dto.OnlineQuestionCreateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var exam onlineExamModel.OnlineExamModel
	if err := ctl.DB.First(&exam, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Online exam not found")
	}

	marks := p.Marks
	if marks == 0 {
		marks = 1
	}
	question := onlineExamModel.OnlineQuestionModel{
		ExamID:        id,
		QuestionText:  p.QuestionText,
		OptionA:       p.OptionA,
		OptionB:       p.OptionB,
		OptionC:       p.OptionC,
		OptionD:       p.OptionD,
		CorrectOption: p.CorrectOption,
		Marks:         marks,
		OrderIndex:    p.OrderIndex,
	}
	if err := ctl.DB.Create(&question).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add question")
	}
	return helper.JsonCreated(c, "Question added", question)
}

func (ctl *OnlineExamController) UpdateQuestion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}
	var p dto.OnlineQuestionUpdateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var question onlineExamModel.OnlineQuestionModel
	if err := ctl.DB.First(&question, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
	}

	if p.QuestionText != nil {
		question.QuestionText = *p.QuestionText
	}
	if p.OptionA != nil {
		question.OptionA = *p.OptionA
	}
	if p.OptionB != nil {
		question.OptionB = *p.OptionB
	}
	if p.OptionC != nil {
		question.OptionC = *p.OptionC
	}
	if p.OptionD != nil {
		question.OptionD = *p.OptionD
	}
	if p.CorrectOption != nil {
		question.CorrectOption = *p.CorrectOption
	}
	if p.Marks != nil {
		question.Marks = *p.Marks
	}
	if p.OrderIndex != nil {
		question.OrderIndex = *p.OrderIndex
	}
	if err := ctl.DB.Save(&question).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update question")
	}
	return helper.JsonUpdated(c, "Question updated", question)
}

func (ctl *OnlineExamController) DeleteQuestion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}
	var question onlineExamModel.OnlineQuestionModel
	if err := ctl.DB.First(&question, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
	}
	if err := ctl.DB.Delete(&question).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete question")
	}
	return helper.JsonDeleted(c, "Question deleted", fiber.Map{"id": id})
}
