package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	batchModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/model"
	dto "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/dto"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	helper "github.com/nillpakhi2003-droid/saroyarsir/internals/helpers"
)

type UserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUserController(db *gorm.DB, v *validator.Validate) *UserController {
	if v == nil {
		v = validator.New()
	}
	return &UserController{DB: db, Validator: v}
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

/* ============================================
   Students
============================================ */

func (ctl *UserController) CreateStudent(c *fiber.Ctx) error {
	var p dto.StudentCreateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	phone := helper.NormalizePhone(p.PhoneNumber)
	if phone == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid phone number format")
	}
	guardianPhone := ""
	if strings.TrimSpace(p.GuardianPhone) != "" {
		guardianPhone = helper.NormalizePhone(p.GuardianPhone)
		if guardianPhone == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid guardian phone number format")
		}
	}

	student := userModel.UserModel{
		PhoneNumber:   phone,
		FirstName:     strings.TrimSpace(p.FirstName),
		LastName:      strings.TrimSpace(p.LastName),
		Role:          userModel.RoleStudent,
		Email:         strings.TrimSpace(p.Email),
		GuardianPhone: guardianPhone,
		ExamFee:       p.ExamFee,
		OthersFee:     p.OthersFee,
		IsActive:      true,
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&student).Error; err != nil {
			return err
		}
		if p.BatchID != 0 {
			var batch batchModel.BatchModel
			if err := tx.First(&batch, p.BatchID).Error; err != nil {
				return err
			}
			if err := tx.Model(&student).Association("Batches").Append(&batch); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
		}
		log.Printf("[ERROR] create student: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create student")
	}
	return helper.JsonCreated(c, "Student created", student)
}

func (ctl *UserController) ListStudents(c *fiber.Ctx) error {
	q := ctl.DB.Model(&userModel.UserModel{}).
		Where("role = ?", userModel.RoleStudent).
		Preload("Batches")

	if c.QueryBool("archived", false) {
		q = q.Where("is_archived = ?", true)
	} else {
		q = q.Where("is_archived = ?", false)
	}
	if batchID := c.QueryInt("batch_id", 0); batchID > 0 {
		q = q.Joins("JOIN batch_students bs ON bs.user_id = users.id").
			Where("bs.batch_id = ?", batchID)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone_number LIKE ?",
			like, like, "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}

	page, size := helper.ParsePagination(c)
	var students []userModel.UserModel
	if err := q.Order("first_name ASC").
		Scopes(helper.Paginate(page, size)).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}
	return helper.JsonOK(c, "Students loaded", fiber.Map{
		"students":   students,
		"pagination": helper.Pagination{Page: page, PageSize: size, Total: total},
	})
}

func (ctl *UserController) StudentDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	var student userModel.UserModel
	if err := ctl.DB.Preload("Batches").
		Where("role = ?", userModel.RoleStudent).
		First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}
	return helper.JsonOK(c, "Student loaded", student)
}

func (ctl *UserController) UpdateStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	var p dto.StudentUpdateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var student userModel.UserModel
	if err := ctl.DB.Where("role = ?", userModel.RoleStudent).First(&student, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}

	if p.FirstName != nil {
		student.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		student.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.PhoneNumber != nil {
		phone := helper.NormalizePhone(*p.PhoneNumber)
		if phone == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid phone number format")
		}
		student.PhoneNumber = phone
	}
	if p.GuardianPhone != nil {
		if strings.TrimSpace(*p.GuardianPhone) == "" {
			student.GuardianPhone = ""
		} else {
			guardianPhone := helper.NormalizePhone(*p.GuardianPhone)
			if guardianPhone == "" {
				return helper.JsonError(c, fiber.StatusBadRequest, "Invalid guardian phone number format")
			}
			student.GuardianPhone = guardianPhone
		}
	}
	if p.Email != nil {
		student.Email = strings.TrimSpace(*p.Email)
	}
	if p.ExamFee != nil {
		student.ExamFee = *p.ExamFee
	}
	if p.OthersFee != nil {
		student.OthersFee = *p.OthersFee
	}
	if p.IsActive != nil {
		student.IsActive = *p.IsActive
	}

	if err := ctl.DB.Save(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}
	return helper.JsonUpdated(c, "Student updated", student)
}

/* ============================================
   Archive
============================================ */

func (ctl *UserController) ArchiveStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	var p dto.ArchiveDTO
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&p); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if err := ctl.Validator.Struct(&p); err != nil {
			return helper.JsonValidationError(c, err)
		}
	}

	var student userModel.UserModel
	if err := ctl.DB.Where("role = ?", userModel.RoleStudent).First(&student, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}
	if student.IsArchived {
		return helper.JsonError(c, fiber.StatusConflict, "Student is already archived")
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"is_archived":    true,
		"archived_at":    &now,
		"archive_reason": strings.TrimSpace(p.Reason),
	}
	if err := ctl.DB.Model(&student).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to archive student")
	}
	return helper.JsonOK(c, "Student archived", fiber.Map{
		"id":          student.ID,
		"archived_at": now,
	})
}

func (ctl *UserController) UnarchiveStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	var student userModel.UserModel
	if err := ctl.DB.Where("role = ?", userModel.RoleStudent).First(&student, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}
	if !student.IsArchived {
		return helper.JsonError(c, fiber.StatusConflict, "Student is not archived")
	}

	updates := map[string]interface{}{
		"is_archived":    false,
		"archived_at":    nil,
		"archive_reason": "",
	}
	if err := ctl.DB.Model(&student).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to unarchive student")
	}
	return helper.JsonOK(c, "Student unarchived", fiber.Map{"id": student.ID})
}

/* ============================================
   Teachers
============================================ */

func (ctl *UserController) ListTeachers(c *fiber.Ctx) error {
	var teachers []userModel.UserModel
	if err := ctl.DB.
		Where("role IN ?", []string{userModel.RoleTeacher, userModel.RoleSuperUser}).
		Order("first_name ASC").
		Find(&teachers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load teachers")
	}
	return helper.JsonOK(c, "Teachers loaded", teachers)
}
