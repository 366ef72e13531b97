package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeService "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/fees/service"
	helper "github.com/nillpakhi2003-droid/saroyarsir/internals/helpers"
)

type FeeController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewFeeController(db *gorm.DB, v *validator.Validate) *FeeController {
	if v == nil {
		v = validator.New()
	}
	return &FeeController{DB: db, Validator: v}
}

/* ============================================
   GET /api/fees/load-monthly?batch_id=1&year=2025
============================================ */

func (ctl *FeeController) LoadMonthly(c *fiber.Ctx) error {
	batchID := c.QueryInt("batch_id")
	if batchID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "batch_id is required")
	}
	year := c.QueryInt("year")
	if year == 0 {
		year = time.Now().Year()
	}
	if year < 2020 || year > 2035 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Year must be between 2020 and 2035")
	}

	rows, err := feeService.LoadMonthly(ctl.DB, uint(batchID), year)
	if err != nil {
		switch {
		case errors.Is(err, feeService.ErrBatchNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
		case errors.Is(err, feeService.ErrNoStudents):
			return helper.JsonError(c, fiber.StatusNotFound, "No students found in this batch")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load fees")
		}
	}

	return helper.JsonOK(c, "Fees loaded successfully", fiber.Map{
		"fees":          rows,
		"batch_id":      batchID,
		"year":          year,
		"student_count": len(rows),
	})
}

/* ============================================
   POST /api/fees/save-monthly
============================================ */

func (ctl *FeeController) SaveMonthly(c *fiber.Ctx) error {
	var in feeService.SaveMonthlyInput
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id, batch_id, month, and year are required")
	}

	res, err := feeService.SaveMonthly(ctl.DB, in)
	if err != nil {
		switch {
		case errors.Is(err, feeService.ErrMonthOutOfRange),
			errors.Is(err, feeService.ErrYearOutOfRange),
			errors.Is(err, feeService.ErrNegativeAmount),
			errors.Is(err, feeService.ErrNotEnrolled):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, feeService.ErrStudentNotFound),
			errors.Is(err, feeService.ErrBatchNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save fee")
		}
	}

	switch {
	case res.Deleted:
		return helper.JsonOK(c, "Fee deleted successfully", fiber.Map{
			"deleted":    true,
			"student_id": in.StudentID,
			"month":      in.Month,
			"year":       in.Year,
		})
	case res.Created:
		return helper.JsonCreated(c, "Fee created successfully", fiber.Map{
			"fee_id":     res.Fee.ID,
			"student_id": res.Fee.UserID,
			"batch_id":   res.Fee.BatchID,
			"month":      in.Month,
			"year":       in.Year,
			"amount":     res.Fee.Amount,
			"status":     res.Fee.Status,
			"paid_date":  res.Fee.PaidDate,
		})
	case res.Updated:
		return helper.JsonOK(c, "Fee updated successfully", fiber.Map{
			"fee_id":     res.Fee.ID,
			"student_id": res.Fee.UserID,
			"batch_id":   res.Fee.BatchID,
			"month":      in.Month,
			"year":       in.Year,
			"amount":     res.Fee.Amount,
			"status":     res.Fee.Status,
			"paid_date":  res.Fee.PaidDate,
		})
	default:
		// amount 0 with no existing row
		return helper.JsonOK(c, "No fee created (amount is zero)", fiber.Map{
			"created":    false,
			"student_id": in.StudentID,
			"month":      in.Month,
			"year":       in.Year,
		})
	}
}

/* ============================================
   POST /api/fees/mark-paid
============================================ */

func (ctl *FeeController) MarkPaid(c *fiber.Ctx) error {
	var in struct {
		FeeID uint `json:"fee_id"`
	}
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if in.FeeID == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "fee_id is required")
	}

	fee, err := feeService.MarkPaid(ctl.DB, in.FeeID)
	if err != nil {
		if errors.Is(err, feeService.ErrFeeNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Fee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark fee as paid")
	}

	return helper.JsonOK(c, "Fee marked as paid", fiber.Map{
		"fee_id":    fee.ID,
		"status":    fee.Status,
		"paid_date": fee.PaidDate,
	})
}
