package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/attendance/dto"
	attendanceService "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/attendance/service"
	helper "github.com/nillpakhi2003-droid/saroyarsir/internals/helpers"
)

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAttendanceController(db *gorm.DB, v *validator.Validate) *AttendanceController {
	if v == nil {
		v = validator.New()
	}
	return &AttendanceController{DB: db, Validator: v}
}

func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func (ctl *AttendanceController) BulkMark(c *fiber.Ctx) error {
	var p dto.BulkMarkDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, err := parseDay(p.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	markedBy, _ := c.Locals("user_id").(uint)
	entries := make([]attendanceService.BulkEntry, 0, len(p.Entries))
	for _, e := range p.Entries {
		entries = append(entries, attendanceService.BulkEntry{
			StudentID: e.StudentID,
			Status:    e.Status,
			Notes:     e.Notes,
		})
	}

	saved, err := attendanceService.BulkMark(ctl.DB, p.BatchID, date, markedBy, entries)
	if err != nil {
		switch {
		case errors.Is(err, attendanceService.ErrBatchNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
		case errors.Is(err, attendanceService.ErrInvalidStatus):
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attendance status")
		case errors.Is(err, attendanceService.ErrStudentNotInBatch):
			return helper.JsonError(c, fiber.StatusBadRequest, "Student is not enrolled in this batch")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save attendance")
	}
	return helper.JsonOK(c, "Attendance saved", fiber.Map{"saved": saved})
}

func (ctl *AttendanceController) Daily(c *fiber.Ctx) error {
	batchID := c.QueryInt("batch_id", 0)
	if batchID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "batch_id is required")
	}
	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = time.Now().UTC().Format("2006-01-02")
	}
	date, err := parseDay(dateStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	rows, err := attendanceService.Daily(ctl.DB, uint(batchID), date)
	if err != nil {
		if errors.Is(err, attendanceService.ErrBatchNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attendance")
	}
	return helper.JsonOK(c, "Attendance loaded", fiber.Map{
		"batch_id": batchID,
		"date":     date.Format("2006-01-02"),
		"rows":     rows,
	})
}

func (ctl *AttendanceController) Monthly(c *fiber.Ctx) error {
	batchID := c.QueryInt("batch_id", 0)
	if batchID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "batch_id is required")
	}
	now := time.Now().UTC()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())
	if month < 1 || month > 12 {
		return helper.JsonError(c, fiber.StatusBadRequest, "month must be between 1 and 12")
	}

	rows, err := attendanceService.Monthly(ctl.DB, uint(batchID), month, year)
	if err != nil {
		if errors.Is(err, attendanceService.ErrBatchNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Batch not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attendance summary")
	}
	return helper.JsonOK(c, "Attendance summary loaded", fiber.Map{
		"batch_id": batchID,
		"month":    month,
		"year":     year,
		"rows":     rows,
	})
}
