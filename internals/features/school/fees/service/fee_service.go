package service

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	batchModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/model"
	feeModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/fees/model"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
)

var (
	ErrBatchNotFound    = errors.New("batch not found")
	ErrStudentNotFound  = errors.New("student not found or inactive")
	ErrNotEnrolled      = errors.New("student is not enrolled in this batch")
	ErrNoStudents       = errors.New("no students found in this batch")
	ErrFeeNotFound      = errors.New("fee not found")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrMonthOutOfRange  = errors.New("month must be between 1 and 12")
	ErrYearOutOfRange   = errors.New("year must be between 2020 and 2035")
)

/* ==========================
   Monthly grid
========================== */

type MonthCell struct {
	Amount   float64    `json:"amount"`
	FeeID    *uint      `json:"fee_id"`
	Status   *string    `json:"status"`
	PaidDate *time.Time `json:"paid_date"`
}

type StudentRow struct {
	StudentID   uint              `json:"student_id"`
	StudentName string            `json:"student_name"`
	Months      map[int]MonthCell `json:"months"`
}

// LoadMonthly builds the 12-month fee grid of one batch for one year.
// Every active, non-archived enrolled student gets a row with all twelve
// months filled; months without a fee carry the zero cell.
func LoadMonthly(db *gorm.DB, batchID uint, year int) ([]StudentRow, error) {
	var batch batchModel.BatchModel
	if err := db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}

	var students []userModel.UserModel
	if err := db.
		Joins("JOIN batch_students bs ON bs.user_id = users.id").
		Where("bs.batch_id = ? AND users.role = ? AND users.is_active = ? AND users.is_archived = ?",
			batchID, userModel.RoleStudent, true, false).
		Order("users.first_name ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, ErrNoStudents
	}

	var fees []feeModel.FeeModel
	if err := db.Where("batch_id = ? AND year = ?", batchID, year).Find(&fees).Error; err != nil {
		return nil, err
	}

	lookup := make(map[uint]map[int]feeModel.FeeModel)
	for _, f := range fees {
		if lookup[f.UserID] == nil {
			lookup[f.UserID] = make(map[int]feeModel.FeeModel)
		}
		lookup[f.UserID][f.Month] = f
	}

	rows := make([]StudentRow, 0, len(students))
	for _, s := range students {
		row := StudentRow{
			StudentID:   s.ID,
			StudentName: s.FullName(),
			Months:      make(map[int]MonthCell, 12),
		}
		for month := 1; month <= 12; month++ {
			if f, ok := lookup[s.ID][month]; ok {
				feeID := f.ID
				status := f.Status
				row.Months[month] = MonthCell{
					Amount:   f.Amount,
					FeeID:    &feeID,
					Status:   &status,
					PaidDate: f.PaidDate,
				}
			} else {
				row.Months[month] = MonthCell{}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

/* ==========================
   Save / delete one month
========================== */

type SaveMonthlyInput struct {
	StudentID uint    `json:"student_id" validate:"required"`
	BatchID   uint    `json:"batch_id" validate:"required"`
	Month     int     `json:"month" validate:"required"`
	Year      int     `json:"year" validate:"required"`
	Amount    float64 `json:"amount"`
}

type SaveMonthlyResult struct {
	Created bool
	Updated bool
	Deleted bool
	Fee     *feeModel.FeeModel
}

// SaveMonthly upserts one student's fee for one month. Amount zero means
// "no fee": an existing row is deleted, a missing row is left uncreated.
func SaveMonthly(db *gorm.DB, in SaveMonthlyInput) (SaveMonthlyResult, error) {
	var res SaveMonthlyResult

	if in.Month < 1 || in.Month > 12 {
		return res, ErrMonthOutOfRange
	}
	if in.Year < 2020 || in.Year > 2035 {
		return res, ErrYearOutOfRange
	}
	if in.Amount < 0 {
		return res, ErrNegativeAmount
	}

	var student userModel.UserModel
	if err := db.Where("id = ? AND role = ? AND is_active = ?",
		in.StudentID, userModel.RoleStudent, true).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, ErrStudentNotFound
		}
		return res, err
	}

	var batch batchModel.BatchModel
	if err := db.First(&batch, in.BatchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, ErrBatchNotFound
		}
		return res, err
	}

	var enrolled int64
	if err := db.Table("batch_students").
		Where("user_id = ? AND batch_id = ?", in.StudentID, in.BatchID).
		Count(&enrolled).Error; err != nil {
		return res, err
	}
	if enrolled == 0 {
		return res, ErrNotEnrolled
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing feeModel.FeeModel
		findErr := tx.Where("user_id = ? AND batch_id = ? AND month = ? AND year = ?",
			in.StudentID, in.BatchID, in.Month, in.Year).First(&existing).Error

		switch {
		case findErr == nil:
			if in.Amount == 0 {
				res.Deleted = true
				return tx.Delete(&existing).Error
			}
			existing.Amount = in.Amount
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			res.Updated = true
			res.Fee = &existing
			return nil

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if in.Amount == 0 {
				// nothing to create, nothing to delete
				return nil
			}
			fee := feeModel.FeeModel{
				UserID:  in.StudentID,
				BatchID: in.BatchID,
				Month:   in.Month,
				Year:    in.Year,
				Amount:  in.Amount,
				Status:  feeModel.FeeStatusPending,
				DueDate: endOfMonth(in.Year, in.Month),
				Notes:   "Monthly fee for " + time.Month(in.Month).String() + " " + strconv.Itoa(in.Year),
			}
			if err := tx.Create(&fee).Error; err != nil {
				return err
			}
			res.Created = true
			res.Fee = &fee
			return nil

		default:
			return findErr
		}
	})
	return res, err
}

/* ==========================
   Mark paid
========================== */

func MarkPaid(db *gorm.DB, feeID uint) (*feeModel.FeeModel, error) {
	var fee feeModel.FeeModel
	if err := db.First(&fee, feeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeNotFound
		}
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	fee.Status = feeModel.FeeStatusPaid
	fee.PaidDate = &today
	if err := db.Save(&fee).Error; err != nil {
		return nil, err
	}
	return &fee, nil
}

/* ==========================
   Small helpers
========================== */

func endOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}
