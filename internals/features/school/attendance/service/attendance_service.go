package service

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attendanceModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/attendance/model"
	batchModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/model"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
)

var (
	ErrBatchNotFound     = errors.New("batch not found")
	ErrInvalidStatus     = errors.New("invalid attendance status")
	ErrStudentNotInBatch = errors.New("student is not enrolled in this batch")
)

type BulkEntry struct {
	StudentID uint
	Status    string
	Notes     string
}

// BulkMark upserts one day's attendance for a batch in a single transaction.
// Existing rows for the same (student, batch, date) are overwritten.
func BulkMark(db *gorm.DB, batchID uint, date time.Time, markedBy uint, entries []BulkEntry) (int, error) {
	var batch batchModel.BatchModel
	if err := db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrBatchNotFound
		}
		return 0, err
	}

	for _, e := range entries {
		if !attendanceModel.ValidAttendanceStatus(e.Status) {
			return 0, ErrInvalidStatus
		}
	}

	// Enrollment check up front so one bad row rejects the whole day.
	enrolled := map[uint]bool{}
	var ids []uint
	if err := db.Table("batch_students").
		Where("batch_id = ?", batchID).
		Pluck("user_id", &ids).Error; err != nil {
		return 0, err
	}
	for _, id := range ids {
		enrolled[id] = true
	}
	for _, e := range entries {
		if !enrolled[e.StudentID] {
			return 0, ErrStudentNotInBatch
		}
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	saved := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			row := attendanceModel.AttendanceModel{
				UserID:   e.StudentID,
				BatchID:  batchID,
				Date:     day,
				Status:   e.Status,
				Notes:    e.Notes,
				MarkedBy: markedBy,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "batch_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"status", "notes", "marked_by", "updated_at",
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return saved, nil
}

// Daily returns a batch's attendance rows for one date, joined with student names.
type DailyRow struct {
	StudentID   uint   `json:"student_id"`
	StudentName string `json:"student_name"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

func Daily(db *gorm.DB, batchID uint, date time.Time) ([]DailyRow, error) {
	var batch batchModel.BatchModel
	if err := db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	var students []userModel.UserModel
	if err := db.
		Joins("JOIN batch_students bs ON bs.user_id = users.id").
		Where("bs.batch_id = ? AND users.role = ? AND users.is_active = ? AND users.is_archived = ?",
			batchID, userModel.RoleStudent, true, false).
		Order("users.first_name ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}

	var marks []attendanceModel.AttendanceModel
	if err := db.Where("batch_id = ? AND date = ?", batchID, day).Find(&marks).Error; err != nil {
		return nil, err
	}
	byStudent := map[uint]attendanceModel.AttendanceModel{}
	for _, m := range marks {
		byStudent[m.UserID] = m
	}

	rows := make([]DailyRow, 0, len(students))
	for _, s := range students {
		row := DailyRow{StudentID: s.ID, StudentName: s.FullName()}
		if m, ok := byStudent[s.ID]; ok {
			row.Status = m.Status
			row.Notes = m.Notes
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MonthlySummary is a per-student count roll-up for one month.
type MonthlySummary struct {
	StudentID   uint   `json:"student_id"`
	StudentName string `json:"student_name"`
	Present     int    `json:"present"`
	Absent      int    `json:"absent"`
	Late        int    `json:"late"`
	Leave       int    `json:"leave"`
}

func Monthly(db *gorm.DB, batchID uint, month, year int) ([]MonthlySummary, error) {
	var batch batchModel.BatchModel
	if err := db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var students []userModel.UserModel
	if err := db.
		Joins("JOIN batch_students bs ON bs.user_id = users.id").
		Where("bs.batch_id = ? AND users.role = ? AND users.is_active = ? AND users.is_archived = ?",
			batchID, userModel.RoleStudent, true, false).
		Order("users.first_name ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}

	var marks []attendanceModel.AttendanceModel
	if err := db.Where("batch_id = ? AND date >= ? AND date < ?", batchID, start, end).
		Find(&marks).Error; err != nil {
		return nil, err
	}

	counts := map[uint]*MonthlySummary{}
	order := make([]*MonthlySummary, 0, len(students))
	for _, s := range students {
		row := &MonthlySummary{StudentID: s.ID, StudentName: s.FullName()}
		counts[s.ID] = row
		order = append(order, row)
	}
	for _, m := range marks {
		row, ok := counts[m.UserID]
		if !ok {
			continue
		}
		switch m.Status {
		case attendanceModel.AttendanceStatusPresent:
			row.Present++
		case attendanceModel.AttendanceStatusAbsent:
			row.Absent++
		case attendanceModel.AttendanceStatusLate:
			row.Late++
		case attendanceModel.AttendanceStatusLeave:
			row.Leave++
		}
	}

	out := make([]MonthlySummary, 0, len(order))
	for _, row := range order {
		out = append(out, *row)
	}
	return out, nil
}
