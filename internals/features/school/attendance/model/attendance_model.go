package model

import "time"

// Attendance status. "holiday" was folded into "leave" by an operational
// migration; only these four remain valid.
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
	AttendanceStatusLeave   = "leave"
)

// AttendanceModel is one student's attendance for one batch day.
type AttendanceModel struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uint      `gorm:"not null;uniqueIndex:uq_attendance_student_batch_date" json:"user_id"`
	BatchID uint      `gorm:"not null;uniqueIndex:uq_attendance_student_batch_date" json:"batch_id"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_student_batch_date" json:"date"`
	Status  string    `gorm:"type:varchar(10);not null" json:"status"`
	Notes   string    `gorm:"size:255" json:"notes,omitempty"`

	MarkedBy  uint      `gorm:"not null" json:"marked_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}

func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusLeave:
		return true
	}
	return false
}
