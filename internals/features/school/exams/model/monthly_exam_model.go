package model

import "time"

// Monthly exam status
const (
	ExamStatusDraft     = "draft"
	ExamStatusActive    = "active"
	ExamStatusCompleted = "completed"
)

// MonthlyExamModel groups the subject exams of one batch for one month.
// TotalMarks is derived: it always equals the sum of the individual exam
// ceilings and is recomputed whenever an individual exam changes.
type MonthlyExamModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	BatchID     uint   `gorm:"not null;uniqueIndex:uq_monthly_exam_batch_month" json:"batch_id"`
	Month       int    `gorm:"not null;uniqueIndex:uq_monthly_exam_batch_month" json:"month"`
	Year        int    `gorm:"not null;uniqueIndex:uq_monthly_exam_batch_month" json:"year"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`

	TotalMarks int `gorm:"not null;default:0" json:"total_marks"`
	PassMarks  int `gorm:"not null;default:0" json:"pass_marks"`

	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	ShowResults bool      `gorm:"not null;default:false" json:"show_results"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	IndividualExams []IndividualExamModel `gorm:"foreignKey:MonthlyExamID" json:"individual_exams,omitempty"`
}

func (MonthlyExamModel) TableName() string {
	return "monthly_exams"
}

// IndividualExamModel is one subject exam inside a monthly exam. Marks is
// the ceiling; it must be > 0 (validated at creation, grading divides by it).
type IndividualExamModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MonthlyExamID uint      `gorm:"not null;index" json:"monthly_exam_id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Subject       string    `gorm:"size:100;not null" json:"subject"`
	Marks         int       `gorm:"not null" json:"marks"`
	ExamDate      time.Time `json:"exam_date"`
	Duration      int       `gorm:"not null;default:60" json:"duration"`
	OrderIndex    int       `gorm:"not null;default:0" json:"order_index"`
	IsCompleted   bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (IndividualExamModel) TableName() string {
	return "individual_exams"
}

// MonthlyMarkModel is one student's result on one individual exam.
// MarksObtained <= TotalMarks (the exam ceiling at entry time).
type MonthlyMarkModel struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	MonthlyExamID    uint    `gorm:"not null;uniqueIndex:uq_mark_exam_student_subject" json:"monthly_exam_id"`
	UserID           uint    `gorm:"not null;uniqueIndex:uq_mark_exam_student_subject" json:"user_id"`
	IndividualExamID uint    `gorm:"not null;uniqueIndex:uq_mark_exam_student_subject" json:"individual_exam_id"`
	MarksObtained    int     `gorm:"not null" json:"marks_obtained"`
	TotalMarks       int     `gorm:"not null" json:"total_marks"`
	Percentage       float64 `gorm:"not null" json:"percentage"`
	Grade            string  `gorm:"size:4;not null" json:"grade"`
	GPA              float64 `gorm:"not null" json:"gpa"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MonthlyMarkModel) TableName() string {
	return "monthly_marks"
}

// MonthlyRankingModel is fully deleted and regenerated on every
// recomputation, never updated in place.
type MonthlyRankingModel struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	MonthlyExamID uint    `gorm:"not null;uniqueIndex:uq_ranking_exam_student" json:"monthly_exam_id"`
	UserID        uint    `gorm:"not null;uniqueIndex:uq_ranking_exam_student" json:"user_id"`
	Position      int     `gorm:"not null" json:"position"`
	TotalMarks    int     `gorm:"not null" json:"total_marks"`
	PossibleMarks int     `gorm:"not null" json:"possible_marks"`
	Percentage    float64 `gorm:"not null" json:"percentage"`
	Grade         string  `gorm:"size:4;not null" json:"grade"`
	GPA           float64 `gorm:"not null" json:"gpa"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MonthlyRankingModel) TableName() string {
	return "monthly_rankings"
}
