package dto

import (
	"time"

	examService "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/exams/service"
)

/* =======================
   Request DTO
======================= */

type MonthlyExamCreateDTO struct {
	BatchID     uint      `json:"batch_id" validate:"required"`
	Month       int       `json:"month" validate:"required,min=1,max=12"`
	Year        int       `json:"year" validate:"required,min=2020,max=2035"`
	Title       string    `json:"title" validate:"required,min=3,max=200"`
	Description string    `json:"description" validate:"max=500"`
	PassMarks   int       `json:"pass_marks" validate:"min=0"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status" validate:"omitempty,oneof=draft active completed"`
	ShowResults *bool     `json:"show_results,omitempty"`
}

type MonthlyExamUpdateDTO struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	PassMarks   *int       `json:"pass_marks,omitempty" validate:"omitempty,min=0"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=draft active completed"`
	ShowResults *bool      `json:"show_results,omitempty"`
}

// Ceiling must be positive: grading divides by it, so a zero-mark exam is
// rejected here rather than guarded at grading time.
type IndividualExamCreateDTO struct {
	Title      string    `json:"title" validate:"required,min=2,max=200"`
	Subject    string    `json:"subject" validate:"required,min=2,max=100"`
	Marks      int       `json:"marks" validate:"required,gt=0"`
	ExamDate   time.Time `json:"exam_date"`
	Duration   int       `json:"duration" validate:"omitempty,gt=0"`
	OrderIndex int       `json:"order_index" validate:"min=0"`
}

type IndividualExamUpdateDTO struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Subject     *string    `json:"subject,omitempty" validate:"omitempty,min=2,max=100"`
	Marks       *int       `json:"marks,omitempty" validate:"omitempty,gt=0"`
	ExamDate    *time.Time `json:"exam_date,omitempty"`
	Duration    *int       `json:"duration,omitempty" validate:"omitempty,gt=0"`
	OrderIndex  *int       `json:"order_index,omitempty" validate:"omitempty,min=0"`
	IsCompleted *bool      `json:"is_completed,omitempty"`
}

type SaveMarksDTO struct {
	Marks []examService.MarkEntry `json:"marks" validate:"required,min=1,dive"`
}
