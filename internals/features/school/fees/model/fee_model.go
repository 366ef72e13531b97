package model

import "time"

// Fee status
const (
	FeeStatusPending = "pending"
	FeeStatusPaid    = "paid"
)

// FeeModel is one student's fee for one month of one batch. Month and year
// are stored explicitly (alongside the due date) so the unique constraint
// and the monthly grid need no date extraction.
type FeeModel struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uint `gorm:"not null;uniqueIndex:uq_fee_student_batch_month" json:"user_id"`
	BatchID uint `gorm:"not null;uniqueIndex:uq_fee_student_batch_month" json:"batch_id"`
	Month   int  `gorm:"not null;uniqueIndex:uq_fee_student_batch_month" json:"month"`
	Year    int  `gorm:"not null;uniqueIndex:uq_fee_student_batch_month" json:"year"`

	Amount   float64 `gorm:"not null" json:"amount"`
	LateFee  float64 `gorm:"not null;default:0" json:"late_fee"`
	Discount float64 `gorm:"not null;default:0" json:"discount"`
	Status   string  `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	Notes    string  `gorm:"size:255" json:"notes,omitempty"`

	DueDate  time.Time  `gorm:"not null" json:"due_date"`
	PaidDate *time.Time `json:"paid_date,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FeeModel) TableName() string {
	return "fees"
}
