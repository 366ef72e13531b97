package model

import "time"

// BatchModel is a class/cohort grouping of students.
type BatchModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:150;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	FeeAmount   float64   `gorm:"not null;default:0" json:"fee_amount"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BatchModel) TableName() string {
	return "batches"
}
