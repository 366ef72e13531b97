package dto

type BatchCreateDTO struct {
	Name        string  `json:"name" validate:"required,min=2,max=150"`
	Description string  `json:"description" validate:"max=500"`
	FeeAmount   float64 `json:"fee_amount" validate:"min=0"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type BatchUpdateDTO struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	FeeAmount   *float64 `json:"fee_amount,omitempty" validate:"omitempty,min=0"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type EnrollDTO struct {
	StudentID uint `json:"student_id" validate:"required"`
}
