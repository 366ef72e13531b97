package dto

/* ============================================
   Requests
============================================ */

type StudentCreateDTO struct {
	FirstName     string  `json:"first_name" validate:"required,min=1,max=50"`
	LastName      string  `json:"last_name" validate:"omitempty,max=50"`
	PhoneNumber   string  `json:"phoneNumber" validate:"required"`
	GuardianPhone string  `json:"guardian_phone" validate:"omitempty"`
	Email         string  `json:"email" validate:"omitempty,email"`
	BatchID       uint    `json:"batch_id" validate:"omitempty"`
	ExamFee       float64 `json:"exam_fee" validate:"omitempty,gte=0"`
	OthersFee     float64 `json:"others_fee" validate:"omitempty,gte=0"`
}

type StudentUpdateDTO struct {
	FirstName     *string  `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName      *string  `json:"last_name" validate:"omitempty,max=50"`
	PhoneNumber   *string  `json:"phoneNumber" validate:"omitempty"`
	GuardianPhone *string  `json:"guardian_phone" validate:"omitempty"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	ExamFee       *float64 `json:"exam_fee" validate:"omitempty,gte=0"`
	OthersFee     *float64 `json:"others_fee" validate:"omitempty,gte=0"`
	IsActive      *bool    `json:"is_active"`
}

type ArchiveDTO struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}
