package dto

type AttendanceEntryDTO struct {
	StudentID uint   `json:"student_id" validate:"required,gt=0"`
	Status    string `json:"status" validate:"required"`
	Notes     string `json:"notes" validate:"omitempty,max=255"`
}

type BulkMarkDTO struct {
	BatchID uint                 `json:"batch_id" validate:"required,gt=0"`
	Date    string               `json:"date" validate:"required"`
	Entries []AttendanceEntryDTO `json:"entries" validate:"required,min=1,dive"`
}
