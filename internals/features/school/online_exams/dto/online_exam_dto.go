package dto

type OnlineExamCreateDTO struct {
	BatchID        uint    `json:"batch_id" validate:"required,gt=0"`
	Title          string  `json:"title" validate:"required,min=1,max=200"`
	Subject        string  `json:"subject" validate:"required,min=1,max=100"`
	ChapterName    string  `json:"chapter_name" validate:"omitempty,max=200"`
	Duration       int     `json:"duration" validate:"required,gt=0"`
	TotalQuestions int     `json:"total_questions" validate:"required,gt=0"`
	PassPercentage float64 `json:"pass_percentage" validate:"omitempty,gte=0,lte=100"`
	AllowRetake    bool    `json:"allow_retake"`
}

type OnlineExamUpdateDTO struct {
	Title          *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Subject        *string  `json:"subject" validate:"omitempty,min=1,max=100"`
	ChapterName    *string  `json:"chapter_name" validate:"omitempty,max=200"`
	Duration       *int     `json:"duration" validate:"omitempty,gt=0"`
	TotalQuestions *int     `json:"total_questions" validate:"omitempty,gt=0"`
	PassPercentage *float64 `json:"pass_percentage" validate:"omitempty,gte=0,lte=100"`
	AllowRetake    *bool    `json:"allow_retake"`
	IsActive       *bool    `json:"is_active"`
}

type OnlineQuestionCreateDTO struct {
	QuestionText  string `json:"question_text" validate:"required,min=1"`
	OptionA       string `json:"option_a" validate:"required,max=500"`
	OptionB       string `json:"option_b" validate:"required,max=500"`
	OptionC       string `json:"option_c" validate:"required,max=500"`
	OptionD       string `json:"option_d" validate:"required,max=500"`
	CorrectOption string `json:"correct_option" validate:"required,oneof=A B C D"`
	Marks         int    `json:"marks" validate:"omitempty,gt=0"`
	OrderIndex    int    `json:"order_index" validate:"omitempty,gte=0"`
}

type OnlineQuestionUpdateDTO struct {
	QuestionText  *string `json:"question_text" validate:"omitempty,min=1"`
	OptionA       *string `json:"option_a" validate:"omitempty,max=500"`
	OptionB       *string `json:"option_b" validate:"omitempty,max=500"`
	OptionC       *string `json:"option_c" validate:"omitempty,max=500"`
	OptionD       *string `json:"option_d" validate:"omitempty,max=500"`
	CorrectOption *string `json:"correct_option" validate:"omitempty,oneof=A B C D"`
	Marks         *int    `json:"marks" validate:"omitempty,gt=0"`
	OrderIndex    *int    `json:"order_index" validate:"omitempty,gte=0"`
}
