package model

import "time"

// OnlineExamModel is an MCQ exam taken through the app. An exam becomes
// visible to students only when is_published and is_active are both true.
type OnlineExamModel struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	BatchID        uint    `gorm:"not null;index" json:"batch_id"`
	Title          string  `gorm:"size:200;not null" json:"title"`
	Subject        string  `gorm:"size:100;not null" json:"subject"`
	ChapterName    string  `gorm:"size:200" json:"chapter_name"`
	Duration       int     `gorm:"not null" json:"duration"`
	TotalQuestions int     `gorm:"not null" json:"total_questions"`
	PassPercentage float64 `gorm:"not null;default:40" json:"pass_percentage"`
	AllowRetake    bool    `gorm:"not null;default:false" json:"allow_retake"`
	IsActive       bool    `gorm:"not null;default:false" json:"is_active"`
	IsPublished    bool    `gorm:"not null;default:false" json:"is_published"`
	CreatedBy      uint    `gorm:"not null" json:"created_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []OnlineQuestionModel `gorm:"foreignKey:ExamID" json:"questions,omitempty"`
}

func (OnlineExamModel) TableName() string {
	return "online_exams"
}

type OnlineQuestionModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ExamID        uint      `gorm:"not null;index" json:"exam_id"`
	QuestionText  string    `gorm:"type:text;not null" json:"question_text"`
	OptionA       string    `gorm:"size:500;not null" json:"option_a"`
	OptionB       string    `gorm:"size:500;not null" json:"option_b"`
	OptionC       string    `gorm:"size:500;not null" json:"option_c"`
	OptionD       string    `gorm:"size:500;not null" json:"option_d"`
	CorrectOption string    `gorm:"size:1;not null" json:"correct_option"`
	Marks         int       `gorm:"not null;default:1" json:"marks"`
	OrderIndex    int       `gorm:"not null;default:0" json:"order_index"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (OnlineQuestionModel) TableName() string {
	return "online_questions"
}
