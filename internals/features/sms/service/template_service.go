package service

import (
	"errors"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	smsModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/sms/model"
)

var ErrTemplateNotFound = errors.New("template not found")

// defaultTemplates seed the settings row the first time templates are read.
var defaultTemplates = []smsModel.SMSTemplate{
	{ID: "attendance_present", Name: "Attendance Present", Message: "Dear guardian, {student} was present today."},
	{ID: "attendance_absent", Name: "Attendance Absent", Message: "Dear guardian, {student} was absent today."},
	{ID: "fee_reminder", Name: "Fee Reminder", Message: "Dear guardian, monthly fee for {student} ({month}) is due. Amount: {amount} Tk."},
	{ID: "exam_result", Name: "Exam Result", Message: "Dear guardian, {student} scored {marks}/{total} ({grade}) in {exam}."},
}

// LoadTemplates reads the template list from settings, seeding defaults
// when the row does not exist yet.
func LoadTemplates(db *gorm.DB) ([]smsModel.SMSTemplate, error) {
	var row smsModel.SettingModel
	err := db.First(&row, "key = ?", smsModel.SMSTemplatesKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := saveTemplates(db, defaultTemplates); err != nil {
			return nil, err
		}
		out := make([]smsModel.SMSTemplate, len(defaultTemplates))
		copy(out, defaultTemplates)
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	var templates []smsModel.SMSTemplate
	if err := sonic.Unmarshal(row.Value, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// UpdateTemplate replaces one template's message (and optionally name)
// inside the settings row.
func UpdateTemplate(db *gorm.DB, id, name, message string) (*smsModel.SMSTemplate, error) {
	templates, err := LoadTemplates(db)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range templates {
		if templates[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrTemplateNotFound
	}

	templates[idx].Message = message
	if name != "" {
		templates[idx].Name = name
	}
	if err := saveTemplates(db, templates); err != nil {
		return nil, err
	}
	return &templates[idx], nil
}

func saveTemplates(db *gorm.DB, templates []smsModel.SMSTemplate) error {
	raw, err := sonic.Marshal(templates)
	if err != nil {
		return err
	}
	row := smsModel.SettingModel{Key: smsModel.SMSTemplatesKey, Value: raw}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}
