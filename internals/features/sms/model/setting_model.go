package model

import (
	"time"

	"gorm.io/datatypes"
)

// SettingModel is a generic key → JSON settings row. SMS templates live
// under the "sms_templates" key.
type SettingModel struct {
	Key       string         `gorm:"primaryKey;size:100" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb" json:"value"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SettingModel) TableName() string {
	return "settings"
}

const SMSTemplatesKey = "sms_templates"

// SMSTemplate is one editable outgoing-message template, e.g.
// attendance_present or fee_reminder.
type SMSTemplate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}
