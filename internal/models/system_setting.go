package models

import "time"

type SettingType string

const (
	SettingInt     SettingType = "int"
	SettingDecimal SettingType = "decimal"
	SettingText    SettingType = "text"
	SettingBool    SettingType = "bool"
	SettingJSON    SettingType = "json"
)

func (t SettingType) Valid() bool {
	switch t {
	case SettingInt, SettingDecimal, SettingText, SettingBool, SettingJSON:
		return true
	}
	return false
}

// SystemSetting stores a runtime configuration value editable by administrators.
type SystemSetting struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Key         string      `gorm:"size:100;not null;uniqueIndex" json:"key"`
	Value       string      `gorm:"type:text;not null" json:"value"`
	Description string      `gorm:"type:text" json:"description"`
	Type        SettingType `gorm:"size:20;not null;default:'text'" json:"type"`
	Category    string      `gorm:"size:50;not null;default:'general'" json:"category"`
	Public      bool        `gorm:"not null;default:false" json:"public"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
