package models

import "time"

// SettingBankAccountInfo holds free-text transfer instructions shown when no
// bank account rows are configured.
const SettingBankAccountInfo = "bank_account_info"

type SiteSetting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"type:varchar(128);not null;uniqueIndex" json:"key"`
	Value       *string   `json:"value,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
