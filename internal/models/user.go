package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// UserSettings is the per-owner settings document. Dates use DayDateLayout.
type UserSettings struct {
	OwnerID                  uint      `gorm:"primaryKey;autoIncrement:false" json:"owner"`
	ConceptionDate           *string   `gorm:"size:10" json:"conceptionDate"`
	DueDate                  *string   `gorm:"size:10" json:"dueDate"`
	PregnancyTrackingEnabled bool      `gorm:"not null;default:false" json:"pregnancyTrackingEnabled"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

func (UserSettings) TableName() string { return "user_settings" }

// SettingsPatch carries a partial settings update. Nil fields are left as
// stored; a pointer to an empty string clears a date.
type SettingsPatch struct {
	ConceptionDate           *string `json:"conceptionDate"`
	DueDate                  *string `json:"dueDate"`
	PregnancyTrackingEnabled *bool   `json:"pregnancyTrackingEnabled"`
}
