package models

import "time"

const (
	PeriodStatusNone    = "none"
	PeriodStatusStart   = "start"
	PeriodStatusOngoing = "ongoing"
	PeriodStatusEnd     = "end"
)

const (
	FlowNone     = ""
	FlowLight    = "light"
	FlowMedium   = "medium"
	FlowHeavy    = "heavy"
	FlowSpotting = "spotting"
)

const (
	DayTypeNone     = "none"
	DayTypePeriod   = "period"
	DayTypeSymptoms = "symptoms"
	DayTypeNotes    = "notes"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

// DayDateLayout is the storage and wire format of every day key.
const DayDateLayout = "2006-01-02"

type CycleDay struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	OwnerID      uint      `gorm:"not null;uniqueIndex:uidx_cycle_owner_date" json:"owner"`
	Date         string    `gorm:"size:10;not null;uniqueIndex:uidx_cycle_owner_date" json:"date"`
	PeriodStatus string    `gorm:"not null;default:none" json:"periodStatus"`
	Flow         string    `gorm:"not null;default:''" json:"flow"`
	Symptoms     []string  `gorm:"serializer:json" json:"symptoms"`
	Notes        string    `json:"notes"`
	Type         string    `gorm:"not null;default:none" json:"type"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (CycleDay) TableName() string { return "cycle_days" }

func (day CycleDay) HasPeriodStatus() bool {
	switch day.PeriodStatus {
	case PeriodStatusStart, PeriodStatusOngoing, PeriodStatusEnd:
		return true
	default:
		return false
	}
}
