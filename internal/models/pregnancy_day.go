package models

import "time"

type DoctorAppointment struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

type PregnancyDay struct {
	ID                 uint                `gorm:"primaryKey" json:"-"`
	OwnerID            uint                `gorm:"not null;uniqueIndex:uidx_pregnancy_owner_date" json:"owner"`
	Date               string              `gorm:"size:10;not null;uniqueIndex:uidx_pregnancy_owner_date" json:"date"`
	PregnancyWeek      int                 `gorm:"not null;default:0" json:"pregnancyWeek"`
	Trimester          int                 `gorm:"not null;default:1" json:"trimester"`
	Symptoms           []string            `gorm:"serializer:json" json:"symptoms"`
	Notes              string              `json:"notes"`
	DoctorAppointments []DoctorAppointment `gorm:"serializer:json" json:"doctorAppointments"`
	BabyGrowthInfo     string              `json:"babyGrowthInfo"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

func (PregnancyDay) TableName() string { return "pregnancy_days" }
