package services

import (
	"math"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

const (
	MaxGestationalWeek      = 40
	gestationDays           = 280
	conceptionToDueDateDays = 266
)

// CalculateWeek converts a conception date (fromConception) or a due date into
// a gestational week in [0, 40]. Week 0 means the pregnancy is still before
// its first full day counted from conception. today must be a UTC midnight.
func CalculateWeek(reference time.Time, fromConception bool, today time.Time) int {
	var week int
	if fromConception {
		elapsedDays := int(math.Floor(today.Sub(reference).Hours()/24)) + 1
		week = int(math.Ceil(float64(elapsedDays) / 7))
		if week < 1 {
			return 0
		}
	} else {
		remainingDays := int(math.Ceil(reference.Sub(today).Hours() / 24))
		elapsedDays := gestationDays - remainingDays
		if elapsedDays < 0 {
			elapsedDays = 0
		}
		week = int(math.Ceil(float64(elapsedDays) / 7))
	}
	return clampWeek(week)
}

func Trimester(week int) int {
	switch {
	case week <= 12:
		return 1
	case week <= 26:
		return 2
	default:
		return 3
	}
}

func DueDateFromConception(conception time.Time) time.Time {
	return conception.AddDate(0, 0, conceptionToDueDateDays)
}

// EffectiveWeek resolves the week from settings, preferring the conception
// date over the due date. ok is false when neither date is usable.
func EffectiveWeek(settings models.UserSettings, today time.Time) (int, bool) {
	if settings.ConceptionDate != nil {
		if conception, err := ParseDay(*settings.ConceptionDate); err == nil {
			return CalculateWeek(conception, true, today), true
		}
	}
	if settings.DueDate != nil {
		if dueDate, err := ParseDay(*settings.DueDate); err == nil {
			return CalculateWeek(dueDate, false, today), true
		}
	}
	return 0, false
}

// EffectiveDueDate prefers the date derived from conception.
func EffectiveDueDate(settings models.UserSettings) (time.Time, bool) {
	if settings.ConceptionDate != nil {
		if conception, err := ParseDay(*settings.ConceptionDate); err == nil {
			return DueDateFromConception(conception), true
		}
	}
	if settings.DueDate != nil {
		if dueDate, err := ParseDay(*settings.DueDate); err == nil {
			return dueDate, true
		}
	}
	return time.Time{}, false
}

type PregnancyStatus struct {
	Configured     bool    `json:"configured"`
	Week           int     `json:"week"`
	Trimester      int     `json:"trimester"`
	DueDate        *string `json:"dueDate"`
	DaysRemaining  int     `json:"daysRemaining"`
	BabyGrowthInfo string  `json:"babyGrowthInfo"`
}

func BuildPregnancyStatus(settings models.UserSettings, today time.Time) PregnancyStatus {
	week, ok := EffectiveWeek(settings, today)
	if !ok {
		return PregnancyStatus{Trimester: 1}
	}

	status := PregnancyStatus{
		Configured:     true,
		Week:           week,
		Trimester:      Trimester(week),
		BabyGrowthInfo: BabyGrowthInfo(week),
	}
	if dueDate, ok := EffectiveDueDate(settings); ok {
		dueKey := FormatDay(dueDate)
		status.DueDate = &dueKey
		if remaining := DaysBetween(today, dueDate); remaining > 0 {
			status.DaysRemaining = remaining
		}
	}
	return status
}

func clampWeek(week int) int {
	if week < 0 {
		return 0
	}
	if week > MaxGestationalWeek {
		return MaxGestationalWeek
	}
	return week
}
