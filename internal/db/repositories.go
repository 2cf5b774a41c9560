package db

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/wellnest/internal/services"
	"gorm.io/gorm"
)

type Repositories struct {
	Users         *UserRepository
	CycleDays     *CycleDayRepository
	PregnancyDays *PregnancyDayRepository
	Settings      *SettingsRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		CycleDays:     NewCycleDayRepository(database),
		PregnancyDays: NewPregnancyDayRepository(database),
		Settings:      NewSettingsRepository(database),
	}
}

var unsupportedQueryMarkers = []string{
	"no such index",
	"no such column",
	"does not exist",
	"not supported",
}

// classifyQueryError tags errors caused by a query shape the backend cannot
// serve so callers can fall back to an unfiltered read.
func classifyQueryError(err error) error {
	if err == nil {
		return nil
	}
	message := strings.ToLower(err.Error())
	for _, marker := range unsupportedQueryMarkers {
		if strings.Contains(message, marker) {
			return fmt.Errorf("%w: %v", services.ErrUnsupportedQuery, err)
		}
	}
	return err
}

func monthPattern(month string) string {
	return strings.TrimSpace(month) + "-%"
}
