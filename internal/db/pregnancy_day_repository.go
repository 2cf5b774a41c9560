package db

import (
	"github.com/terraincognita07/wellnest/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PregnancyDayRepository struct {
	database *gorm.DB
}

func NewPregnancyDayRepository(database *gorm.DB) *PregnancyDayRepository {
	return &PregnancyDayRepository{database: database}
}

func (repo *PregnancyDayRepository) Upsert(entry *models.PregnancyDay) (models.PregnancyDay, error) {
	if entry.Symptoms == nil {
		entry.Symptoms = []string{}
	}
	if entry.DoctorAppointments == nil {
		entry.DoctorAppointments = []models.DoctorAppointment{}
	}
	err := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"pregnancy_week", "trimester", "symptoms", "notes", "doctor_appointments", "baby_growth_info", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return models.PregnancyDay{}, err
	}

	stored, _, err := repo.FindByOwnerAndDate(entry.OwnerID, entry.Date)
	return stored, err
}

func (repo *PregnancyDayRepository) FindByOwnerAndDate(ownerID uint, date string) (models.PregnancyDay, bool, error) {
	entry := models.PregnancyDay{}
	result := repo.database.
		Where("owner_id = ? AND date = ?", ownerID, date).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.PregnancyDay{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.PregnancyDay{}, false, nil
	}
	return entry, true, nil
}

func (repo *PregnancyDayRepository) ListByOwner(ownerID uint) ([]models.PregnancyDay, error) {
	days := make([]models.PregnancyDay, 0)
	if err := repo.database.Where("owner_id = ?", ownerID).Order("date ASC, id ASC").Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *PregnancyDayRepository) ListDatesByMonth(ownerID uint, month string) ([]string, error) {
	dates := make([]string, 0)
	if err := repo.database.Model(&models.PregnancyDay{}).
		Where("owner_id = ? AND date LIKE ?", ownerID, monthPattern(month)).
		Order("date ASC").
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (repo *PregnancyDayRepository) DeleteByOwnerAndDate(ownerID uint, date string) error {
	return repo.database.Where("owner_id = ? AND date = ?", ownerID, date).Delete(&models.PregnancyDay{}).Error
}
