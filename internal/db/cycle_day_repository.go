package db

import (
	"github.com/terraincognita07/wellnest/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CycleDayRepository struct {
	database *gorm.DB
}

func NewCycleDayRepository(database *gorm.DB) *CycleDayRepository {
	return &CycleDayRepository{database: database}
}

func (repo *CycleDayRepository) Upsert(entry *models.CycleDay) (models.CycleDay, error) {
	if entry.Symptoms == nil {
		entry.Symptoms = []string{}
	}
	err := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"period_status", "flow", "symptoms", "notes", "type", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return models.CycleDay{}, err
	}

	stored, _, err := repo.FindByOwnerAndDate(entry.OwnerID, entry.Date)
	return stored, err
}

func (repo *CycleDayRepository) FindByOwnerAndDate(ownerID uint, date string) (models.CycleDay, bool, error) {
	entry := models.CycleDay{}
	result := repo.database.
		Where("owner_id = ? AND date = ?", ownerID, date).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.CycleDay{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleDay{}, false, nil
	}
	return entry, true, nil
}

func (repo *CycleDayRepository) ListByOwner(ownerID uint) ([]models.CycleDay, error) {
	days := make([]models.CycleDay, 0)
	if err := repo.database.Where("owner_id = ?", ownerID).Order("date ASC, id ASC").Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *CycleDayRepository) ListByOwnerRange(ownerID uint, from string, to string) ([]models.CycleDay, error) {
	query := repo.database.Model(&models.CycleDay{}).Where("owner_id = ?", ownerID)
	if from != "" {
		query = query.Where("date >= ?", from)
	}
	if to != "" {
		query = query.Where("date <= ?", to)
	}

	days := make([]models.CycleDay, 0)
	if err := query.Order("date ASC, id ASC").Find(&days).Error; err != nil {
		return nil, classifyQueryError(err)
	}
	return days, nil
}

func (repo *CycleDayRepository) ListDatesByMonth(ownerID uint, month string) ([]string, error) {
	dates := make([]string, 0)
	if err := repo.database.Model(&models.CycleDay{}).
		Where("owner_id = ? AND date LIKE ?", ownerID, monthPattern(month)).
		Order("date ASC").
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (repo *CycleDayRepository) DeleteByOwnerAndDate(ownerID uint, date string) error {
	return repo.database.Where("owner_id = ? AND date = ?", ownerID, date).Delete(&models.CycleDay{}).Error
}
