package db

import (
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

func (repo *SettingsRepository) Load(ownerID uint) (models.UserSettings, error) {
	settings := models.UserSettings{}
	result := repo.database.Where("owner_id = ?", ownerID).Limit(1).Find(&settings)
	if result.Error != nil {
		return models.UserSettings{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.UserSettings{OwnerID: ownerID}, nil
	}
	return settings, nil
}

// Merge writes only the columns present in updates, creating the settings row
// on first use.
func (repo *SettingsRepository) Merge(ownerID uint, updates map[string]any) (models.UserSettings, error) {
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		seed := models.UserSettings{OwnerID: ownerID, UpdatedAt: time.Now().UTC()}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		withTimestamp := make(map[string]any, len(updates)+1)
		for column, value := range updates {
			withTimestamp[column] = value
		}
		withTimestamp["updated_at"] = time.Now().UTC()
		return tx.Model(&models.UserSettings{}).Where("owner_id = ?", ownerID).Updates(withTimestamp).Error
	})
	if err != nil {
		return models.UserSettings{}, err
	}
	return repo.Load(ownerID)
}
