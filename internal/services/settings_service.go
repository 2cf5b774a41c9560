package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
	"go.uber.org/zap"
)

var ErrInvalidSettingsDate = errors.New("invalid settings date")

type SettingsStore interface {
	Load(ownerID uint) (models.UserSettings, error)
	Merge(ownerID uint, updates map[string]any) (models.UserSettings, error)
}

type SettingsService struct {
	store    SettingsStore
	notifier ChangeNotifier
	logger   *zap.Logger
}

func NewSettingsService(store SettingsStore, notifier ChangeNotifier, logger *zap.Logger) *SettingsService {
	if notifier == nil {
		notifier = noopChangeNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{store: store, notifier: notifier, logger: logger}
}

func (service *SettingsService) LoadSettings(ownerID uint) (models.UserSettings, error) {
	settings, err := service.store.Load(ownerID)
	if err != nil {
		return models.UserSettings{}, wrapStoreError(err)
	}
	return settings, nil
}

// SaveSettings merges patch into the stored settings. A conception date also
// sets the due date to conception + 266 days.
func (service *SettingsService) SaveSettings(ownerID uint, patch models.SettingsPatch) (models.UserSettings, error) {
	updates, err := BuildSettingsUpdates(patch)
	if err != nil {
		return models.UserSettings{}, err
	}

	settings, err := service.store.Merge(ownerID, updates)
	if err != nil {
		service.logger.Error("merge settings failed", zap.Uint("owner_id", ownerID), zap.Error(err))
		return models.UserSettings{}, wrapStoreError(err)
	}

	service.notifier.Publish(NewChangeEvent(ownerID, ChangeKindSettings, ""))
	return settings, nil
}

func BuildSettingsUpdates(patch models.SettingsPatch) (map[string]any, error) {
	updates := make(map[string]any)

	if patch.PregnancyTrackingEnabled != nil {
		updates["pregnancy_tracking_enabled"] = *patch.PregnancyTrackingEnabled
	}

	if patch.DueDate != nil {
		dueDate, err := normalizeOptionalSettingsDate(*patch.DueDate)
		if err != nil {
			return nil, err
		}
		updates["due_date"] = dueDate
	}

	if patch.ConceptionDate != nil {
		conception, err := normalizeOptionalSettingsDate(*patch.ConceptionDate)
		if err != nil {
			return nil, err
		}
		updates["conception_date"] = conception
		if conception != nil {
			day, _ := ParseDay(*conception)
			derived := FormatDay(DueDateFromConception(day))
			updates["due_date"] = &derived
		}
	}

	return updates, nil
}

func normalizeOptionalSettingsDate(raw string) (*string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	day, err := ParseDay(value)
	if err != nil {
		return nil, ErrInvalidSettingsDate
	}
	formatted := FormatDay(day)
	return &formatted, nil
}

func (service *SettingsService) PregnancyStatus(ownerID uint, now time.Time, location *time.Location) (PregnancyStatus, error) {
	settings, err := service.LoadSettings(ownerID)
	if err != nil {
		return PregnancyStatus{}, err
	}
	return BuildPregnancyStatus(settings, TodayKey(now, location)), nil
}
