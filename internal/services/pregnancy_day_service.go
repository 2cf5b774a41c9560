package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
	"go.uber.org/zap"
)

var (
	ErrPregnancyNotConfigured = errors.New("pregnancy reference date is not set")
	ErrInvalidAppointment     = errors.New("invalid doctor appointment")
	ErrPastAppointmentRemoval = errors.New("past appointments cannot be removed")
)

type PregnancyDayStore interface {
	Upsert(entry *models.PregnancyDay) (models.PregnancyDay, error)
	FindByOwnerAndDate(ownerID uint, date string) (models.PregnancyDay, bool, error)
	ListByOwner(ownerID uint) ([]models.PregnancyDay, error)
	ListDatesByMonth(ownerID uint, month string) ([]string, error)
	DeleteByOwnerAndDate(ownerID uint, date string) error
}

type PregnancySettingsReader interface {
	LoadSettings(ownerID uint) (models.UserSettings, error)
}

type PregnancyDayInput struct {
	Symptoms           []string                   `json:"symptoms"`
	Notes              string                     `json:"notes"`
	DoctorAppointments []models.DoctorAppointment `json:"doctorAppointments"`
}

type PregnancyDayService struct {
	store    PregnancyDayStore
	settings PregnancySettingsReader
	notifier ChangeNotifier
	location *time.Location
	logger   *zap.Logger
}

func NewPregnancyDayService(store PregnancyDayStore, settings PregnancySettingsReader, notifier ChangeNotifier, location *time.Location, logger *zap.Logger) *PregnancyDayService {
	if notifier == nil {
		notifier = noopChangeNotifier{}
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PregnancyDayService{
		store:    store,
		settings: settings,
		notifier: notifier,
		location: location,
		logger:   logger,
	}
}

func NormalizeAppointments(appointments []models.DoctorAppointment) ([]models.DoctorAppointment, error) {
	normalized := make([]models.DoctorAppointment, 0, len(appointments))
	for _, appointment := range appointments {
		day, err := ParseDay(appointment.Date)
		if err != nil {
			return nil, ErrInvalidAppointment
		}
		description := strings.TrimSpace(appointment.Description)
		if description == "" {
			return nil, ErrInvalidAppointment
		}
		normalized = append(normalized, models.DoctorAppointment{
			Date:        FormatDay(day),
			Description: description,
		})
	}
	return normalized, nil
}

// RemovedPastAppointments lists appointments dated before today that exist in
// previous but not in next.
func RemovedPastAppointments(previous []models.DoctorAppointment, next []models.DoctorAppointment, today time.Time) []models.DoctorAppointment {
	kept := make(map[models.DoctorAppointment]int, len(next))
	for _, appointment := range next {
		kept[appointment]++
	}

	removed := make([]models.DoctorAppointment, 0)
	for _, appointment := range previous {
		if kept[appointment] > 0 {
			kept[appointment]--
			continue
		}
		day, err := ParseDay(appointment.Date)
		if err != nil {
			continue
		}
		if day.Before(today) {
			removed = append(removed, appointment)
		}
	}
	return removed
}

// SaveDay replaces the pregnancy record for (ownerID, date). Week, trimester
// and the growth snapshot are derived from the owner's settings at save time.
func (service *PregnancyDayService) SaveDay(ownerID uint, rawDate string, input PregnancyDayInput, now time.Time) (models.PregnancyDay, error) {
	day, err := ParseDay(rawDate)
	if err != nil {
		return models.PregnancyDay{}, err
	}
	appointments, err := NormalizeAppointments(input.DoctorAppointments)
	if err != nil {
		return models.PregnancyDay{}, err
	}

	settings, err := service.settings.LoadSettings(ownerID)
	if err != nil {
		return models.PregnancyDay{}, err
	}
	today := TodayKey(now, service.location)
	week, ok := EffectiveWeek(settings, today)
	if !ok {
		return models.PregnancyDay{}, ErrPregnancyNotConfigured
	}

	dateKey := FormatDay(day)
	previous, found, err := service.store.FindByOwnerAndDate(ownerID, dateKey)
	if err != nil {
		return models.PregnancyDay{}, wrapStoreError(err)
	}
	if found && len(RemovedPastAppointments(previous.DoctorAppointments, appointments, today)) > 0 {
		return models.PregnancyDay{}, ErrPastAppointmentRemoval
	}

	entry := models.PregnancyDay{
		OwnerID:            ownerID,
		Date:               dateKey,
		PregnancyWeek:      week,
		Trimester:          Trimester(week),
		Symptoms:           NormalizeSymptoms(input.Symptoms),
		Notes:              TrimDayNotes(input.Notes),
		DoctorAppointments: appointments,
		BabyGrowthInfo:     BabyGrowthInfo(week),
	}
	stored, err := service.store.Upsert(&entry)
	if err != nil {
		service.logger.Error("upsert pregnancy day failed",
			zap.Uint("owner_id", ownerID),
			zap.String("date", dateKey),
			zap.Error(err),
		)
		return models.PregnancyDay{}, wrapStoreError(err)
	}

	service.notifier.Publish(NewChangeEvent(ownerID, ChangeKindPregnancy, dateKey))
	return stored, nil
}

func (service *PregnancyDayService) GetDay(ownerID uint, rawDate string) (models.PregnancyDay, bool, error) {
	day, err := ParseDay(rawDate)
	if err != nil {
		return models.PregnancyDay{}, false, err
	}
	entry, found, err := service.store.FindByOwnerAndDate(ownerID, FormatDay(day))
	if err != nil {
		return models.PregnancyDay{}, false, wrapStoreError(err)
	}
	return entry, found, nil
}

func (service *PregnancyDayService) ListDays(ownerID uint) (map[string]models.PregnancyDay, error) {
	days, err := service.store.ListByOwner(ownerID)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	indexed := make(map[string]models.PregnancyDay, len(days))
	for _, day := range days {
		indexed[day.Date] = day
	}
	return indexed, nil
}

func (service *PregnancyDayService) DeleteDay(ownerID uint, rawDate string) error {
	day, err := ParseDay(rawDate)
	if err != nil {
		return err
	}
	dateKey := FormatDay(day)
	if err := service.store.DeleteByOwnerAndDate(ownerID, dateKey); err != nil {
		return wrapStoreError(err)
	}
	service.notifier.Publish(NewChangeEvent(ownerID, ChangeKindPregnancy, dateKey))
	return nil
}

func (service *PregnancyDayService) DeleteMonth(ownerID uint, rawMonth string) ([]DeleteResult, error) {
	month, err := NormalizeMonthKey(rawMonth)
	if err != nil {
		return nil, err
	}
	dates, err := service.store.ListDatesByMonth(ownerID, month)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	results := deleteDatesSequentially(dates, func(date string) error {
		return service.store.DeleteByOwnerAndDate(ownerID, date)
	})
	if failed := DeleteResultsFailed(results); failed > 0 {
		service.logger.Warn("pregnancy month delete partially failed",
			zap.Uint("owner_id", ownerID),
			zap.String("month", month),
			zap.Int("failed", failed),
			zap.Int("total", len(results)),
		)
	}
	if len(results) > 0 {
		service.notifier.Publish(NewChangeEvent(ownerID, ChangeKindPregnancy, ""))
	}
	return results, nil
}
