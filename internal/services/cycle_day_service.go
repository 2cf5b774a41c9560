package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
	"go.uber.org/zap"
)

var (
	ErrInvalidPeriodStatus = errors.New("invalid period status")
	ErrInvalidFlow         = errors.New("invalid flow")
	ErrFuturePeriodDate    = errors.New("period data cannot be recorded for a future date")
)

type CycleDayStore interface {
	Upsert(entry *models.CycleDay) (models.CycleDay, error)
	FindByOwnerAndDate(ownerID uint, date string) (models.CycleDay, bool, error)
	ListByOwner(ownerID uint) ([]models.CycleDay, error)
	ListByOwnerRange(ownerID uint, from string, to string) ([]models.CycleDay, error)
	ListDatesByMonth(ownerID uint, month string) ([]string, error)
	DeleteByOwnerAndDate(ownerID uint, date string) error
}

type CycleDayInput struct {
	PeriodStatus string   `json:"periodStatus"`
	Flow         string   `json:"flow"`
	Symptoms     []string `json:"symptoms"`
	Notes        string   `json:"notes"`
}

type CycleDayService struct {
	store    CycleDayStore
	notifier ChangeNotifier
	location *time.Location
	logger   *zap.Logger
}

func NewCycleDayService(store CycleDayStore, notifier ChangeNotifier, location *time.Location, logger *zap.Logger) *CycleDayService {
	if notifier == nil {
		notifier = noopChangeNotifier{}
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CycleDayService{
		store:    store,
		notifier: notifier,
		location: location,
		logger:   logger,
	}
}

func NormalizeCycleDayInput(input CycleDayInput) (CycleDayInput, error) {
	input.PeriodStatus = strings.ToLower(strings.TrimSpace(input.PeriodStatus))
	if input.PeriodStatus == "" {
		input.PeriodStatus = models.PeriodStatusNone
	}
	if !IsValidPeriodStatus(input.PeriodStatus) {
		return input, ErrInvalidPeriodStatus
	}

	input.Flow = strings.ToLower(strings.TrimSpace(input.Flow))
	if input.Flow == "none" {
		input.Flow = models.FlowNone
	}
	if !IsValidFlow(input.Flow) {
		return input, ErrInvalidFlow
	}

	input.Symptoms = NormalizeSymptoms(input.Symptoms)
	input.Notes = TrimDayNotes(input.Notes)
	return input, nil
}

func IsValidPeriodStatus(status string) bool {
	switch status {
	case models.PeriodStatusNone, models.PeriodStatusStart, models.PeriodStatusOngoing, models.PeriodStatusEnd:
		return true
	default:
		return false
	}
}

func IsValidFlow(flow string) bool {
	switch flow {
	case models.FlowNone, models.FlowLight, models.FlowMedium, models.FlowHeavy, models.FlowSpotting:
		return true
	default:
		return false
	}
}

// ClassifyCycleDay derives the informational type tag of a day.
func ClassifyCycleDay(input CycleDayInput) string {
	switch {
	case input.PeriodStatus != models.PeriodStatusNone || input.Flow != models.FlowNone:
		return models.DayTypePeriod
	case len(input.Symptoms) > 0:
		return models.DayTypeSymptoms
	case strings.TrimSpace(input.Notes) != "":
		return models.DayTypeNotes
	default:
		return models.DayTypeNone
	}
}

// SaveDay validates input and replaces the whole record stored for
// (ownerID, date).
func (service *CycleDayService) SaveDay(ownerID uint, rawDate string, input CycleDayInput, now time.Time) (models.CycleDay, error) {
	day, err := ParseDay(rawDate)
	if err != nil {
		return models.CycleDay{}, err
	}
	input, err = NormalizeCycleDayInput(input)
	if err != nil {
		return models.CycleDay{}, err
	}

	hasPeriodData := input.PeriodStatus != models.PeriodStatusNone || input.Flow != models.FlowNone
	if hasPeriodData && day.After(TodayKey(now, service.location)) {
		return models.CycleDay{}, ErrFuturePeriodDate
	}

	dateKey := FormatDay(day)
	entry := models.CycleDay{
		OwnerID:      ownerID,
		Date:         dateKey,
		PeriodStatus: input.PeriodStatus,
		Flow:         input.Flow,
		Symptoms:     input.Symptoms,
		Notes:        input.Notes,
		Type:         ClassifyCycleDay(input),
	}
	stored, err := service.store.Upsert(&entry)
	if err != nil {
		service.logger.Error("upsert cycle day failed",
			zap.Uint("owner_id", ownerID),
			zap.String("date", dateKey),
			zap.Error(err),
		)
		return models.CycleDay{}, wrapStoreError(err)
	}

	service.notifier.Publish(NewChangeEvent(ownerID, ChangeKindCycle, dateKey))
	return stored, nil
}

func (service *CycleDayService) GetDay(ownerID uint, rawDate string) (models.CycleDay, bool, error) {
	day, err := ParseDay(rawDate)
	if err != nil {
		return models.CycleDay{}, false, err
	}
	entry, found, err := service.store.FindByOwnerAndDate(ownerID, FormatDay(day))
	if err != nil {
		return models.CycleDay{}, false, wrapStoreError(err)
	}
	return entry, found, nil
}

func (service *CycleDayService) ListDays(ownerID uint) (map[string]models.CycleDay, error) {
	days, err := service.store.ListByOwner(ownerID)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	return CycleDaysByDate(days), nil
}

// ListDaysInRange reads an inclusive date range. When the store cannot serve
// the ranged query it falls back to the full owner list filtered in memory.
func (service *CycleDayService) ListDaysInRange(ownerID uint, rawFrom string, rawTo string) ([]models.CycleDay, error) {
	from, err := normalizeRangeBound(rawFrom)
	if err != nil {
		return nil, err
	}
	to, err := normalizeRangeBound(rawTo)
	if err != nil {
		return nil, err
	}

	days, err := service.store.ListByOwnerRange(ownerID, from, to)
	if err == nil {
		return days, nil
	}
	if !errors.Is(err, ErrUnsupportedQuery) {
		return nil, wrapStoreError(err)
	}

	service.logger.Warn("ranged cycle query unsupported, filtering full list",
		zap.Uint("owner_id", ownerID),
		zap.Error(err),
	)
	all, err := service.store.ListByOwner(ownerID)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	filtered := make([]models.CycleDay, 0, len(all))
	for _, day := range all {
		if from != "" && day.Date < from {
			continue
		}
		if to != "" && day.Date > to {
			continue
		}
		filtered = append(filtered, day)
	}
	return filtered, nil
}

// DeleteDay removes the record for (ownerID, date). Missing records are not
// an error.
func (service *CycleDayService) DeleteDay(ownerID uint, rawDate string) error {
	day, err := ParseDay(rawDate)
	if err != nil {
		return err
	}
	dateKey := FormatDay(day)
	if err := service.store.DeleteByOwnerAndDate(ownerID, dateKey); err != nil {
		return wrapStoreError(err)
	}
	service.notifier.Publish(NewChangeEvent(ownerID, ChangeKindCycle, dateKey))
	return nil
}

// DeleteMonth removes every record whose date starts with month (YYYY-MM),
// one key at a time.
func (service *CycleDayService) DeleteMonth(ownerID uint, rawMonth string) ([]DeleteResult, error) {
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
		service.logger.Warn("cycle month delete partially failed",
			zap.Uint("owner_id", ownerID),
			zap.String("month", month),
			zap.Int("failed", failed),
			zap.Int("total", len(results)),
		)
	}
	if len(results) > 0 {
		service.notifier.Publish(NewChangeEvent(ownerID, ChangeKindCycle, ""))
	}
	return results, nil
}
