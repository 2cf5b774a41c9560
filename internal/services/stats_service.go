package services

import (
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
	"go.uber.org/zap"
)

type StatsCycleDayReader interface {
	ListDays(ownerID uint) (map[string]models.CycleDay, error)
}

type StatsPregnancyDayReader interface {
	ListDays(ownerID uint) (map[string]models.PregnancyDay, error)
}

// CycleStatsCache stores computed statistics per owner, generation and
// calendar day. InvalidateOwner advances the owner's generation, so an entry
// filled from a read that started before the invalidation is never served.
type CycleStatsCache interface {
	Generation(ownerID uint) (uint64, error)
	Get(ownerID uint, generation uint64, day string) (CycleStats, bool, error)
	Set(ownerID uint, generation uint64, day string, stats CycleStats) error
	InvalidateOwner(ownerID uint) error
}

type NoopStatsCache struct{}

func (NoopStatsCache) Generation(uint) (uint64, error) { return 0, nil }

func (NoopStatsCache) Get(uint, uint64, string) (CycleStats, bool, error) {
	return CycleStats{}, false, nil
}

func (NoopStatsCache) Set(uint, uint64, string, CycleStats) error { return nil }

func (NoopStatsCache) InvalidateOwner(uint) error { return nil }

type StatsService struct {
	cycleDays     StatsCycleDayReader
	pregnancyDays StatsPregnancyDayReader
	cache         CycleStatsCache
	options       CycleStatsOptions
	location      *time.Location
	logger        *zap.Logger
}

func NewStatsService(cycleDays StatsCycleDayReader, pregnancyDays StatsPregnancyDayReader, cache CycleStatsCache, options CycleStatsOptions, location *time.Location, logger *zap.Logger) *StatsService {
	if cache == nil {
		cache = NoopStatsCache{}
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		cycleDays:     cycleDays,
		pregnancyDays: pregnancyDays,
		cache:         cache,
		options:       options,
		location:      location,
		logger:        logger,
	}
}

// BindInvalidation drops cached statistics whenever cycle data of an owner
// changes. The returned func stops listening.
func (service *StatsService) BindInvalidation(notifier ChangeNotifier) func() {
	return notifier.Subscribe(func(event ChangeEvent) {
		if event.Kind != ChangeKindCycle {
			return
		}
		if err := service.cache.InvalidateOwner(event.OwnerID); err != nil {
			service.logger.Warn("stats cache invalidation failed",
				zap.Uint("owner_id", event.OwnerID),
				zap.Error(err),
			)
		}
	})
}

func (service *StatsService) CycleStats(ownerID uint, now time.Time) (CycleStats, error) {
	today := TodayKey(now, service.location)
	todayKey := FormatDay(today)

	// The generation is read before the records so a write landing in
	// between bumps it and the entry stored below stays unreachable.
	generation, err := service.cache.Generation(ownerID)
	cacheUsable := err == nil
	if err != nil {
		service.logger.Warn("stats cache generation read failed", zap.Uint("owner_id", ownerID), zap.Error(err))
	}

	if cacheUsable {
		cached, hit, err := service.cache.Get(ownerID, generation, todayKey)
		if err != nil {
			service.logger.Warn("stats cache read failed", zap.Uint("owner_id", ownerID), zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	records, err := service.cycleDays.ListDays(ownerID)
	if err != nil {
		return CycleStats{}, err
	}
	stats := BuildCycleStats(ReconstructPeriodStarts(records), records, today, service.options)

	if cacheUsable {
		if err := service.cache.Set(ownerID, generation, todayKey, stats); err != nil {
			service.logger.Warn("stats cache write failed", zap.Uint("owner_id", ownerID), zap.Error(err))
		}
	}
	return stats, nil
}

func (service *StatsService) PeriodStarts(ownerID uint, descending bool) ([]PeriodStart, error) {
	records, err := service.cycleDays.ListDays(ownerID)
	if err != nil {
		return nil, err
	}
	starts := ReconstructPeriodStarts(records)
	if descending {
		return SortPeriodStartsDescending(starts), nil
	}
	return starts, nil
}

func (service *StatsService) TopCycleSymptoms(ownerID uint, limit int) ([]SymptomFrequency, error) {
	records, err := service.cycleDays.ListDays(ownerID)
	if err != nil {
		return nil, err
	}
	return TopCycleSymptoms(records, limit), nil
}

func (service *StatsService) TopPregnancySymptoms(ownerID uint, limit int) ([]SymptomFrequency, error) {
	records, err := service.pregnancyDays.ListDays(ownerID)
	if err != nil {
		return nil, err
	}
	return TopPregnancySymptoms(records, limit), nil
}
