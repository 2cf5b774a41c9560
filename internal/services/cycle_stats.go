package services

import (
	"math"
	"sort"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

const (
	PhaseMenstrual  = "Menstrual"
	PhaseFollicular = "Follicular"
	PhaseOvulation  = "Ovulation"
	PhaseLuteal     = "Luteal"
)

const (
	minPlausibleCycleGap = 14
	maxPlausibleCycleGap = 60
	maxPeriodLengthDays  = 14
)

type CycleStats struct {
	TotalCycles         int     `json:"totalCycles"`
	AverageCycleLength  int     `json:"averageCycleLength"`
	AveragePeriodLength int     `json:"averagePeriodLength"`
	LastPeriodStart     *string `json:"lastPeriodStart"`
	NextPredictedPeriod *string `json:"nextPredictedPeriod"`
	CurrentCycleDay     int     `json:"currentCycleDay"`
	CurrentPhase        string  `json:"currentPhase"`
}

type CycleStatsOptions struct {
	// PredictFromAverage predicts the next period from the computed average
	// cycle length instead of the fixed default.
	PredictFromAverage bool
}

func DefaultCycleStats() CycleStats {
	return CycleStats{
		TotalCycles:         0,
		AverageCycleLength:  models.DefaultCycleLength,
		AveragePeriodLength: models.DefaultPeriodLength,
		CurrentCycleDay:     1,
		CurrentPhase:        PhaseFollicular,
	}
}

// BuildCycleStats derives the published statistics from reconstructed period
// starts. records is only consulted for period length and may be nil. today
// must be a UTC midnight (see TodayKey).
func BuildCycleStats(starts []PeriodStart, records map[string]models.CycleDay, today time.Time, options CycleStatsOptions) CycleStats {
	stats := DefaultCycleStats()

	days := validStartDays(starts)
	if len(days) == 0 {
		return stats
	}

	gaps := PlausibleCycleGaps(days)
	if len(gaps) > 0 {
		stats.TotalCycles = len(gaps)
		stats.AverageCycleLength = roundedMean(gaps)
	}

	if periodLengths := completedPeriodLengths(days, records); len(periodLengths) > 0 {
		stats.AveragePeriodLength = roundedMean(periodLengths)
	}

	last := days[len(days)-1]
	lastKey := FormatDay(last)
	stats.LastPeriodStart = &lastKey

	predictionLength := models.DefaultCycleLength
	if options.PredictFromAverage && stats.TotalCycles > 0 {
		predictionLength = stats.AverageCycleLength
	}
	nextKey := FormatDay(last.AddDate(0, 0, predictionLength))
	stats.NextPredictedPeriod = &nextKey

	cycleDay := DaysBetween(last, today) + 1
	if cycleDay < 1 {
		cycleDay = 1
	}
	stats.CurrentCycleDay = cycleDay
	stats.CurrentPhase = PhaseForCycleDay(cycleDay)
	return stats
}

func PhaseForCycleDay(cycleDay int) string {
	switch {
	case cycleDay <= 5:
		return PhaseMenstrual
	case cycleDay <= 13:
		return PhaseFollicular
	case cycleDay <= 15:
		return PhaseOvulation
	default:
		return PhaseLuteal
	}
}

// PlausibleCycleGaps returns the day gaps between consecutive starts, dropping
// gaps outside [14, 60]. days must be sorted ascending.
func PlausibleCycleGaps(days []time.Time) []int {
	if len(days) < 2 {
		return nil
	}
	gaps := make([]int, 0, len(days)-1)
	for index := 1; index < len(days); index++ {
		gap := DaysBetween(days[index-1], days[index])
		if gap < minPlausibleCycleGap || gap > maxPlausibleCycleGap {
			continue
		}
		gaps = append(gaps, gap)
	}
	return gaps
}

func validStartDays(starts []PeriodStart) []time.Time {
	days := make([]time.Time, 0, len(starts))
	seen := make(map[string]struct{}, len(starts))
	for _, start := range starts {
		day, err := ParseDay(start.Date)
		if err != nil {
			continue
		}
		key := FormatDay(day)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// completedPeriodLengths measures each period that is closed by an explicit
// end marker within maxPeriodLengthDays of its start. The walk stops at the
// first day without a period status.
func completedPeriodLengths(days []time.Time, records map[string]models.CycleDay) []int {
	if len(records) == 0 {
		return nil
	}
	lengths := make([]int, 0, len(days))
	for _, start := range days {
		for offset := 0; offset < maxPeriodLengthDays; offset++ {
			record, ok := records[FormatDay(start.AddDate(0, 0, offset))]
			if !ok || !record.HasPeriodStatus() {
				break
			}
			if offset > 0 && record.PeriodStatus == models.PeriodStatusStart {
				break
			}
			if record.PeriodStatus == models.PeriodStatusEnd {
				lengths = append(lengths, offset+1)
				break
			}
		}
	}
	return lengths
}

func roundedMean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, value := range values {
		total += value
	}
	return int(math.Round(float64(total) / float64(len(values))))
}
