package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

type PeriodStart struct {
	Date         string    `json:"date"`
	PeriodStatus string    `json:"periodStatus"`
	Day          time.Time `json:"-"`
}

// ReconstructPeriodStarts returns the period starts found in records in
// ascending date order. Every explicit start counts; in addition the earliest
// period-status day of each calendar month is an implied start. Records with
// unparseable dates are ignored.
func ReconstructPeriodStarts(records map[string]models.CycleDay) []PeriodStart {
	if len(records) == 0 {
		return []PeriodStart{}
	}

	startsByDate := make(map[string]PeriodStart)
	earliestByMonth := make(map[string]PeriodStart)

	for key, record := range records {
		if !record.HasPeriodStatus() {
			continue
		}
		dateKey := record.Date
		if dateKey == "" {
			dateKey = key
		}
		day, err := ParseDay(dateKey)
		if err != nil {
			continue
		}
		dateKey = FormatDay(day)

		candidate := PeriodStart{Date: dateKey, PeriodStatus: record.PeriodStatus, Day: day}
		if record.PeriodStatus == models.PeriodStatusStart {
			startsByDate[dateKey] = candidate
		}

		month := dateKey[:7]
		earliest, ok := earliestByMonth[month]
		if !ok || day.Before(earliest.Day) {
			earliestByMonth[month] = candidate
		}
	}

	for _, implied := range earliestByMonth {
		if _, explicit := startsByDate[implied.Date]; explicit {
			continue
		}
		startsByDate[implied.Date] = implied
	}

	starts := make([]PeriodStart, 0, len(startsByDate))
	for _, start := range startsByDate {
		starts = append(starts, start)
	}
	sortPeriodStartsAscending(starts)
	return starts
}

func SortPeriodStartsDescending(starts []PeriodStart) []PeriodStart {
	sorted := make([]PeriodStart, len(starts))
	copy(sorted, starts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Day.After(sorted[j].Day)
	})
	return sorted
}

func sortPeriodStartsAscending(starts []PeriodStart) {
	sort.Slice(starts, func(i, j int) bool {
		return starts[i].Day.Before(starts[j].Day)
	})
}

// CycleDaysByDate indexes a list of records by their date key. A later record
// for the same date replaces an earlier one.
func CycleDaysByDate(days []models.CycleDay) map[string]models.CycleDay {
	indexed := make(map[string]models.CycleDay, len(days))
	for _, day := range days {
		indexed[day.Date] = day
	}
	return indexed
}
