package services

import (
	"sort"
	"strings"

	"github.com/terraincognita07/wellnest/internal/models"
)

const DefaultTopSymptomsLimit = 5

type SymptomFrequency struct {
	Symptom string `json:"symptom"`
	Count   int    `json:"count"`
}

type symptomDay struct {
	Date     string
	Symptoms []string
}

// TopSymptoms counts symptom tags across days and returns the most frequent
// ones. Days are visited in ascending date order and ties keep the order in
// which a tag was first seen, so the result is stable for the same input.
func TopSymptoms(days []symptomDay, limit int) []SymptomFrequency {
	if limit <= 0 {
		limit = DefaultTopSymptomsLimit
	}

	ordered := make([]symptomDay, len(days))
	copy(ordered, days)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})

	counts := make(map[string]int)
	firstSeen := make([]string, 0)
	for _, day := range ordered {
		for _, raw := range day.Symptoms {
			tag := strings.TrimSpace(raw)
			if tag == "" {
				continue
			}
			if _, ok := counts[tag]; !ok {
				firstSeen = append(firstSeen, tag)
			}
			counts[tag]++
		}
	}

	result := make([]SymptomFrequency, 0, len(firstSeen))
	for _, tag := range firstSeen {
		result = append(result, SymptomFrequency{Symptom: tag, Count: counts[tag]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

func TopCycleSymptoms(records map[string]models.CycleDay, limit int) []SymptomFrequency {
	days := make([]symptomDay, 0, len(records))
	for key, record := range records {
		days = append(days, symptomDay{Date: recordDateKey(key, record.Date), Symptoms: record.Symptoms})
	}
	return TopSymptoms(days, limit)
}

func TopPregnancySymptoms(records map[string]models.PregnancyDay, limit int) []SymptomFrequency {
	days := make([]symptomDay, 0, len(records))
	for key, record := range records {
		days = append(days, symptomDay{Date: recordDateKey(key, record.Date), Symptoms: record.Symptoms})
	}
	return TopSymptoms(days, limit)
}

func recordDateKey(key string, date string) string {
	if date != "" {
		return date
	}
	return key
}
