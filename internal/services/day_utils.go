package services

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

const MaxDayNotesLength = 2000

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// ParseDay parses a YYYY-MM-DD key into a UTC midnight.
func ParseDay(raw string) (time.Time, error) {
	day, err := time.Parse(models.DayDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}

func FormatDay(day time.Time) string {
	return day.Format(models.DayDateLayout)
}

// TodayKey returns the calendar date of now in location as a UTC midnight so
// it can be compared with parsed day keys.
func TodayKey(now time.Time, location *time.Location) time.Time {
	local := DateAtLocation(now, location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns whole calendar days from earlier to later. Both values
// are expected to be UTC midnights.
func DaysBetween(earlier time.Time, later time.Time) int {
	return int(math.Round(later.Sub(earlier).Hours() / 24))
}

func NormalizeMonthKey(raw string) (string, error) {
	month := strings.TrimSpace(raw)
	if !monthKeyPattern.MatchString(month) {
		return "", ErrInvalidMonth
	}
	return month, nil
}

// NormalizeSymptoms trims tags and drops blanks and duplicates, keeping the
// order of first appearance.
func NormalizeSymptoms(values []string) []string {
	normalized := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		tag := strings.TrimSpace(value)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}

func TrimDayNotes(value string) string {
	if len(value) <= MaxDayNotesLength {
		return value
	}
	return value[:MaxDayNotesLength]
}
