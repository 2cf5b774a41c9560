package services

import (
	"fmt"
	"strings"
)

// DeleteResult reports the outcome of one key in a batch delete. Batches are
// not atomic: earlier deletions stay in place when a later key fails.
type DeleteResult struct {
	Date    string `json:"date"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

func deleteDatesSequentially(dates []string, deleteDate func(date string) error) []DeleteResult {
	results := make([]DeleteResult, 0, len(dates))
	for _, date := range dates {
		if err := deleteDate(date); err != nil {
			results = append(results, DeleteResult{Date: date, Error: err.Error()})
			continue
		}
		results = append(results, DeleteResult{Date: date, Deleted: true})
	}
	return results
}

func DeleteResultsFailed(results []DeleteResult) int {
	failed := 0
	for _, result := range results {
		if !result.Deleted {
			failed++
		}
	}
	return failed
}

func wrapStoreError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func normalizeRangeBound(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", nil
	}
	day, err := ParseDay(value)
	if err != nil {
		return "", err
	}
	return FormatDay(day), nil
}
