package services

import (
	"errors"
	"strings"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ParseExportRange validates optional inclusive bounds. Empty bounds are
// returned as empty strings.
func ParseExportRange(rawFrom string, rawTo string) (string, string, error) {
	from := ""
	if fromRaw := strings.TrimSpace(rawFrom); fromRaw != "" {
		parsedFrom, err := ParseDay(fromRaw)
		if err != nil {
			return "", "", ErrExportFromDateInvalid
		}
		from = FormatDay(parsedFrom)
	}

	to := ""
	if toRaw := strings.TrimSpace(rawTo); toRaw != "" {
		parsedTo, err := ParseDay(toRaw)
		if err != nil {
			return "", "", ErrExportToDateInvalid
		}
		to = FormatDay(parsedTo)
	}

	if from != "" && to != "" && to < from {
		return "", "", ErrExportRangeInvalid
	}
	return from, to, nil
}
