package services

import "errors"

var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUnsupportedQuery = errors.New("unsupported query")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMonth     = errors.New("invalid month")
)
