package summary

import "errors"

// Domain-specific errors for the summary package.
var (
	ErrNotFound          = errors.New("summary not found")
	ErrMissingRepository = errors.New("repository id is required")
	ErrInvalidPeriod     = errors.New("invalid summary period")
)
