package event

import "errors"

// Domain-specific errors for the event package.
var (
	ErrNotFound          = errors.New("event not found")
	ErrMissingDeliveryID = errors.New("delivery id is required")
	ErrMissingRepository = errors.New("repository id is required")
)
