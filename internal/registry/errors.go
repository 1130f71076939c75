package registry

import "errors"

// Domain-specific errors for the registry package.
var (
	ErrNotFound        = errors.New("repository not found")
	ErrMissingFullName = errors.New("repository full name is required")
	ErrMissingOwner    = errors.New("owner id is required")
	ErrMissingAPIKey   = errors.New("api key is required")
)
