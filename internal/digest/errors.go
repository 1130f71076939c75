package digest

import "errors"

// Domain-specific errors for the digest package.
var (
	ErrNotFound          = errors.New("digest not found")
	ErrMissingRepository = errors.New("repository id is required")
)
