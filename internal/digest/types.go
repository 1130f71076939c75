package digest

import "time"

// ListInput filters the digest listing.
type ListInput struct {
	RepositoryID string
	From         time.Time
	To           time.Time
	Limit        int
}
