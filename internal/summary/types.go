package summary

import (
	"time"

	"repodigest/internal/model"
)

// GetInput identifies one period window.
type GetInput struct {
	RepositoryID string
	Period       model.SummaryPeriod
	PeriodStart  time.Time
}

// ListInput filters the summary listing. Period empty means all periods.
type ListInput struct {
	RepositoryID string
	Period       model.SummaryPeriod
	Limit        int
}
