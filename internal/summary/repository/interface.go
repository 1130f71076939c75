package repository

import (
	"context"
	"errors"
	"time"

	"repodigest/internal/model"
)

// ErrSummaryNotFound is returned when no summary matches the lookup.
var ErrSummaryNotFound = errors.New("summary not found")

// SummaryRepository is the persistence interface for period summaries.
type SummaryRepository interface {
	// GetByKey returns the summary for (repository, period, periodStart).
	GetByKey(ctx context.Context, repositoryID string, period model.SummaryPeriod, periodStart time.Time) (model.Summary, error)

	// AppendDigestIDs folds ids into the window row in one transaction,
	// creating the row from candidate when none exists yet. Only the
	// included ids column is written on existing rows, so two rollups of
	// the same window never overwrite each other's appends. Returns the
	// merged summary and how many ids were new.
	AppendDigestIDs(ctx context.Context, candidate *model.Summary, ids []string) (model.Summary, int, error)

	// UpdateContent patches the generated fields of the row identified by
	// s.ID: headline, accomplishments, key features, work breakdown and
	// metrics. The included ids column is never written here.
	UpdateContent(ctx context.Context, s *model.Summary) error

	// ListByRepository returns summaries ordered by PeriodStart descending.
	// Empty period means all periods.
	ListByRepository(ctx context.Context, repositoryID string, period model.SummaryPeriod, limit int) ([]model.Summary, error)
}
