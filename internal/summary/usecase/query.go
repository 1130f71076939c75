package usecase

import (
	"context"
	"errors"

	"repodigest/internal/model"
	"repodigest/internal/summary"
	"repodigest/internal/summary/repository"
)

func (uc *implUseCase) Get(ctx context.Context, sc model.Scope, input summary.GetInput) (model.Summary, error) {
	if input.RepositoryID == "" {
		return model.Summary{}, summary.ErrMissingRepository
	}
	s, err := uc.repo.GetByKey(ctx, input.RepositoryID, input.Period, input.Period.PeriodStart(input.PeriodStart))
	if errors.Is(err, repository.ErrSummaryNotFound) {
		return model.Summary{}, summary.ErrNotFound
	}
	return s, err
}

func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input summary.ListInput) ([]model.Summary, error) {
	if input.RepositoryID == "" {
		return nil, summary.ErrMissingRepository
	}
	switch input.Period {
	case "", model.PeriodDaily, model.PeriodWeekly, model.PeriodMonthly:
	default:
		return nil, summary.ErrInvalidPeriod
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	return uc.repo.ListByRepository(ctx, input.RepositoryID, input.Period, limit)
}
