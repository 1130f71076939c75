package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"repodigest/internal/model"
	"repodigest/internal/summary/repository"
	pkgLog "repodigest/pkg/log"
)

type implRepository struct {
	db *gorm.DB
	l  pkgLog.Logger
}

// New creates a gorm-backed summary repository.
func New(db *gorm.DB, l pkgLog.Logger) repository.SummaryRepository {
	return &implRepository{db: db, l: l}
}

func (r *implRepository) GetByKey(ctx context.Context, repositoryID string, period model.SummaryPeriod, periodStart time.Time) (model.Summary, error) {
	var s model.Summary
	err := r.db.WithContext(ctx).
		First(&s, "repository_id = ? AND period = ? AND period_start = ?", repositoryID, period, periodStart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Summary{}, repository.ErrSummaryNotFound
	}
	return s, err
}

func (r *implRepository) AppendDigestIDs(ctx context.Context, candidate *model.Summary, ids []string) (model.Summary, int, error) {
	var (
		out   model.Summary
		added int
	)
	// Read and append run in one transaction so that two rollups of the
	// same window both land their ids.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s model.Summary
		err := tx.First(&s, "repository_id = ? AND period = ? AND period_start = ?",
			candidate.RepositoryID, candidate.Period, candidate.PeriodStart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s = *candidate
			s.IncludedDigestIDs = nil
			added = s.AppendDigestIDs(ids)
			out = s
			return tx.Create(&s).Error
		}
		if err != nil {
			return err
		}
		added = s.AppendDigestIDs(ids)
		out = s
		if added == 0 {
			return nil
		}
		return tx.Model(&model.Summary{}).
			Where("id = ?", s.ID).
			Update("included_digest_ids", s.IncludedDigestIDs).Error
	})
	if err != nil {
		return model.Summary{}, 0, err
	}
	return out, added, nil
}

func (r *implRepository) UpdateContent(ctx context.Context, s *model.Summary) error {
	return r.db.WithContext(ctx).Model(s).
		Select("headline", "accomplishments", "key_features", "work_breakdown", "metrics").
		Updates(s).Error
}

func (r *implRepository) ListByRepository(ctx context.Context, repositoryID string, period model.SummaryPeriod, limit int) ([]model.Summary, error) {
	q := r.db.WithContext(ctx).Where("repository_id = ?", repositoryID)
	if period != "" {
		q = q.Where("period = ?", period)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var summaries []model.Summary
	err := q.Order("period_start desc").Find(&summaries).Error
	return summaries, err
}
