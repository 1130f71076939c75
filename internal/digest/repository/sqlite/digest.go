package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"repodigest/internal/digest/repository"
	"repodigest/internal/model"
	pkgLog "repodigest/pkg/log"
)

type implRepository struct {
	db *gorm.DB
	l  pkgLog.Logger
}

// New creates a gorm-backed digest repository.
func New(db *gorm.DB, l pkgLog.Logger) repository.DigestRepository {
	return &implRepository{db: db, l: l}
}

func (r *implRepository) Create(ctx context.Context, d *model.Digest) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *implRepository) GetByID(ctx context.Context, id string) (model.Digest, error) {
	var d model.Digest
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Digest{}, repository.ErrDigestNotFound
	}
	return d, err
}

func (r *implRepository) GetByEventID(ctx context.Context, eventID string) (model.Digest, error) {
	var d model.Digest
	err := r.db.WithContext(ctx).First(&d, "event_id = ?", eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Digest{}, repository.ErrDigestNotFound
	}
	return d, err
}

func (r *implRepository) Update(ctx context.Context, d *model.Digest) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *implRepository) SetImpactAnalysis(ctx context.Context, id string, analysis *model.ImpactAnalysis) error {
	return r.db.WithContext(ctx).Model(&model.Digest{}).
		Where("id = ?", id).
		Update("impact_analysis", analysis).Error
}

func (r *implRepository) ListByRepository(ctx context.Context, repositoryID string, from, to time.Time, limit int) ([]model.Digest, error) {
	q := r.db.WithContext(ctx).Where("repository_id = ?", repositoryID)
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at <= ?", to)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var digests []model.Digest
	err := q.Order("created_at desc").Find(&digests).Error
	return digests, err
}
