package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"repodigest/internal/event/repository"
	"repodigest/internal/model"
	pkgLog "repodigest/pkg/log"
)

type implRepository struct {
	db *gorm.DB
	l  pkgLog.Logger
}

// New creates a gorm-backed event repository.
func New(db *gorm.DB, l pkgLog.Logger) repository.EventRepository {
	return &implRepository{db: db, l: l}
}

func (r *implRepository) Create(ctx context.Context, ev *model.Event) error {
	// The unique index on delivery_id is the idempotency boundary; the
	// conflict clause makes concurrent redelivery race-free.
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "delivery_id"}},
		DoNothing: true,
	}).Create(ev)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrDuplicateDelivery
	}
	return nil
}

func (r *implRepository) GetByID(ctx context.Context, id string) (model.Event, error) {
	var ev model.Event
	err := r.db.WithContext(ctx).First(&ev, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Event{}, repository.ErrEventNotFound
	}
	return ev, err
}

func (r *implRepository) GetByDeliveryID(ctx context.Context, deliveryID string) (model.Event, error) {
	var ev model.Event
	err := r.db.WithContext(ctx).First(&ev, "delivery_id = ?", deliveryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Event{}, repository.ErrEventNotFound
	}
	return ev, err
}

func (r *implRepository) UpdateStatus(ctx context.Context, id string, status model.EventStatus, errMsg string) error {
	updates := map[string]any{
		"status":        status,
		"error_message": errMsg,
	}
	if status == model.EventStatusCompleted {
		now := time.Now()
		updates["processed_at"] = &now
	}
	return r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *implRepository) SetFileDiffs(ctx context.Context, id string, diffs []model.FileDiff) error {
	return r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", id).
		Update("file_diffs", diffs).Error
}

func (r *implRepository) ListByRepository(ctx context.Context, repositoryID string, from, to time.Time, limit int) ([]model.Event, error) {
	q := r.db.WithContext(ctx).Where("repository_id = ?", repositoryID)
	if !from.IsZero() {
		q = q.Where("occurred_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("occurred_at <= ?", to)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var events []model.Event
	err := q.Order("occurred_at desc").Find(&events).Error
	return events, err
}

func (r *implRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Event{}, "id = ?", id).Error
}
