package sqlite

import (
	"context"
	"time"

	"gorm.io/gorm"

	"repodigest/internal/scheduler"
	pkgLog "repodigest/pkg/log"
)

type implRepository struct {
	db *gorm.DB
	l  pkgLog.Logger
}

// New creates a gorm-backed task repository.
func New(db *gorm.DB, l pkgLog.Logger) scheduler.TaskRepository {
	return &implRepository{db: db, l: l}
}

func (r *implRepository) Enqueue(ctx context.Context, task *scheduler.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *implRepository) ClaimDue(ctx context.Context, limit int, now time.Time) ([]scheduler.Task, error) {
	var claimed []scheduler.Task

	// The select and status flip run in one transaction so that two pollers
	// never claim the same row.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var due []scheduler.Task
		if err := tx.
			Where("status = ? AND scheduled_at <= ?", scheduler.TaskStatusPending, now).
			Order("scheduled_at asc").
			Limit(limit).
			Find(&due).Error; err != nil {
			return err
		}

		for i := range due {
			res := tx.Model(&scheduler.Task{}).
				Where("id = ? AND status = ?", due[i].ID, scheduler.TaskStatusPending).
				Updates(map[string]any{
					"status":   scheduler.TaskStatusRunning,
					"attempts": gorm.Expr("attempts + 1"),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue // lost the race to another poller
			}
			due[i].Status = scheduler.TaskStatusRunning
			due[i].Attempts++
			claimed = append(claimed, due[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *implRepository) MarkCompleted(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&scheduler.Task{}).
		Where("id = ?", id).
		Update("status", scheduler.TaskStatusCompleted).Error
}

func (r *implRepository) MarkFailed(ctx context.Context, id string, errMsg string) error {
	return r.db.WithContext(ctx).Model(&scheduler.Task{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     scheduler.TaskStatusFailed,
			"last_error": errMsg,
		}).Error
}

func (r *implRepository) Reschedule(ctx context.Context, id string, at time.Time, errMsg string) error {
	return r.db.WithContext(ctx).Model(&scheduler.Task{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       scheduler.TaskStatusPending,
			"scheduled_at": at,
			"last_error":   errMsg,
		}).Error
}

func (r *implRepository) RequeueStale(ctx context.Context, updatedBefore time.Time) (int, error) {
	res := r.db.WithContext(ctx).Model(&scheduler.Task{}).
		Where("status = ? AND updated_at < ?", scheduler.TaskStatusRunning, updatedBefore).
		Update("status", scheduler.TaskStatusPending)
	return int(res.RowsAffected), res.Error
}
