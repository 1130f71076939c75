package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"repodigest/internal/model"
	"repodigest/internal/registry/repository"
	pkgLog "repodigest/pkg/log"
)

type implRepository struct {
	db *gorm.DB
	l  pkgLog.Logger
}

// New creates a gorm-backed registry repository.
func New(db *gorm.DB, l pkgLog.Logger) *implRepository {
	return &implRepository{db: db, l: l}
}

func (r *implRepository) Create(ctx context.Context, repo *model.Repository) error {
	return r.db.WithContext(ctx).Create(repo).Error
}

func (r *implRepository) GetByID(ctx context.Context, id string) (model.Repository, error) {
	var repo model.Repository
	err := r.db.WithContext(ctx).First(&repo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Repository{}, repository.ErrRepositoryNotFound
	}
	return repo, err
}

func (r *implRepository) GetByFullName(ctx context.Context, fullName string) (model.Repository, error) {
	var repo model.Repository
	err := r.db.WithContext(ctx).First(&repo, "full_name = ?", fullName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Repository{}, repository.ErrRepositoryNotFound
	}
	return repo, err
}

func (r *implRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Repository, error) {
	q := r.db.WithContext(ctx)
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	var repos []model.Repository
	err := q.Order("full_name asc").Find(&repos).Error
	return repos, err
}

func (r *implRepository) UpdateCodeIndexStatus(ctx context.Context, id string, status model.CodeIndexStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Repository{}).
		Where("id = ?", id).
		Update("code_index_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Zero rows covers both a missing repository and a write of the
		// value already stored, so only a lookup tells them apart.
		err := r.db.WithContext(ctx).Select("id").First(&model.Repository{}, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrRepositoryNotFound
		}
		return err
	}
	return nil
}

type implCredentialRepository struct {
	db *gorm.DB
	l  pkgLog.Logger
}

// NewCredential creates a gorm-backed credential repository.
func NewCredential(db *gorm.DB, l pkgLog.Logger) *implCredentialRepository {
	return &implCredentialRepository{db: db, l: l}
}

func (r *implCredentialRepository) Set(ctx context.Context, cred *model.OwnerCredential) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"api_key", "updated_at"}),
	}).Create(cred).Error
}

func (r *implCredentialRepository) Get(ctx context.Context, ownerID string) (model.OwnerCredential, error) {
	var cred model.OwnerCredential
	err := r.db.WithContext(ctx).First(&cred, "owner_id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OwnerCredential{}, repository.ErrCredentialNotFound
	}
	return cred, err
}
