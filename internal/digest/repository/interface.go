package repository

import (
	"context"
	"errors"
	"time"

	"repodigest/internal/model"
)

// ErrDigestNotFound is returned when no digest matches the lookup.
var ErrDigestNotFound = errors.New("digest not found")

// DigestRepository is the persistence interface for digests.
type DigestRepository interface {
	Create(ctx context.Context, d *model.Digest) error

	GetByID(ctx context.Context, id string) (model.Digest, error)

	// GetByEventID returns the digest created for an event. At most one
	// digest exists per event.
	GetByEventID(ctx context.Context, eventID string) (model.Digest, error)

	// Update replaces the digest's content fields in full.
	Update(ctx context.Context, d *model.Digest) error

	// SetImpactAnalysis patches only the impact column so a late-arriving
	// analysis never clobbers concurrent content updates.
	SetImpactAnalysis(ctx context.Context, id string, analysis *model.ImpactAnalysis) error

	// ListByRepository returns digests ordered by CreatedAt descending.
	// Zero From/To mean unbounded.
	ListByRepository(ctx context.Context, repositoryID string, from, to time.Time, limit int) ([]model.Digest, error)
}
