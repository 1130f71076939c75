package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"repodigest/internal/event"
	"repodigest/internal/event/repository"
	"repodigest/internal/model"
	"repodigest/internal/pipeline"
)

// Ingest records an inbound event and schedules the digest pipeline.
// The delivery id is the idempotency boundary: redelivered webhooks resolve
// to the existing event and do not trigger a second pipeline run.
func (uc *implUseCase) Ingest(ctx context.Context, sc model.Scope, input event.IngestInput) (event.IngestOutput, error) {
	if input.DeliveryID == "" {
		return event.IngestOutput{}, event.ErrMissingDeliveryID
	}
	if input.RepositoryID == "" {
		return event.IngestOutput{}, event.ErrMissingRepository
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	ev := &model.Event{
		ID:           uuid.NewString(),
		DeliveryID:   input.DeliveryID,
		RepositoryID: input.RepositoryID,
		Type:         input.Type,
		Actor:        input.Actor,
		OccurredAt:   occurredAt,
		Payload:      input.Payload,
		Status:       model.EventStatusPending,
	}

	if err := uc.repo.Create(ctx, ev); err != nil {
		if errors.Is(err, repository.ErrDuplicateDelivery) {
			existing, getErr := uc.repo.GetByDeliveryID(ctx, input.DeliveryID)
			if getErr != nil {
				return event.IngestOutput{}, fmt.Errorf("failed to resolve duplicate delivery %s: %w", input.DeliveryID, getErr)
			}
			uc.l.Infof(ctx, "Ingest: duplicate delivery %s resolved to event %s", input.DeliveryID, existing.ID)
			return event.IngestOutput{EventID: existing.ID, Duplicate: true}, nil
		}
		return event.IngestOutput{}, fmt.Errorf("failed to create event: %w", err)
	}

	// New row won the insert, so this schedules the pipeline exactly once.
	if err := uc.sched.Schedule(ctx, pipeline.TaskDigestRun, pipeline.DigestRunPayload{EventID: ev.ID}); err != nil {
		return event.IngestOutput{}, fmt.Errorf("failed to schedule digest run for event %s: %w", ev.ID, err)
	}

	uc.l.Infof(ctx, "Ingest: event %s created for delivery %s (%s)", ev.ID, ev.DeliveryID, ev.Type)
	return event.IngestOutput{EventID: ev.ID}, nil
}

// Get returns one event by id.
func (uc *implUseCase) Get(ctx context.Context, sc model.Scope, id string) (model.Event, error) {
	ev, err := uc.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrEventNotFound) {
		return model.Event{}, event.ErrNotFound
	}
	return ev, err
}

// List returns events for a repository within a time range.
func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input event.ListInput) ([]model.Event, error) {
	if input.RepositoryID == "" {
		return nil, event.ErrMissingRepository
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}
	return uc.repo.ListByRepository(ctx, input.RepositoryID, input.From, input.To, limit)
}
