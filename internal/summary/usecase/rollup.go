package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	digestRepo "repodigest/internal/digest/repository"
	"repodigest/internal/generation"
	"repodigest/internal/model"
	"repodigest/internal/pipeline"
	"repodigest/internal/scheduler"
)

// RollupHandler adapts the rollup step for the task worker.
func (uc *implUseCase) RollupHandler() scheduler.Handler {
	return func(ctx context.Context, payload []byte) error {
		var p pipeline.RollupPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return scheduler.Terminal(fmt.Errorf("bad summary.rollup payload: %w", err))
		}
		sc := model.SystemScope()
		if p.UserID != "" {
			sc = model.Scope{UserID: p.UserID}
		}
		return uc.rollup(ctx, sc, p)
	}
}

// rollup folds the payload's digests into the period window and regenerates
// the aggregate content. Exactly one summary row exists per window; repeated
// deliveries of the same digest ids converge without another generation call.
// The append happens in the repository, so concurrent rollups of the same
// window never drop each other's ids; content is patched separately and never
// carries the id list.
func (uc *implUseCase) rollup(ctx context.Context, sc model.Scope, payload pipeline.RollupPayload) error {
	if payload.RepositoryID == "" || len(payload.DigestIDs) == 0 {
		return scheduler.Terminal(errors.New("rollup payload missing repository or digest ids"))
	}

	candidate := model.Summary{
		ID:           uuid.NewString(),
		RepositoryID: payload.RepositoryID,
		Period:       payload.Period,
		PeriodStart:  payload.PeriodStart,
	}
	s, added, err := uc.repo.AppendDigestIDs(ctx, &candidate, payload.DigestIDs)
	if err != nil {
		return fmt.Errorf("failed to fold digests into %s summary for repository %s: %w", payload.Period, payload.RepositoryID, err)
	}
	if added == 0 && s.Headline != "" {
		uc.l.Infof(ctx, "rollup: %s window %s already includes these digests", s.Period, s.PeriodStart.Format("2006-01-02"))
		return nil
	}

	lines := uc.digestLines(ctx, s.IncludedDigestIDs)

	repo, err := uc.registryUC.Get(ctx, sc, payload.RepositoryID)
	if err != nil {
		return err
	}
	apiKey, err := uc.registryUC.ResolveCredential(ctx, sc, repo.OwnerID)
	if err != nil {
		return err
	}
	if apiKey == "" {
		// Digests exist, so a credential existed recently. Retry later.
		return errors.New("rollup: no generation credential")
	}

	content, err := uc.gateway.GenerateSummary(ctx, generation.SummaryInput{
		APIKey:       apiKey,
		RepositoryID: payload.RepositoryID,
		Period:       payload.Period,
		DigestLines:  lines,
	})
	if err != nil {
		return err
	}

	s.Headline = content.Headline
	s.Accomplishments = content.Accomplishments
	s.KeyFeatures = content.KeyFeatures
	s.WorkBreakdown = content.WorkBreakdown
	s.Metrics = model.SummaryMetrics{TotalItems: len(s.IncludedDigestIDs)}

	if err := uc.repo.UpdateContent(ctx, &s); err != nil {
		return fmt.Errorf("failed to update %s summary content for repository %s: %w", s.Period, s.RepositoryID, err)
	}
	uc.l.Infof(ctx, "rollup: %s window %s updated, %d digests", s.Period, s.PeriodStart.Format("2006-01-02"), len(s.IncludedDigestIDs))
	return nil
}

// digestLines renders the included digests for the summary prompt. Digests
// that disappeared since inclusion are skipped.
func (uc *implUseCase) digestLines(ctx context.Context, ids []string) []string {
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		d, err := uc.digests.GetByID(ctx, id)
		if err != nil {
			if !errors.Is(err, digestRepo.ErrDigestNotFound) {
				uc.l.Warnf(ctx, "digestLines: %s: %v", id, err)
			}
			continue
		}
		if d.Summary == model.PlaceholderSummary {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", d.Category, d.Title, d.Summary))
	}
	return lines
}
