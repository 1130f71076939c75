package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"repodigest/internal/digest/repository"
	eventRepo "repodigest/internal/event/repository"
	"repodigest/internal/generation"
	"repodigest/internal/model"
	"repodigest/internal/pipeline"
	"repodigest/internal/registry"
	"repodigest/internal/scheduler"
)

// Run drives one event through the pipeline. The event's status is the
// resume point: terminal events short-circuit, everything before completion
// is safe to redo because generation is memoized and the placeholder digest
// is reused on retry.
func (uc *implUseCase) Run(ctx context.Context, sc model.Scope, eventID string) error {
	ev, err := uc.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return scheduler.Terminal(fmt.Errorf("event %s no longer exists: %w", eventID, err))
		}
		return err
	}
	if ev.Status.Terminal() {
		uc.l.Infof(ctx, "Run: event %s already %s, nothing to do", ev.ID, ev.Status)
		return nil
	}

	if err := uc.events.UpdateStatus(ctx, ev.ID, model.EventStatusProcessing, ""); err != nil {
		return fmt.Errorf("failed to mark event %s processing: %w", ev.ID, err)
	}

	repo, err := uc.registryUC.Get(ctx, sc, ev.RepositoryID)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			_ = uc.events.UpdateStatus(ctx, ev.ID, model.EventStatusFailed, "repository not tracked")
			return scheduler.Terminal(fmt.Errorf("repository %s not tracked", ev.RepositoryID))
		}
		return err
	}

	apiKey, err := uc.registryUC.ResolveCredential(ctx, sc, repo.OwnerID)
	if err != nil {
		return err
	}
	if apiKey == "" {
		// No credential anywhere means generation cannot run for this owner.
		// Skipped is terminal; a later credential does not resurrect the event.
		uc.l.Infof(ctx, "Run: no credential for owner %s, skipping event %s", repo.OwnerID, ev.ID)
		return uc.events.UpdateStatus(ctx, ev.ID, model.EventStatusSkipped, "no generation credential")
	}

	diffs := uc.ensureDiffs(ctx, repo, &ev)

	d, err := uc.ensurePlaceholder(ctx, ev)
	if err != nil {
		return err
	}

	content, err := uc.gateway.GenerateDigest(ctx, generation.DigestInput{
		APIKey:       apiKey,
		RepositoryID: repo.ID,
		RepoFullName: repo.FullName,
		Event:        ev,
		Diffs:        diffs,
	})
	if err != nil {
		_ = uc.events.UpdateStatus(ctx, ev.ID, model.EventStatusFailed, err.Error())
		return err
	}

	d.Title = content.Title
	d.Summary = content.Summary
	d.Category = content.Category
	d.WhyThisMatters = content.WhyThisMatters
	d.MergePerspectives(content.Perspectives)

	uc.fanOutPerspectives(ctx, apiKey, repo.ID, &d, diffs)

	if err := uc.repo.Update(ctx, &d); err != nil {
		return fmt.Errorf("failed to update digest %s: %w", d.ID, err)
	}

	uc.scheduleImpact(ctx, sc, repo, d, ev, diffs)

	if err := uc.scheduleRollups(ctx, sc, repo, ev, d); err != nil {
		return err
	}

	if err := uc.events.UpdateStatus(ctx, ev.ID, model.EventStatusCompleted, ""); err != nil {
		return fmt.Errorf("failed to mark event %s completed: %w", ev.ID, err)
	}
	uc.l.Infof(ctx, "Run: event %s completed, digest %s (%s)", ev.ID, d.ID, d.Category)
	return nil
}

// ensureDiffs returns the event's diffs, fetching and persisting them on
// first use. Diff retrieval is best effort; generation proceeds from commit
// and PR text when the host call fails.
func (uc *implUseCase) ensureDiffs(ctx context.Context, repo model.Repository, ev *model.Event) []model.FileDiff {
	if len(ev.FileDiffs) > 0 {
		return ev.FileDiffs
	}
	diffs, err := uc.diffs.FetchForEvent(ctx, repo, *ev)
	if err != nil {
		uc.l.Warnf(ctx, "ensureDiffs: fetch for event %s failed: %v", ev.ID, err)
		return nil
	}
	if len(diffs) == 0 {
		return nil
	}
	if err := uc.events.SetFileDiffs(ctx, ev.ID, diffs); err != nil {
		uc.l.Warnf(ctx, "ensureDiffs: persist for event %s failed: %v", ev.ID, err)
	}
	ev.FileDiffs = diffs
	return diffs
}

// ensurePlaceholder returns the digest for the event, creating the
// placeholder row on first run. CreatedAt is the event's OccurredAt so the
// feed orders by activity time, not processing time.
func (uc *implUseCase) ensurePlaceholder(ctx context.Context, ev model.Event) (model.Digest, error) {
	existing, err := uc.repo.GetByEventID(ctx, ev.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrDigestNotFound) {
		return model.Digest{}, err
	}

	d := model.Digest{
		ID:           uuid.NewString(),
		RepositoryID: ev.RepositoryID,
		EventID:      ev.ID,
		Title:        placeholderTitle(ev),
		Summary:      model.PlaceholderSummary,
		Contributors: contributorsFrom(ev),
		Metadata:     metadataFrom(ev),
		CreatedAt:    ev.OccurredAt,
	}
	if err := uc.repo.Create(ctx, &d); err != nil {
		return model.Digest{}, fmt.Errorf("failed to create placeholder digest for event %s: %w", ev.ID, err)
	}
	return d, nil
}

// scheduleRollups enqueues one rollup per period window containing the
// event. Failures here surface so the run is retried before completion.
func (uc *implUseCase) scheduleRollups(ctx context.Context, sc model.Scope, repo model.Repository, ev model.Event, d model.Digest) error {
	for _, period := range model.AllPeriods {
		payload := pipeline.RollupPayload{
			RepositoryID: repo.ID,
			UserID:       sc.UserID,
			Period:       period,
			PeriodStart:  period.PeriodStart(ev.OccurredAt),
			DigestIDs:    []string{d.ID},
		}
		if err := uc.sched.Schedule(ctx, pipeline.TaskSummaryRollup, payload); err != nil {
			return fmt.Errorf("failed to schedule %s rollup for digest %s: %w", period, d.ID, err)
		}
	}
	return nil
}

func placeholderTitle(ev model.Event) string {
	switch ev.Payload.Kind {
	case model.EventTypePush:
		if p := ev.Payload.Push; p != nil {
			return fmt.Sprintf("%d commits pushed to %s", len(p.Commits), branchFromRef(p.Ref))
		}
	case model.EventTypePullRequest:
		if p := ev.Payload.PullRequest; p != nil {
			return fmt.Sprintf("PR #%d: %s", p.Number, p.Title)
		}
	}
	return "Repository activity"
}

func contributorsFrom(ev model.Event) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	add(ev.Actor)
	if p := ev.Payload.Push; p != nil {
		for _, c := range p.Commits {
			add(c.Author)
		}
	}
	if p := ev.Payload.PullRequest; p != nil {
		add(p.Author)
	}
	return out
}

func metadataFrom(ev model.Event) model.DigestMetadata {
	var md model.DigestMetadata
	if p := ev.Payload.Push; p != nil {
		md.CommitCount = len(p.Commits)
		md.Branch = branchFromRef(p.Ref)
		md.CompareURL = p.CompareURL
	}
	if p := ev.Payload.PullRequest; p != nil {
		md.PRNumber = p.Number
		md.PRURL = p.HTMLURL
		md.PRState = p.State
		if p.Merged {
			md.PRState = "merged"
		}
		md.Branch = p.Branch
	}
	return md
}

func branchFromRef(ref string) string {
	return strings.TrimPrefix(ref, "refs/heads/")
}
