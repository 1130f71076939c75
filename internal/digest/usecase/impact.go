package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"repodigest/internal/digest/repository"
	"repodigest/internal/generation"
	"repodigest/internal/model"
	"repodigest/internal/pipeline"
)

// scheduleImpact enqueues the risk analysis follow-up. It is fire and
// forget: it only runs for repositories whose code index is ready and whose
// event carries diffs, and a scheduling failure only logs.
func (uc *implUseCase) scheduleImpact(ctx context.Context, sc model.Scope, repo model.Repository, d model.Digest, ev model.Event, diffs []model.FileDiff) {
	if repo.CodeIndexStatus != model.CodeIndexCompleted {
		uc.l.Debugf(ctx, "scheduleImpact: code index not ready for %s, skipping", repo.ID)
		return
	}
	if len(diffs) == 0 {
		return
	}

	payload := pipeline.ImpactPayload{
		DigestID:     d.ID,
		RepositoryID: d.RepositoryID,
		UserID:       sc.UserID,
		FileDiffs:    capImpactDiffs(diffs),
	}
	if p := ev.Payload.Push; p != nil {
		payload.CommitMessage = truncateContext(commitLines(p.Commits))
	}
	if p := ev.Payload.PullRequest; p != nil {
		payload.PRTitle = p.Title
		payload.PRBody = truncateContext(p.Body)
	}

	if err := uc.sched.Schedule(ctx, pipeline.TaskImpactAnalysis, payload); err != nil {
		uc.l.Warnf(ctx, "scheduleImpact: digest %s: %v", d.ID, err)
	}
}

// analyzeImpact is the handler body for the impact task. The analysis is
// single-set: a digest that already carries one is left alone. Failures are
// swallowed because impact must never hold up or fail the pipeline.
func (uc *implUseCase) analyzeImpact(ctx context.Context, sc model.Scope, payload pipeline.ImpactPayload) error {
	d, err := uc.repo.GetByID(ctx, payload.DigestID)
	if err != nil {
		if errors.Is(err, repository.ErrDigestNotFound) {
			uc.l.Warnf(ctx, "analyzeImpact: digest %s no longer exists", payload.DigestID)
			return nil
		}
		return err
	}
	if d.ImpactAnalysis != nil {
		return nil
	}

	repo, err := uc.registryUC.Get(ctx, sc, payload.RepositoryID)
	if err != nil {
		uc.l.Warnf(ctx, "analyzeImpact: repository %s: %v", payload.RepositoryID, err)
		return nil
	}
	apiKey, err := uc.registryUC.ResolveCredential(ctx, sc, repo.OwnerID)
	if err != nil || apiKey == "" {
		return nil
	}

	analysis, err := uc.gateway.AnalyzeImpact(ctx, generation.ImpactInput{
		APIKey:        apiKey,
		RepositoryID:  payload.RepositoryID,
		DigestID:      payload.DigestID,
		Diffs:         payload.FileDiffs,
		CommitMessage: payload.CommitMessage,
		PRTitle:       payload.PRTitle,
		PRBody:        payload.PRBody,
	})
	if err != nil {
		uc.l.Warnf(ctx, "analyzeImpact: digest %s: %v", payload.DigestID, err)
		return nil
	}

	if err := uc.repo.SetImpactAnalysis(ctx, payload.DigestID, &analysis); err != nil {
		return err
	}
	uc.l.Infof(ctx, "analyzeImpact: digest %s assessed %s", payload.DigestID, analysis.OverallRisk)
	return nil
}

// capImpactDiffs keeps the largest diffs by churn and truncates their
// patches so the task payload stays bounded.
func capImpactDiffs(diffs []model.FileDiff) []model.FileDiff {
	capped := make([]model.FileDiff, len(diffs))
	copy(capped, diffs)
	sort.SliceStable(capped, func(i, j int) bool {
		return capped[i].Additions+capped[i].Deletions > capped[j].Additions+capped[j].Deletions
	})
	if len(capped) > pipeline.MaxImpactDiffs {
		capped = capped[:pipeline.MaxImpactDiffs]
	}
	for i := range capped {
		if len(capped[i].Patch) > pipeline.MaxImpactPatchChars {
			capped[i].Patch = capped[i].Patch[:pipeline.MaxImpactPatchChars]
		}
	}
	return capped
}

func commitLines(commits []model.PushCommit) string {
	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		msg := c.Message
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = msg[:i]
		}
		lines = append(lines, msg)
	}
	return strings.Join(lines, "\n")
}

func truncateContext(s string) string {
	if len(s) > pipeline.MaxImpactContextLen {
		return s[:pipeline.MaxImpactContextLen]
	}
	return s
}
