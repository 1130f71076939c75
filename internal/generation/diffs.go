package generation

import (
	"context"
	"fmt"

	"repodigest/internal/model"
	"repodigest/pkg/github"
)

type githubDiffProvider struct {
	client *github.Client
}

// NewDiffProvider creates the GitHub-backed diff provider.
func NewDiffProvider(client *github.Client) *githubDiffProvider {
	return &githubDiffProvider{client: client}
}

// FetchForEvent fetches the changed files for the event. Push events compare
// before...after; pull request events list the PR's files.
func (p *githubDiffProvider) FetchForEvent(ctx context.Context, repo model.Repository, ev model.Event) ([]model.FileDiff, error) {
	owner, name, err := github.SplitFullName(repo.FullName)
	if err != nil {
		return nil, err
	}

	switch ev.Payload.Kind {
	case model.EventTypePush:
		push := ev.Payload.Push
		if push == nil || push.Before == "" || push.After == "" {
			return nil, nil
		}
		diffs, err := p.client.CompareFiles(ctx, owner, name, push.Before, push.After)
		if err != nil {
			return nil, err
		}
		return mapDiffs(diffs), nil
	case model.EventTypePullRequest:
		pr := ev.Payload.PullRequest
		if pr == nil || pr.Number == 0 {
			return nil, nil
		}
		diffs, err := p.client.PullRequestFiles(ctx, owner, name, pr.Number)
		if err != nil {
			return nil, err
		}
		return mapDiffs(diffs), nil
	default:
		return nil, fmt.Errorf("generation: no diff source for event type %q", ev.Payload.Kind)
	}
}

func mapDiffs(in []github.FileDiff) []model.FileDiff {
	out := make([]model.FileDiff, 0, len(in))
	for _, d := range in {
		out = append(out, model.FileDiff{
			Filename:  d.Filename,
			Status:    d.Status,
			Additions: d.Additions,
			Deletions: d.Deletions,
			Patch:     d.Patch,
		})
	}
	return out
}
