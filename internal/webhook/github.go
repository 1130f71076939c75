package webhook

import (
	"encoding/json"
	"fmt"
	"time"

	"repodigest/internal/model"
)

// GitHubWebhookParser parses GitHub webhook payloads into the typed union
// the pipeline stores. Fields the pipeline does not use are ignored.
type GitHubWebhookParser struct{}

func NewGitHubParser() *GitHubWebhookParser {
	return &GitHubWebhookParser{}
}

// ParsePushEvent parses a GitHub push delivery.
func (p *GitHubWebhookParser) ParsePushEvent(payload []byte) (*ParsedEvent, error) {
	var event struct {
		Ref        string `json:"ref"`
		Before     string `json:"before"`
		After      string `json:"after"`
		Compare    string `json:"compare"`
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
		Pusher struct {
			Name string `json:"name"`
		} `json:"pusher"`
		HeadCommit struct {
			Timestamp time.Time `json:"timestamp"`
		} `json:"head_commit"`
		Commits []struct {
			ID      string `json:"id"`
			Message string `json:"message"`
			Author  struct {
				Name string `json:"name"`
			} `json:"author"`
		} `json:"commits"`
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse push event: %w", err)
	}

	commits := make([]model.PushCommit, 0, len(event.Commits))
	for _, c := range event.Commits {
		commits = append(commits, model.PushCommit{
			SHA:     c.ID,
			Message: c.Message,
			Author:  c.Author.Name,
		})
	}

	occurredAt := event.HeadCommit.Timestamp
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return &ParsedEvent{
		RepoFullName: event.Repository.FullName,
		Type:         model.EventTypePush,
		Actor:        event.Pusher.Name,
		OccurredAt:   occurredAt,
		Payload: model.EventPayload{
			Kind: model.EventTypePush,
			Push: &model.PushPayload{
				Ref:        event.Ref,
				Before:     event.Before,
				After:      event.After,
				CompareURL: event.Compare,
				Commits:    commits,
			},
		},
	}, nil
}

// ParsePullRequestEvent parses a GitHub pull_request delivery. Only actions
// that represent new or finished work produce an event; the rest return nil.
func (p *GitHubWebhookParser) ParsePullRequestEvent(payload []byte) (*ParsedEvent, error) {
	var event struct {
		Action      string `json:"action"`
		Number      int    `json:"number"`
		PullRequest struct {
			Title     string    `json:"title"`
			Body      string    `json:"body"`
			State     string    `json:"state"`
			Merged    bool      `json:"merged"`
			HTMLURL   string    `json:"html_url"`
			UpdatedAt time.Time `json:"updated_at"`
			Head      struct {
				Ref string `json:"ref"`
				SHA string `json:"sha"`
			} `json:"head"`
			Base struct {
				SHA string `json:"sha"`
			} `json:"base"`
			User struct {
				Login string `json:"login"`
			} `json:"user"`
		} `json:"pull_request"`
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse pull request event: %w", err)
	}

	switch event.Action {
	case "opened", "reopened", "closed", "ready_for_review":
	default:
		return nil, nil
	}

	occurredAt := event.PullRequest.UpdatedAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return &ParsedEvent{
		RepoFullName: event.Repository.FullName,
		Type:         model.EventTypePullRequest,
		Actor:        event.PullRequest.User.Login,
		OccurredAt:   occurredAt,
		Payload: model.EventPayload{
			Kind: model.EventTypePullRequest,
			PullRequest: &model.PullRequestPayload{
				Number:  event.Number,
				Title:   event.PullRequest.Title,
				Body:    event.PullRequest.Body,
				State:   event.PullRequest.State,
				Merged:  event.PullRequest.Merged,
				HTMLURL: event.PullRequest.HTMLURL,
				Branch:  event.PullRequest.Head.Ref,
				BaseSHA: event.PullRequest.Base.SHA,
				HeadSHA: event.PullRequest.Head.SHA,
				Author:  event.PullRequest.User.Login,
			},
		},
	}, nil
}
