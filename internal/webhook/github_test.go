package webhook

import (
	"testing"

	"repodigest/internal/model"
)

const pushPayload = `{
	"ref": "refs/heads/main",
	"before": "aaa111",
	"after": "bbb222",
	"compare": "https://github.com/octo/widgets/compare/aaa111...bbb222",
	"repository": {"full_name": "octo/widgets"},
	"pusher": {"name": "octocat"},
	"head_commit": {"timestamp": "2026-03-10T09:30:00Z"},
	"commits": [
		{"id": "bbb222", "message": "add retry budget\n\ndetails", "author": {"name": "octocat"}}
	]
}`

const prPayload = `{
	"action": "closed",
	"number": 42,
	"pull_request": {
		"title": "Fix flaky upload",
		"body": "Retries transient failures.",
		"state": "closed",
		"merged": true,
		"html_url": "https://github.com/octo/widgets/pull/42",
		"updated_at": "2026-03-11T08:00:00Z",
		"head": {"ref": "fix/upload", "sha": "ccc333"},
		"base": {"sha": "bbb222"},
		"user": {"login": "hubot"}
	},
	"repository": {"full_name": "octo/widgets"}
}`

func TestParsePushEvent(t *testing.T) {
	parsed, err := NewGitHubParser().ParsePushEvent([]byte(pushPayload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.RepoFullName != "octo/widgets" {
		t.Errorf("repo = %q", parsed.RepoFullName)
	}
	if parsed.Type != model.EventTypePush {
		t.Errorf("type = %q", parsed.Type)
	}
	if parsed.Actor != "octocat" {
		t.Errorf("actor = %q", parsed.Actor)
	}
	if parsed.OccurredAt.IsZero() {
		t.Error("occurredAt not taken from head commit")
	}

	push := parsed.Payload.Push
	if push == nil {
		t.Fatal("push payload missing")
	}
	if push.Before != "aaa111" || push.After != "bbb222" {
		t.Errorf("range = %s...%s", push.Before, push.After)
	}
	if len(push.Commits) != 1 || push.Commits[0].SHA != "bbb222" {
		t.Errorf("commits = %+v", push.Commits)
	}
}

func TestParsePullRequestEvent(t *testing.T) {
	parsed, err := NewGitHubParser().ParsePullRequestEvent([]byte(prPayload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed == nil {
		t.Fatal("closed PR should produce an event")
	}
	pr := parsed.Payload.PullRequest
	if pr == nil {
		t.Fatal("pull request payload missing")
	}
	if pr.Number != 42 || !pr.Merged {
		t.Errorf("pr = %+v", pr)
	}
	if pr.BaseSHA != "bbb222" || pr.HeadSHA != "ccc333" {
		t.Errorf("shas = %s / %s", pr.BaseSHA, pr.HeadSHA)
	}
	if parsed.Actor != "hubot" {
		t.Errorf("actor = %q", parsed.Actor)
	}
}

func TestParsePullRequestEvent_UninterestingAction(t *testing.T) {
	payload := `{"action": "labeled", "number": 1, "repository": {"full_name": "octo/widgets"}}`
	parsed, err := NewGitHubParser().ParsePullRequestEvent([]byte(payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != nil {
		t.Errorf("labeled action produced an event: %+v", parsed)
	}
}
