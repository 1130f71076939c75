package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"repodigest/pkg/github"
)

func TestSplitFullName(t *testing.T) {
	owner, repo, err := github.SplitFullName("octo/hello-world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != "octo" || repo != "hello-world" {
		t.Errorf("unexpected split: %s %s", owner, repo)
	}

	for _, bad := range []string{"", "noslash", "/repo", "owner/"} {
		if _, _, err := github.SplitFullName(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestCompareFiles(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/repos/octo/hello/compare/abc...def") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"files": [
				{"filename": "internal/parser.go", "status": "modified", "additions": 10, "deletions": 2, "patch": "@@ -1 +1 @@"},
				{"filename": "web/Button.tsx", "status": "added", "additions": 40, "deletions": 0}
			]
		}`))
	}))
	defer ts.Close()

	client := github.NewClient(context.Background(), "")
	if err := client.SetBaseURL(ts.URL); err != nil {
		t.Fatalf("set base url: %v", err)
	}

	diffs, err := client.CompareFiles(context.Background(), "octo", "hello", "abc", "def")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diffs) != 2 {
		t.Fatalf("expected 2 diffs, got %d", len(diffs))
	}
	if diffs[0].Filename != "internal/parser.go" || diffs[0].Additions != 10 {
		t.Errorf("unexpected first diff: %+v", diffs[0])
	}
	if diffs[1].Status != "added" {
		t.Errorf("unexpected second diff: %+v", diffs[1])
	}
}

func TestPullRequestFiles(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/repos/octo/hello/pulls/7/files") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"filename": "README.md", "status": "modified", "additions": 1, "deletions": 1}
		]`))
	}))
	defer ts.Close()

	client := github.NewClient(context.Background(), "")
	if err := client.SetBaseURL(ts.URL); err != nil {
		t.Fatalf("set base url: %v", err)
	}

	diffs, err := client.PullRequestFiles(context.Background(), "octo", "hello", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diffs) != 1 || diffs[0].Filename != "README.md" {
		t.Errorf("unexpected diffs: %+v", diffs)
	}
}
