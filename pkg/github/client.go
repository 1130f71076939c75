// Package github retrieves file diffs from the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub REST client for diff retrieval.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub client. An empty token yields an unauthenticated
// client, which is enough for public repositories.
func NewClient(ctx context.Context, token string) *Client {
	if token == "" {
		return &Client{gh: gh.NewClient(nil)}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{gh: gh.NewClient(oauth2.NewClient(ctx, ts))}
}

// SetBaseURL overrides the API endpoint (used in tests).
func (c *Client) SetBaseURL(rawURL string) error {
	if !strings.HasSuffix(rawURL, "/") {
		rawURL += "/"
	}
	parsed, err := c.gh.BaseURL.Parse(rawURL)
	if err != nil {
		return err
	}
	c.gh.BaseURL = parsed
	return nil
}

// CompareFiles returns the files changed between two commits.
func (c *Client) CompareFiles(ctx context.Context, owner, repo, base, head string) ([]FileDiff, error) {
	var diffs []FileDiff
	opts := &gh.ListOptions{PerPage: 100}
	for {
		cmp, resp, err := c.gh.Repositories.CompareCommits(ctx, owner, repo, base, head, opts)
		if err != nil {
			return nil, fmt.Errorf("github: compare %s...%s: %w", base, head, err)
		}
		diffs = append(diffs, mapFiles(cmp.Files)...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return diffs, nil
}

// PullRequestFiles returns the files changed in a pull request.
func (c *Client) PullRequestFiles(ctx context.Context, owner, repo string, number int) ([]FileDiff, error) {
	var diffs []FileDiff
	opts := &gh.ListOptions{PerPage: 100}
	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("github: list files for PR #%d: %w", number, err)
		}
		diffs = append(diffs, mapFiles(files)...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return diffs, nil
}

// SplitFullName splits "owner/repo" into its parts.
func SplitFullName(fullName string) (owner, repo string, err error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("github: invalid repository full name %q", fullName)
	}
	return parts[0], parts[1], nil
}

func mapFiles(files []*gh.CommitFile) []FileDiff {
	diffs := make([]FileDiff, 0, len(files))
	for _, f := range files {
		diffs = append(diffs, FileDiff{
			Filename:  f.GetFilename(),
			Status:    f.GetStatus(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Patch:     f.GetPatch(),
		})
	}
	return diffs
}
