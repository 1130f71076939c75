package generation

import (
	"fmt"
	"strings"

	"repodigest/internal/model"
)

// Context assembly caps. The prompt carries a bounded slice of the activity
// so one giant push cannot blow the request size.
const (
	maxContextCommits   = 20
	maxContextDiffs     = 30
	maxContextPatchLen  = 1500
	maxContextBodyChars = 2000
)

// buildActivityContext renders an event into the plain-text block the digest
// prompt consumes.
func buildActivityContext(repoFullName string, ev model.Event, diffs []model.FileDiff) string {
	var b strings.Builder
	fmt.Fprintf(&b, "REPOSITORY: %s\n", repoFullName)
	fmt.Fprintf(&b, "EVENT: %s by %s at %s\n", ev.Type, ev.Actor, ev.OccurredAt.UTC().Format("2006-01-02 15:04"))

	switch ev.Payload.Kind {
	case model.EventTypePush:
		if p := ev.Payload.Push; p != nil {
			fmt.Fprintf(&b, "BRANCH: %s\n", branchFromRef(p.Ref))
			fmt.Fprintf(&b, "COMMITS (%d):\n", len(p.Commits))
			for i, c := range p.Commits {
				if i >= maxContextCommits {
					fmt.Fprintf(&b, "... and %d more commits\n", len(p.Commits)-maxContextCommits)
					break
				}
				fmt.Fprintf(&b, "- %s (%s)\n", firstLine(c.Message), c.Author)
			}
		}
	case model.EventTypePullRequest:
		if p := ev.Payload.PullRequest; p != nil {
			fmt.Fprintf(&b, "PULL REQUEST #%d: %s\n", p.Number, p.Title)
			fmt.Fprintf(&b, "STATE: %s (merged=%t), BRANCH: %s\n", p.State, p.Merged, p.Branch)
			if p.Body != "" {
				fmt.Fprintf(&b, "DESCRIPTION:\n%s\n", truncate(p.Body, maxContextBodyChars))
			}
		}
	}

	if len(diffs) > 0 {
		b.WriteString("\nCHANGED FILES:\n")
		b.WriteString(buildDiffContext(diffs))
	}
	return b.String()
}

// buildDiffContext renders diffs into the plain-text block the prompts
// consume. Patches are truncated per file.
func buildDiffContext(diffs []model.FileDiff) string {
	var b strings.Builder
	for i, d := range diffs {
		if i >= maxContextDiffs {
			fmt.Fprintf(&b, "... and %d more files\n", len(diffs)-maxContextDiffs)
			break
		}
		fmt.Fprintf(&b, "%s (%s, +%d/-%d)\n", d.Filename, d.Status, d.Additions, d.Deletions)
		if d.Patch != "" {
			b.WriteString(truncate(d.Patch, maxContextPatchLen))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func branchFromRef(ref string) string {
	return strings.TrimPrefix(ref, "refs/heads/")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
