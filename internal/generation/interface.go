package generation

import (
	"context"

	"repodigest/internal/model"
)

// Gateway is the interface to the content generation backend. Implementations
// must be safe for concurrent use; the digest pipeline fans perspective calls
// out in parallel.
type Gateway interface {
	// GenerateDigest produces the digest content for one event.
	GenerateDigest(ctx context.Context, input DigestInput) (DigestContent, error)

	// GeneratePerspective produces one additional viewpoint for a digest.
	GeneratePerspective(ctx context.Context, input PerspectiveInput) (model.Perspective, error)

	// AnalyzeImpact produces the risk assessment for a set of diffs.
	AnalyzeImpact(ctx context.Context, input ImpactInput) (model.ImpactAnalysis, error)

	// GenerateSummary produces the aggregate content for a period summary.
	GenerateSummary(ctx context.Context, input SummaryInput) (SummaryContent, error)
}

// DiffProvider retrieves the changed files for an event from the host.
type DiffProvider interface {
	FetchForEvent(ctx context.Context, repo model.Repository, ev model.Event) ([]model.FileDiff, error)
}
