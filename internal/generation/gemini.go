package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"repodigest/internal/cache"
	"repodigest/internal/model"
	"repodigest/pkg/gemini"
	pkgLog "repodigest/pkg/log"
)

// Per-kind cache lifetimes. Digest content is keyed by event so a retry
// within a day reuses the earlier answer; impact analysis is heavier and
// kept longer.
const (
	digestCacheTTL = 24 * time.Hour
	impactCacheTTL = 72 * time.Hour
)

const (
	cacheNameDigest = "generation.digest"
	cacheNameImpact = "generation.impact"
)

type implGateway struct {
	l      pkgLog.Logger
	client *gemini.Client
	cache  *cache.Cache
}

// NewGateway creates the Gemini-backed generation gateway. cache may be nil
// to disable memoization.
func NewGateway(l pkgLog.Logger, client *gemini.Client, c *cache.Cache) *implGateway {
	return &implGateway{l: l, client: client, cache: c}
}

func (g *implGateway) GenerateDigest(ctx context.Context, input DigestInput) (DigestContent, error) {
	if input.APIKey == "" {
		return DigestContent{}, fmt.Errorf("generation: no api key for repository %s", input.RepositoryID)
	}

	// The fingerprint includes the repository id so cached content never
	// leaks across repositories.
	fp := cache.Fingerprint(input.RepositoryID, "digest", input.Event.ID)
	if g.cache != nil {
		if res := g.cache.Get(cacheNameDigest, fp); res.Hit {
			if content, ok := res.Value.(DigestContent); ok {
				g.l.Debugf(ctx, "GenerateDigest: cache hit for event %s", input.Event.ID)
				return content, nil
			}
		}
	}

	prompt := gemini.BuildDigestPrompt(buildActivityContext(input.RepoFullName, input.Event, input.Diffs))

	var content DigestContent
	if err := g.client.WithKey(input.APIKey).GenerateJSON(ctx, prompt, &content); err != nil {
		return DigestContent{}, fmt.Errorf("generation: digest for event %s: %w", input.Event.ID, err)
	}
	if content.Title == "" {
		return DigestContent{}, fmt.Errorf("generation: digest for event %s: missing title", input.Event.ID)
	}
	content.Category = normalizeCategory(content.Category)
	for i := range content.Perspectives {
		content.Perspectives[i].Confidence = clampConfidence(content.Perspectives[i].Confidence)
	}

	if g.cache != nil {
		res := g.cache.Get(cacheNameDigest, fp)
		g.cache.Put(cacheNameDigest, fp, content, digestCacheTTL, res.ExpiredRef)
	}
	return content, nil
}

func (g *implGateway) GeneratePerspective(ctx context.Context, input PerspectiveInput) (model.Perspective, error) {
	if input.APIKey == "" {
		return model.Perspective{}, fmt.Errorf("generation: no api key for repository %s", input.RepositoryID)
	}

	prompt := gemini.BuildPerspectivePrompt(string(input.Category), input.Title, input.Summary)

	var p model.Perspective
	if err := g.client.WithKey(input.APIKey).GenerateJSON(ctx, prompt, &p); err != nil {
		return model.Perspective{}, fmt.Errorf("generation: %s perspective for digest %s: %w", input.Category, input.DigestID, err)
	}
	// The requested category is authoritative even when the model echoes a
	// different one back.
	p.Category = input.Category
	p.Confidence = clampConfidence(p.Confidence)
	return p, nil
}

func (g *implGateway) AnalyzeImpact(ctx context.Context, input ImpactInput) (model.ImpactAnalysis, error) {
	if input.APIKey == "" {
		return model.ImpactAnalysis{}, fmt.Errorf("generation: no api key for repository %s", input.RepositoryID)
	}

	fp := cache.Fingerprint(input.RepositoryID, "impact", input.DigestID, diffFingerprint(input.Diffs))
	if g.cache != nil {
		if res := g.cache.Get(cacheNameImpact, fp); res.Hit {
			if analysis, ok := res.Value.(model.ImpactAnalysis); ok {
				g.l.Debugf(ctx, "AnalyzeImpact: cache hit for digest %s", input.DigestID)
				return analysis, nil
			}
		}
	}

	textContext := buildImpactTextContext(input)
	prompt := gemini.BuildImpactPrompt(buildDiffContext(input.Diffs), textContext)

	var analysis model.ImpactAnalysis
	if err := g.client.WithKey(input.APIKey).GenerateJSON(ctx, prompt, &analysis); err != nil {
		return model.ImpactAnalysis{}, fmt.Errorf("generation: impact for digest %s: %w", input.DigestID, err)
	}
	analysis.OverallRisk = normalizeRisk(analysis.OverallRisk)
	analysis.Confidence = clampConfidence(analysis.Confidence)
	analysis.AnalyzedAt = time.Now().UTC()

	if g.cache != nil {
		res := g.cache.Get(cacheNameImpact, fp)
		g.cache.Put(cacheNameImpact, fp, analysis, impactCacheTTL, res.ExpiredRef)
	}
	return analysis, nil
}

func (g *implGateway) GenerateSummary(ctx context.Context, input SummaryInput) (SummaryContent, error) {
	if input.APIKey == "" {
		return SummaryContent{}, fmt.Errorf("generation: no api key for repository %s", input.RepositoryID)
	}

	prompt := gemini.BuildSummaryPrompt(string(input.Period), input.DigestLines)

	var content SummaryContent
	if err := g.client.WithKey(input.APIKey).GenerateJSON(ctx, prompt, &content); err != nil {
		return SummaryContent{}, fmt.Errorf("generation: %s summary for repository %s: %w", input.Period, input.RepositoryID, err)
	}
	return content, nil
}

func normalizeCategory(c model.DigestCategory) model.DigestCategory {
	switch c {
	case model.CategoryFeature, model.CategoryBugfix, model.CategoryRefactor,
		model.CategoryDocs, model.CategoryChore, model.CategorySecurity:
		return c
	}
	return model.CategoryChore
}

func normalizeRisk(r model.RiskLevel) model.RiskLevel {
	switch r {
	case model.RiskLow, model.RiskMedium, model.RiskHigh:
		return r
	}
	return model.RiskMedium
}

// clampConfidence keeps model-reported confidence inside 0-100.
func clampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func buildImpactTextContext(input ImpactInput) string {
	var parts []string
	if input.PRTitle != "" {
		parts = append(parts, "PR: "+input.PRTitle)
	}
	if input.PRBody != "" {
		parts = append(parts, input.PRBody)
	}
	if input.CommitMessage != "" {
		parts = append(parts, "Commits:\n"+input.CommitMessage)
	}
	return strings.Join(parts, "\n\n")
}

func diffFingerprint(diffs []model.FileDiff) string {
	parts := make([]string, 0, len(diffs))
	for _, d := range diffs {
		parts = append(parts, fmt.Sprintf("%s:%d:%d", d.Filename, d.Additions, d.Deletions))
	}
	return cache.Fingerprint(parts...)
}
