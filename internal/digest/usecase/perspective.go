package usecase

import (
	"context"
	"strings"
	"sync"

	"repodigest/internal/generation"
	"repodigest/internal/model"
)

// maxAdditionalPerspectives caps the fan-out per digest.
const maxAdditionalPerspectives = 3

// fanOutPerspectives generates additional viewpoints concurrently and folds
// the successful ones into the digest. A failed perspective is dropped; it
// never fails the run.
func (uc *implUseCase) fanOutPerspectives(ctx context.Context, apiKey, repositoryID string, d *model.Digest, diffs []model.FileDiff) {
	categories := perspectiveCandidates(d, diffs)
	if len(categories) == 0 {
		return
	}

	results := make([]model.Perspective, len(categories))
	ok := make([]bool, len(categories))

	var wg sync.WaitGroup
	for i, category := range categories {
		wg.Add(1)
		go func(i int, category model.PerspectiveCategory) {
			defer wg.Done()
			p, err := uc.gateway.GeneratePerspective(ctx, generation.PerspectiveInput{
				APIKey:       apiKey,
				RepositoryID: repositoryID,
				DigestID:     d.ID,
				Category:     category,
				Title:        d.Title,
				Summary:      d.Summary,
			})
			if err != nil {
				uc.l.Warnf(ctx, "fanOutPerspectives: %s for digest %s failed: %v", category, d.ID, err)
				return
			}
			results[i] = p
			ok[i] = true
		}(i, category)
	}
	wg.Wait()

	var generated []model.Perspective
	for i := range results {
		if ok[i] {
			generated = append(generated, results[i])
		}
	}
	d.MergePerspectives(generated)
}

// perspectiveCandidates picks which extra viewpoints to request. Rules:
// bugfix and feature digests get a perspective of their own category, diffs
// that look like frontend work add ui, and when no rule fires the digest's
// category decides, with refactor as the general-purpose last resort.
// Categories already present on the digest are not requested again.
func perspectiveCandidates(d *model.Digest, diffs []model.FileDiff) []model.PerspectiveCategory {
	var selected []model.PerspectiveCategory
	switch d.Category {
	case model.CategoryBugfix:
		selected = append(selected, model.PerspectiveBugfix)
	case model.CategoryFeature:
		selected = append(selected, model.PerspectiveFeature)
	}
	if hasUISignal(diffs) {
		selected = append(selected, model.PerspectiveUI)
	}
	if len(selected) == 0 {
		selected = append(selected, fallbackPerspective(d.Category))
	}

	var out []model.PerspectiveCategory
	for _, category := range selected {
		if d.HasPerspective(category) {
			continue
		}
		out = append(out, category)
		if len(out) == maxAdditionalPerspectives {
			break
		}
	}
	return out
}

func fallbackPerspective(c model.DigestCategory) model.PerspectiveCategory {
	switch c {
	case model.CategorySecurity, model.CategoryDocs, model.CategoryRefactor:
		return model.PerspectiveCategory(c)
	default:
		return model.PerspectiveRefactor
	}
}

// hasUISignal reports whether the diffs suggest frontend work.
func hasUISignal(diffs []model.FileDiff) bool {
	for _, diff := range diffs {
		name := strings.ToLower(diff.Filename)
		if strings.HasSuffix(name, ".tsx") || strings.HasSuffix(name, ".jsx") || strings.Contains(name, "component") {
			return true
		}
	}
	return false
}
