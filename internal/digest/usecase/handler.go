package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"repodigest/internal/model"
	"repodigest/internal/pipeline"
	"repodigest/internal/scheduler"
)

// RunHandler adapts Run for the task worker. A payload that does not parse
// is terminal; retrying cannot fix it.
func (uc *implUseCase) RunHandler() scheduler.Handler {
	return func(ctx context.Context, payload []byte) error {
		var p pipeline.DigestRunPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return scheduler.Terminal(fmt.Errorf("bad digest.run payload: %w", err))
		}
		return uc.Run(ctx, model.SystemScope(), p.EventID)
	}
}

// ImpactHandler adapts the impact analysis step for the task worker.
func (uc *implUseCase) ImpactHandler() scheduler.Handler {
	return func(ctx context.Context, payload []byte) error {
		var p pipeline.ImpactPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return scheduler.Terminal(fmt.Errorf("bad digest.impact payload: %w", err))
		}
		sc := model.SystemScope()
		if p.UserID != "" {
			sc = model.Scope{UserID: p.UserID}
		}
		return uc.analyzeImpact(ctx, sc, p)
	}
}
