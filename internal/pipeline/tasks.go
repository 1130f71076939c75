// Package pipeline defines the durable task kinds and payloads that connect
// the pipeline's steps. All cross-step handoff goes through the scheduler
// with these contracts; there is no shared in-process state between steps.
package pipeline

import (
	"time"

	"repodigest/internal/model"
)

// Task kinds handled by the worker.
const (
	// TaskDigestRun drives one event through digest creation and generation.
	TaskDigestRun = "digest.run"

	// TaskImpactAnalysis annotates a completed digest with risk analysis.
	// Scheduled fire-and-forget; it never blocks digest completion.
	TaskImpactAnalysis = "digest.impact"

	// TaskSummaryRollup folds completed digests into a period summary.
	TaskSummaryRollup = "summary.rollup"
)

// Caps applied when scheduling impact analysis. Diffs are ranked by churn and
// truncated so the follow-up task carries a bounded payload.
const (
	MaxImpactDiffs      = 8
	MaxImpactPatchChars = 2500
	MaxImpactContextLen = 2000
)

// DigestRunPayload starts the orchestrator for one event.
type DigestRunPayload struct {
	EventID string `json:"event_id"`
}

// ImpactPayload carries the capped inputs of one impact analysis.
type ImpactPayload struct {
	DigestID      string           `json:"digest_id"`
	RepositoryID  string           `json:"repository_id"`
	UserID        string           `json:"user_id"`
	FileDiffs     []model.FileDiff `json:"file_diffs"`
	CommitMessage string           `json:"commit_message,omitempty"`
	PRTitle       string           `json:"pr_title,omitempty"`
	PRBody        string           `json:"pr_body,omitempty"`
}

// RollupPayload triggers one period summary update.
type RollupPayload struct {
	RepositoryID string              `json:"repository_id"`
	UserID       string              `json:"user_id"`
	Period       model.SummaryPeriod `json:"period"`
	PeriodStart  time.Time           `json:"period_start"`
	DigestIDs    []string            `json:"digest_ids"`
}
