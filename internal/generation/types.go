package generation

import "repodigest/internal/model"

// DigestInput carries everything one digest generation call needs. APIKey is
// the already resolved credential for the repository's owner.
type DigestInput struct {
	APIKey       string
	RepositoryID string
	RepoFullName string
	Event        model.Event
	Diffs        []model.FileDiff
}

// DigestContent is the model's answer for one digest.
type DigestContent struct {
	Title          string               `json:"title"`
	Summary        string               `json:"summary"`
	Category       model.DigestCategory `json:"category"`
	WhyThisMatters string               `json:"why_this_matters"`
	Perspectives   []model.Perspective  `json:"perspectives"`
}

// PerspectiveInput requests one additional viewpoint on a generated digest.
type PerspectiveInput struct {
	APIKey       string
	RepositoryID string
	DigestID     string
	Category     model.PerspectiveCategory
	Title        string
	Summary      string
}

// ImpactInput carries the capped diffs and text context of one risk analysis.
type ImpactInput struct {
	APIKey        string
	RepositoryID  string
	DigestID      string
	Diffs         []model.FileDiff
	CommitMessage string
	PRTitle       string
	PRBody        string
}

// SummaryInput requests the aggregate content for one period.
type SummaryInput struct {
	APIKey       string
	RepositoryID string
	Period       model.SummaryPeriod
	DigestLines  []string // "[category] title: summary" per included digest
}

// SummaryContent is the model's answer for one period summary.
type SummaryContent struct {
	Headline        string         `json:"headline"`
	Accomplishments []string       `json:"accomplishments"`
	KeyFeatures     []string       `json:"key_features"`
	WorkBreakdown   map[string]int `json:"work_breakdown"`
}
