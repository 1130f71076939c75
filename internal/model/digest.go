package model

import "time"

// DigestCategory classifies the overall change.
type DigestCategory string

const (
	CategoryFeature  DigestCategory = "feature"
	CategoryBugfix   DigestCategory = "bugfix"
	CategoryRefactor DigestCategory = "refactor"
	CategoryDocs     DigestCategory = "docs"
	CategoryChore    DigestCategory = "chore"
	CategorySecurity DigestCategory = "security"
)

// PerspectiveCategory classifies one viewpoint on a digest.
// It extends DigestCategory with "ui".
type PerspectiveCategory string

const (
	PerspectiveFeature  PerspectiveCategory = "feature"
	PerspectiveBugfix   PerspectiveCategory = "bugfix"
	PerspectiveRefactor PerspectiveCategory = "refactor"
	PerspectiveDocs     PerspectiveCategory = "docs"
	PerspectiveChore    PerspectiveCategory = "chore"
	PerspectiveSecurity PerspectiveCategory = "security"
	PerspectiveUI       PerspectiveCategory = "ui"
)

// Perspective is one categorized viewpoint on a digest.
type Perspective struct {
	Category   PerspectiveCategory `json:"category"`
	Title      string              `json:"title"`
	Summary    string              `json:"summary"`
	Confidence int                 `json:"confidence"` // 0-100
}

// RiskLevel is the overall risk of an impact analysis.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// FileImpact is the per-file breakdown of an impact analysis.
type FileImpact struct {
	Filename string    `json:"filename"`
	Risk     RiskLevel `json:"risk"`
	Reason   string    `json:"reason,omitempty"`
}

// ImpactAnalysis is the risk assessment attached to a digest after the fact.
type ImpactAnalysis struct {
	OverallRisk        RiskLevel    `json:"overall_risk"`
	Confidence         int          `json:"confidence"` // 0-100
	OverallExplanation string       `json:"overall_explanation,omitempty"`
	AffectedFiles      []FileImpact `json:"affected_files,omitempty"`
	AnalyzedAt         time.Time    `json:"analyzed_at"`
}

// DigestMetadata holds cheap counters derived from the payload without any
// generation call.
type DigestMetadata struct {
	CommitCount int    `json:"commit_count,omitempty"`
	PRNumber    int    `json:"pr_number,omitempty"`
	PRURL       string `json:"pr_url,omitempty"`
	PRState     string `json:"pr_state,omitempty"`
	Branch      string `json:"branch,omitempty"`
	CompareURL  string `json:"compare_url,omitempty"`
}

// PlaceholderSummary marks a digest whose generation is still in flight.
// Consumers use it to detect the in-flight state.
const PlaceholderSummary = "Analyzing changes..."

// Digest is the user-facing artifact produced for one event.
// CreatedAt is the event's OccurredAt, not ingestion wall-clock time, so the
// feed reflects when the activity happened.
type Digest struct {
	ID             string          `json:"id" gorm:"primaryKey;size:36"`
	RepositoryID   string          `json:"repository_id" gorm:"size:36;index"`
	EventID        string          `json:"event_id,omitempty" gorm:"size:36;index"`
	Title          string          `json:"title" gorm:"size:512"`
	Summary        string          `json:"summary" gorm:"type:text"`
	Category       DigestCategory  `json:"category,omitempty" gorm:"size:20"`
	Contributors   []string        `json:"contributors,omitempty" gorm:"serializer:json"`
	Metadata       DigestMetadata  `json:"metadata" gorm:"serializer:json"`
	WhyThisMatters string          `json:"why_this_matters,omitempty" gorm:"type:text"`
	ImpactAnalysis *ImpactAnalysis `json:"impact_analysis,omitempty" gorm:"serializer:json"`
	Perspectives   []Perspective   `json:"perspectives,omitempty" gorm:"serializer:json"`
	CreatedAt      time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Digest) TableName() string { return "digests" }

// HasPerspective reports whether a perspective for the category exists.
func (d *Digest) HasPerspective(category PerspectiveCategory) bool {
	for _, p := range d.Perspectives {
		if p.Category == category {
			return true
		}
	}
	return false
}

// MergePerspectives folds new perspectives into the digest, keeping at most
// one entry per category. First writer wins; the merge is idempotent and
// commutative per category, so concurrent results can be applied in any order.
func (d *Digest) MergePerspectives(incoming []Perspective) {
	for _, p := range incoming {
		if p.Category == "" || d.HasPerspective(p.Category) {
			continue
		}
		d.Perspectives = append(d.Perspectives, p)
	}
}
