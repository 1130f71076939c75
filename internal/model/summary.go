package model

import "time"

// SummaryPeriod is the rollup window size.
type SummaryPeriod string

const (
	PeriodDaily   SummaryPeriod = "daily"
	PeriodWeekly  SummaryPeriod = "weekly"
	PeriodMonthly SummaryPeriod = "monthly"
)

// AllPeriods lists the rollup windows triggered after each digest completion.
var AllPeriods = []SummaryPeriod{PeriodDaily, PeriodWeekly, PeriodMonthly}

// PeriodStart truncates t to the start of the period containing it, in UTC.
// Weeks start on Monday.
func (p SummaryPeriod) PeriodStart(t time.Time) time.Time {
	t = t.UTC()
	switch p {
	case PeriodWeekly:
		day := t.Truncate(24 * time.Hour)
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday belongs to the week that started last Monday
		}
		return day.AddDate(0, 0, -(weekday - 1))
	case PeriodMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return t.Truncate(24 * time.Hour)
	}
}

// SummaryMetrics holds aggregate counters for a summary.
type SummaryMetrics struct {
	TotalItems int `json:"total_items"`
}

// Summary is the aggregate rollup of digests over one period.
// Exactly one Summary exists per (RepositoryID, Period, PeriodStart).
type Summary struct {
	ID                string         `json:"id" gorm:"primaryKey;size:36"`
	RepositoryID      string         `json:"repository_id" gorm:"size:36;uniqueIndex:uniq_repo_period"`
	Period            SummaryPeriod  `json:"period" gorm:"size:10;uniqueIndex:uniq_repo_period"`
	PeriodStart       time.Time      `json:"period_start" gorm:"uniqueIndex:uniq_repo_period"`
	Headline          string         `json:"headline" gorm:"size:512"`
	Accomplishments   []string       `json:"accomplishments,omitempty" gorm:"serializer:json"`
	KeyFeatures       []string       `json:"key_features,omitempty" gorm:"serializer:json"`
	WorkBreakdown     map[string]int `json:"work_breakdown,omitempty" gorm:"serializer:json"`
	Metrics           SummaryMetrics `json:"metrics" gorm:"serializer:json"`
	IncludedDigestIDs []string       `json:"included_digest_ids" gorm:"serializer:json"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (Summary) TableName() string { return "summaries" }

// AppendDigestIDs adds ids not already included. Returns how many were new.
func (s *Summary) AppendDigestIDs(ids []string) int {
	seen := make(map[string]struct{}, len(s.IncludedDigestIDs))
	for _, id := range s.IncludedDigestIDs {
		seen[id] = struct{}{}
	}
	added := 0
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		s.IncludedDigestIDs = append(s.IncludedDigestIDs, id)
		added++
	}
	return added
}
