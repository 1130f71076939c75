package http

import (
	"time"

	"repodigest/internal/digest"
	"repodigest/internal/model"
)

// --- Request DTOs ---

type listReq struct {
	RepositoryID string `form:"repository_id" binding:"required"`
	From         string `form:"from"`
	To           string `form:"to"`
	Limit        int    `form:"limit"`
}

func (r listReq) toInput() digest.ListInput {
	limit := r.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	in := digest.ListInput{
		RepositoryID: r.RepositoryID,
		Limit:        limit,
	}
	if t, err := time.Parse(time.RFC3339, r.From); err == nil {
		in.From = t
	}
	if t, err := time.Parse(time.RFC3339, r.To); err == nil {
		in.To = t
	}
	return in
}

// --- Response DTOs ---

type digestResp struct {
	ID             string                `json:"id"`
	RepositoryID   string                `json:"repository_id"`
	EventID        string                `json:"event_id,omitempty"`
	Title          string                `json:"title"`
	Summary        string                `json:"summary"`
	Category       model.DigestCategory  `json:"category,omitempty"`
	Contributors   []string              `json:"contributors,omitempty"`
	Metadata       model.DigestMetadata  `json:"metadata"`
	WhyThisMatters string                `json:"why_this_matters,omitempty"`
	ImpactAnalysis *model.ImpactAnalysis `json:"impact_analysis,omitempty"`
	Perspectives   []model.Perspective   `json:"perspectives,omitempty"`
	Pending        bool                  `json:"pending"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func newDigestResp(d model.Digest) digestResp {
	return digestResp{
		ID:             d.ID,
		RepositoryID:   d.RepositoryID,
		EventID:        d.EventID,
		Title:          d.Title,
		Summary:        d.Summary,
		Category:       d.Category,
		Contributors:   d.Contributors,
		Metadata:       d.Metadata,
		WhyThisMatters: d.WhyThisMatters,
		ImpactAnalysis: d.ImpactAnalysis,
		Perspectives:   d.Perspectives,
		Pending:        d.Summary == model.PlaceholderSummary,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type detailResp struct {
	Digest digestResp `json:"digest"`
}

func newDetailResp(d model.Digest) detailResp {
	return detailResp{Digest: newDigestResp(d)}
}

type listResp struct {
	Digests []digestResp `json:"digests"`
	Total   int          `json:"total"`
}

func newListResp(digests []model.Digest) listResp {
	out := make([]digestResp, len(digests))
	for i, d := range digests {
		out[i] = newDigestResp(d)
	}
	return listResp{Digests: out, Total: len(out)}
}
