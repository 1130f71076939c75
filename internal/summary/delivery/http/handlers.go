package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"repodigest/internal/model"
	"repodigest/internal/summary"
	"repodigest/pkg/response"
)

// List godoc
// @Summary     List period summaries
// @Description Returns rollup summaries for a repository, newest period first.
// @Tags        Summary
// @Produce     json
// @Param       repository_id query string true  "Repository ID"
// @Param       period        query string false "daily, weekly or monthly (default: all)"
// @Param       limit         query int    false "Page size (default: 20)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/summaries [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	summaries, err := h.uc.List(ctx, model.SystemScope(), req.toInput())
	if err != nil {
		if errors.Is(err, summary.ErrMissingRepository) || errors.Is(err, summary.ErrInvalidPeriod) {
			response.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, newListResp(summaries))
}

// --- DTOs ---

type listReq struct {
	RepositoryID string `form:"repository_id" binding:"required"`
	Period       string `form:"period" binding:"omitempty,oneof=daily weekly monthly"`
	Limit        int    `form:"limit"`
}

func (r listReq) toInput() summary.ListInput {
	limit := r.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return summary.ListInput{
		RepositoryID: r.RepositoryID,
		Period:       model.SummaryPeriod(r.Period),
		Limit:        limit,
	}
}

type summaryResp struct {
	ID                string              `json:"id"`
	RepositoryID      string              `json:"repository_id"`
	Period            model.SummaryPeriod `json:"period"`
	PeriodStart       time.Time           `json:"period_start"`
	Headline          string              `json:"headline"`
	Accomplishments   []string            `json:"accomplishments,omitempty"`
	KeyFeatures       []string            `json:"key_features,omitempty"`
	WorkBreakdown     map[string]int      `json:"work_breakdown,omitempty"`
	TotalItems        int                 `json:"total_items"`
	IncludedDigestIDs []string            `json:"included_digest_ids"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func newSummaryResp(s model.Summary) summaryResp {
	return summaryResp{
		ID:                s.ID,
		RepositoryID:      s.RepositoryID,
		Period:            s.Period,
		PeriodStart:       s.PeriodStart,
		Headline:          s.Headline,
		Accomplishments:   s.Accomplishments,
		KeyFeatures:       s.KeyFeatures,
		WorkBreakdown:     s.WorkBreakdown,
		TotalItems:        s.Metrics.TotalItems,
		IncludedDigestIDs: s.IncludedDigestIDs,
		UpdatedAt:         s.UpdatedAt,
	}
}

type listResp struct {
	Summaries []summaryResp `json:"summaries"`
	Total     int           `json:"total"`
}

func newListResp(summaries []model.Summary) listResp {
	out := make([]summaryResp, len(summaries))
	for i, s := range summaries {
		out[i] = newSummaryResp(s)
	}
	return listResp{Summaries: out, Total: len(out)}
}
