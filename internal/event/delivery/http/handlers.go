package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"repodigest/internal/event"
	"repodigest/internal/model"
	"repodigest/pkg/response"
)

// Detail godoc
// @Summary     Get event detail
// @Description Returns a single activity event with its pipeline status.
// @Tags        Event
// @Produce     json
// @Param       id path string true "Event ID"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/events/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	ev, err := h.uc.Get(ctx, model.SystemScope(), id)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			response.NotFound(c, err)
			return
		}
		h.l.Errorf(ctx, "uc.Get: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, newDetailResp(ev))
}

// List godoc
// @Summary     List events
// @Description Returns activity events for a repository, newest first.
// @Tags        Event
// @Produce     json
// @Param       repository_id query string true  "Repository ID"
// @Param       from          query string false "RFC3339 lower bound on occurrence time"
// @Param       to            query string false "RFC3339 upper bound on occurrence time"
// @Param       limit         query int    false "Page size (default: 50)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/events [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	events, err := h.uc.List(ctx, model.SystemScope(), req.toInput())
	if err != nil {
		if errors.Is(err, event.ErrMissingRepository) {
			response.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, newListResp(events))
}

// --- DTOs ---

type listReq struct {
	RepositoryID string `form:"repository_id" binding:"required"`
	From         string `form:"from"`
	To           string `form:"to"`
	Limit        int    `form:"limit"`
}

func (r listReq) toInput() event.ListInput {
	limit := r.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	in := event.ListInput{
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

type eventResp struct {
	ID           string            `json:"id"`
	DeliveryID   string            `json:"delivery_id"`
	RepositoryID string            `json:"repository_id"`
	Type         model.EventType   `json:"type"`
	Actor        string            `json:"actor"`
	Status       model.EventStatus `json:"status"`
	ErrorMessage string            `json:"error_message,omitempty"`
	OccurredAt   time.Time         `json:"occurred_at"`
	ProcessedAt  *time.Time        `json:"processed_at,omitempty"`
}

func newEventResp(ev model.Event) eventResp {
	return eventResp{
		ID:           ev.ID,
		DeliveryID:   ev.DeliveryID,
		RepositoryID: ev.RepositoryID,
		Type:         ev.Type,
		Actor:        ev.Actor,
		Status:       ev.Status,
		ErrorMessage: ev.ErrorMessage,
		OccurredAt:   ev.OccurredAt,
		ProcessedAt:  ev.ProcessedAt,
	}
}

type detailResp struct {
	Event eventResp `json:"event"`
}

func newDetailResp(ev model.Event) detailResp {
	return detailResp{Event: newEventResp(ev)}
}

type listResp struct {
	Events []eventResp `json:"events"`
	Total  int         `json:"total"`
}

func newListResp(events []model.Event) listResp {
	out := make([]eventResp, len(events))
	for i, ev := range events {
		out[i] = newEventResp(ev)
	}
	return listResp{Events: out, Total: len(out)}
}
