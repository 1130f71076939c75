package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"repodigest/internal/digest"
	"repodigest/internal/model"
	"repodigest/pkg/response"
)

// Detail godoc
// @Summary     Get digest detail
// @Description Returns a single digest by its ID, including perspectives and impact analysis.
// @Tags        Digest
// @Produce     json
// @Param       id path string true "Digest ID"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/digests/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	d, err := h.uc.Get(ctx, model.SystemScope(), id)
	if err != nil {
		if errors.Is(err, digest.ErrNotFound) {
			response.NotFound(c, err)
			return
		}
		h.l.Errorf(ctx, "uc.Get: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, newDetailResp(d))
}

// List godoc
// @Summary     List digests
// @Description Returns digests for a repository, newest activity first.
// @Tags        Digest
// @Produce     json
// @Param       repository_id query string true  "Repository ID"
// @Param       from          query string false "RFC3339 lower bound on activity time"
// @Param       to            query string false "RFC3339 upper bound on activity time"
// @Param       limit         query int    false "Page size (default: 50)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/digests [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	digests, err := h.uc.List(ctx, model.SystemScope(), req.toInput())
	if err != nil {
		if errors.Is(err, digest.ErrMissingRepository) {
			response.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, newListResp(digests))
}
