package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"repodigest/internal/model"
	"repodigest/internal/registry"
	"repodigest/pkg/response"
)

// Register godoc
// @Summary     Track a repository
// @Description Starts digesting activity for a repository. Registering a tracked repository is a no-op.
// @Tags        Registry
// @Accept      json
// @Produce     json
// @Param       body body registerReq true "Repository data"
// @Success     200 {object} repositoryResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/repositories [POST]
func (h *handler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	repo, err := h.uc.Register(ctx, model.SystemScope(), req.toInput())
	if err != nil {
		if errors.Is(err, registry.ErrMissingFullName) || errors.Is(err, registry.ErrMissingOwner) {
			response.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "uc.Register: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, newRepositoryResp(repo))
}

// List godoc
// @Summary     List tracked repositories
// @Description Returns tracked repositories, optionally filtered by owner.
// @Tags        Registry
// @Produce     json
// @Param       owner_id query string false "Owner ID"
// @Success     200 {object} listResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/repositories [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	repos, err := h.uc.List(ctx, model.SystemScope(), c.Query("owner_id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, newListResp(repos))
}

// SetCredential godoc
// @Summary     Store an owner credential
// @Description Stores or replaces the generation API key for a repository owner.
// @Tags        Registry
// @Accept      json
// @Produce     json
// @Param       body body credentialReq true "Credential data"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/credentials [PUT]
func (h *handler) SetCredential(c *gin.Context) {
	ctx := c.Request.Context()

	var req credentialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	err := h.uc.SetCredential(ctx, model.SystemScope(), registry.SetCredentialInput{
		OwnerID: req.OwnerID,
		APIKey:  req.APIKey,
	})
	if err != nil {
		if errors.Is(err, registry.ErrMissingOwner) || errors.Is(err, registry.ErrMissingAPIKey) {
			response.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "uc.SetCredential: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, nil)
}

// SetCodeIndexStatus godoc
// @Summary     Update code index readiness
// @Description Marks a repository's code index as none, pending, or completed. Impact analysis only runs once the index is completed.
// @Tags        Registry
// @Accept      json
// @Produce     json
// @Param       id   path string        true "Repository ID"
// @Param       body body codeIndexReq true "Code index status"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/repositories/{id}/code-index [PUT]
func (h *handler) SetCodeIndexStatus(c *gin.Context) {
	ctx := c.Request.Context()

	var req codeIndexReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	err := h.uc.SetCodeIndexStatus(ctx, model.SystemScope(), c.Param("id"), model.CodeIndexStatus(req.Status))
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			response.NotFound(c, err)
			return
		}
		h.l.Errorf(ctx, "uc.SetCodeIndexStatus: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, nil)
}

// --- DTOs ---

type registerReq struct {
	FullName      string `json:"full_name" binding:"required"`
	OwnerID       string `json:"owner_id" binding:"required"`
	DefaultBranch string `json:"default_branch"`
}

func (r registerReq) toInput() registry.RegisterInput {
	return registry.RegisterInput{
		FullName:      r.FullName,
		OwnerID:       r.OwnerID,
		DefaultBranch: r.DefaultBranch,
	}
}

type credentialReq struct {
	OwnerID string `json:"owner_id" binding:"required"`
	APIKey  string `json:"api_key" binding:"required"`
}

type codeIndexReq struct {
	Status string `json:"status" binding:"required,oneof=none pending completed"`
}

type repositoryResp struct {
	ID              string                `json:"id"`
	FullName        string                `json:"full_name"`
	OwnerID         string                `json:"owner_id"`
	DefaultBranch   string                `json:"default_branch"`
	CodeIndexStatus model.CodeIndexStatus `json:"code_index_status"`
	CreatedAt       time.Time             `json:"created_at"`
}

func newRepositoryResp(repo model.Repository) repositoryResp {
	return repositoryResp{
		ID:              repo.ID,
		FullName:        repo.FullName,
		OwnerID:         repo.OwnerID,
		DefaultBranch:   repo.DefaultBranch,
		CodeIndexStatus: repo.CodeIndexStatus,
		CreatedAt:       repo.CreatedAt,
	}
}

type listResp struct {
	Repositories []repositoryResp `json:"repositories"`
	Total        int              `json:"total"`
}

func newListResp(repos []model.Repository) listResp {
	out := make([]repositoryResp, len(repos))
	for i, repo := range repos {
		out[i] = newRepositoryResp(repo)
	}
	return listResp{Repositories: out, Total: len(out)}
}
