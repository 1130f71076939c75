package webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"repodigest/internal/event"
	"repodigest/internal/model"
	"repodigest/internal/registry"
	pkgResponse "repodigest/pkg/response"
)

// HandleGitHubWebhook processes GitHub webhook deliveries. The event is
// persisted and the pipeline scheduled before the delivery is acknowledged,
// so a crash after the 200 cannot lose work.
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	signature := c.GetHeader("X-Hub-Signature-256")
	if err := h.security.ValidateGitHubSignature(body, signature); err != nil {
		h.l.Errorf(ctx, "GitHub signature verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "Webhook IP rejected: %v", err)
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := h.security.CheckRateLimit("github"); err != nil {
		h.l.Warnf(ctx, "Rate limit exceeded: %v", err)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	deliveryID := c.GetHeader("X-GitHub-Delivery")
	if deliveryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing delivery id"})
		return
	}

	eventType := c.GetHeader("X-GitHub-Event")

	var parsed *ParsedEvent
	switch eventType {
	case "push":
		parsed, err = h.parser.ParsePushEvent(body)
	case "pull_request":
		parsed, err = h.parser.ParsePullRequestEvent(body)
	default:
		h.l.Infof(ctx, "Unsupported GitHub event type: %s", eventType)
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "unsupported event type"})
		return
	}

	if err != nil {
		h.l.Errorf(ctx, "Failed to parse GitHub event: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}
	if parsed == nil {
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "uninteresting action"})
		return
	}

	sc := model.SystemScope()
	repo, err := h.registryUC.GetByFullName(ctx, sc, parsed.RepoFullName)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			h.l.Infof(ctx, "Webhook for untracked repository %s ignored", parsed.RepoFullName)
			pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "repository not tracked"})
			return
		}
		h.l.Errorf(ctx, "Failed to resolve repository %s: %v", parsed.RepoFullName, err)
		pkgResponse.InternalError(c, err)
		return
	}

	output, err := h.eventUC.Ingest(ctx, sc, event.IngestInput{
		DeliveryID:   deliveryID,
		RepositoryID: repo.ID,
		Type:         parsed.Type,
		Actor:        parsed.Actor,
		OccurredAt:   parsed.OccurredAt,
		Payload:      parsed.Payload,
	})
	if err != nil {
		h.l.Errorf(ctx, "Failed to ingest delivery %s: %v", deliveryID, err)
		pkgResponse.InternalError(c, err)
		return
	}

	status := "accepted"
	if output.Duplicate {
		status = "duplicate"
	}
	pkgResponse.OK(c, gin.H{"status": status, "event_id": output.EventID})
}
