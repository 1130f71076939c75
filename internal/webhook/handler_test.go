package webhook

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"repodigest/internal/event"
	"repodigest/internal/model"
	"repodigest/internal/registry"
	pkgLog "repodigest/pkg/log"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

var _ pkgLog.Logger = (*mockLogger)(nil)

type mockEventUC struct {
	mu      sync.Mutex
	ingests []event.IngestInput
	seen    map[string]string
}

func newMockEventUC() *mockEventUC {
	return &mockEventUC{seen: make(map[string]string)}
}

func (m *mockEventUC) Ingest(ctx context.Context, sc model.Scope, input event.IngestInput) (event.IngestOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingests = append(m.ingests, input)
	if id, ok := m.seen[input.DeliveryID]; ok {
		return event.IngestOutput{EventID: id, Duplicate: true}, nil
	}
	id := "event-" + input.DeliveryID
	m.seen[input.DeliveryID] = id
	return event.IngestOutput{EventID: id}, nil
}

func (m *mockEventUC) Get(ctx context.Context, sc model.Scope, id string) (model.Event, error) {
	return model.Event{}, event.ErrNotFound
}

func (m *mockEventUC) List(ctx context.Context, sc model.Scope, input event.ListInput) ([]model.Event, error) {
	return nil, nil
}

var _ event.UseCase = (*mockEventUC)(nil)

type mockRegistryUC struct {
	tracked map[string]model.Repository
}

func (m *mockRegistryUC) Register(ctx context.Context, sc model.Scope, input registry.RegisterInput) (model.Repository, error) {
	return model.Repository{}, nil
}

func (m *mockRegistryUC) Get(ctx context.Context, sc model.Scope, id string) (model.Repository, error) {
	return model.Repository{}, registry.ErrNotFound
}

func (m *mockRegistryUC) GetByFullName(ctx context.Context, sc model.Scope, fullName string) (model.Repository, error) {
	repo, ok := m.tracked[fullName]
	if !ok {
		return model.Repository{}, registry.ErrNotFound
	}
	return repo, nil
}

func (m *mockRegistryUC) List(ctx context.Context, sc model.Scope, ownerID string) ([]model.Repository, error) {
	return nil, nil
}

func (m *mockRegistryUC) SetCredential(ctx context.Context, sc model.Scope, input registry.SetCredentialInput) error {
	return nil
}

func (m *mockRegistryUC) ResolveCredential(ctx context.Context, sc model.Scope, ownerID string) (string, error) {
	return "", nil
}

func (m *mockRegistryUC) SetCodeIndexStatus(ctx context.Context, sc model.Scope, repositoryID string, status model.CodeIndexStatus) error {
	return nil
}

var _ registry.UseCase = (*mockRegistryUC)(nil)

const testSecret = "topsecret"

func newTestRouter(eventUC *mockEventUC, registryUC *mockRegistryUC) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(eventUC, registryUC, SecurityConfig{Secret: testSecret, RateLimitPerMin: 600}, &mockLogger{})
	r := gin.New()
	r.POST("/webhooks/github", h.HandleGitHubWebhook)
	return r
}

func deliver(r *gin.Engine, eventType, deliveryID, payload string, signed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/github", bytes.NewBufferString(payload))
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-GitHub-Delivery", deliveryID)
	if signed {
		req.Header.Set("X-Hub-Signature-256", sign(testSecret, []byte(payload)))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleGitHubWebhook(t *testing.T) {
	tracked := map[string]model.Repository{
		"octo/widgets": {ID: "repo-1", FullName: "octo/widgets", OwnerID: "owner-1"},
	}

	t.Run("accepted", func(t *testing.T) {
		eventUC := newMockEventUC()
		r := newTestRouter(eventUC, &mockRegistryUC{tracked: tracked})

		w := deliver(r, "push", "d-1", pushPayload, true)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		if len(eventUC.ingests) != 1 {
			t.Fatalf("ingests = %d", len(eventUC.ingests))
		}
		in := eventUC.ingests[0]
		if in.DeliveryID != "d-1" || in.RepositoryID != "repo-1" || in.Type != model.EventTypePush {
			t.Errorf("ingest input = %+v", in)
		}
	})

	t.Run("bad signature rejected", func(t *testing.T) {
		eventUC := newMockEventUC()
		r := newTestRouter(eventUC, &mockRegistryUC{tracked: tracked})

		w := deliver(r, "push", "d-2", pushPayload, false)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
		if len(eventUC.ingests) != 0 {
			t.Error("unsigned delivery reached ingestion")
		}
	})

	t.Run("untracked repository ignored", func(t *testing.T) {
		eventUC := newMockEventUC()
		r := newTestRouter(eventUC, &mockRegistryUC{tracked: map[string]model.Repository{}})

		w := deliver(r, "push", "d-3", pushPayload, true)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
		if len(eventUC.ingests) != 0 {
			t.Error("untracked repository reached ingestion")
		}
	})

	t.Run("unsupported event ignored", func(t *testing.T) {
		eventUC := newMockEventUC()
		r := newTestRouter(eventUC, &mockRegistryUC{tracked: tracked})

		w := deliver(r, "star", "d-4", `{}`, true)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
		if len(eventUC.ingests) != 0 {
			t.Error("unsupported event reached ingestion")
		}
	})

	t.Run("missing delivery id rejected", func(t *testing.T) {
		eventUC := newMockEventUC()
		r := newTestRouter(eventUC, &mockRegistryUC{tracked: tracked})

		w := deliver(r, "push", "", pushPayload, true)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("redelivery reports duplicate", func(t *testing.T) {
		eventUC := newMockEventUC()
		r := newTestRouter(eventUC, &mockRegistryUC{tracked: tracked})

		_ = deliver(r, "push", "d-5", pushPayload, true)
		w := deliver(r, "push", "d-5", pushPayload, true)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if !bytes.Contains(w.Body.Bytes(), []byte("duplicate")) {
			t.Errorf("expected duplicate status, body %s", w.Body.String())
		}
	})
}
