package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"repodigest/internal/model"
	"repodigest/internal/registry"
	"repodigest/internal/registry/repository"
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

type mockRegistryRepo struct {
	mu     sync.Mutex
	byID   map[string]model.Repository
	byName map[string]string
}

func newMockRegistryRepo() *mockRegistryRepo {
	return &mockRegistryRepo{
		byID:   make(map[string]model.Repository),
		byName: make(map[string]string),
	}
}

func (m *mockRegistryRepo) Create(ctx context.Context, repo *model.Repository) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[repo.ID] = *repo
	m.byName[repo.FullName] = repo.ID
	return nil
}

func (m *mockRegistryRepo) GetByID(ctx context.Context, id string) (model.Repository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	repo, ok := m.byID[id]
	if !ok {
		return model.Repository{}, repository.ErrRepositoryNotFound
	}
	return repo, nil
}

func (m *mockRegistryRepo) GetByFullName(ctx context.Context, fullName string) (model.Repository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byName[fullName]
	if !ok {
		return model.Repository{}, repository.ErrRepositoryNotFound
	}
	return m.byID[id], nil
}

func (m *mockRegistryRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Repository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Repository
	for _, repo := range m.byID {
		if ownerID == "" || repo.OwnerID == ownerID {
			out = append(out, repo)
		}
	}
	return out, nil
}

func (m *mockRegistryRepo) UpdateCodeIndexStatus(ctx context.Context, id string, status model.CodeIndexStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	repo, ok := m.byID[id]
	if !ok {
		return repository.ErrRepositoryNotFound
	}
	repo.CodeIndexStatus = status
	m.byID[id] = repo
	return nil
}

type mockCredentialRepo struct {
	mu    sync.Mutex
	creds map[string]model.OwnerCredential
}

func newMockCredentialRepo() *mockCredentialRepo {
	return &mockCredentialRepo{creds: make(map[string]model.OwnerCredential)}
}

func (m *mockCredentialRepo) Set(ctx context.Context, cred *model.OwnerCredential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds[cred.OwnerID] = *cred
	return nil
}

func (m *mockCredentialRepo) Get(ctx context.Context, ownerID string) (model.OwnerCredential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cred, ok := m.creds[ownerID]
	if !ok {
		return model.OwnerCredential{}, repository.ErrCredentialNotFound
	}
	return cred, nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	uc := New(&mockLogger{}, newMockRegistryRepo(), newMockCredentialRepo(), "")

	repo, err := uc.Register(ctx, model.SystemScope(), registry.RegisterInput{
		FullName: "octo/widgets",
		OwnerID:  "owner-1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if repo.DefaultBranch != "main" {
		t.Errorf("expected default branch main, got %q", repo.DefaultBranch)
	}
	if repo.CodeIndexStatus != model.CodeIndexNone {
		t.Errorf("expected code index status none, got %q", repo.CodeIndexStatus)
	}

	again, err := uc.Register(ctx, model.SystemScope(), registry.RegisterInput{
		FullName: "octo/widgets",
		OwnerID:  "owner-1",
	})
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if again.ID != repo.ID {
		t.Errorf("re-register created a new record: %s vs %s", again.ID, repo.ID)
	}
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	uc := New(&mockLogger{}, newMockRegistryRepo(), newMockCredentialRepo(), "")

	if _, err := uc.Register(ctx, model.SystemScope(), registry.RegisterInput{OwnerID: "o"}); !errors.Is(err, registry.ErrMissingFullName) {
		t.Errorf("expected ErrMissingFullName, got %v", err)
	}
	if _, err := uc.Register(ctx, model.SystemScope(), registry.RegisterInput{FullName: "a/b"}); !errors.Is(err, registry.ErrMissingOwner) {
		t.Errorf("expected ErrMissingOwner, got %v", err)
	}
}

func TestResolveCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("owner key wins", func(t *testing.T) {
		uc := New(&mockLogger{}, newMockRegistryRepo(), newMockCredentialRepo(), "service-key")
		if err := uc.SetCredential(ctx, model.SystemScope(), registry.SetCredentialInput{
			OwnerID: "owner-1",
			APIKey:  "owner-key",
		}); err != nil {
			t.Fatalf("set credential: %v", err)
		}
		key, err := uc.ResolveCredential(ctx, model.SystemScope(), "owner-1")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if key != "owner-key" {
			t.Errorf("expected owner-key, got %q", key)
		}
	})

	t.Run("falls back to service key", func(t *testing.T) {
		uc := New(&mockLogger{}, newMockRegistryRepo(), newMockCredentialRepo(), "service-key")
		key, err := uc.ResolveCredential(ctx, model.SystemScope(), "owner-2")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if key != "service-key" {
			t.Errorf("expected service-key, got %q", key)
		}
	})

	t.Run("empty when no key anywhere", func(t *testing.T) {
		uc := New(&mockLogger{}, newMockRegistryRepo(), newMockCredentialRepo(), "")
		key, err := uc.ResolveCredential(ctx, model.SystemScope(), "owner-3")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if key != "" {
			t.Errorf("expected empty key, got %q", key)
		}
	})
}
