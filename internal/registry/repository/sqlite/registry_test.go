package sqlite

import (
	"context"
	"errors"
	"testing"

	driver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"repodigest/internal/model"
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

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(driver.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Repository{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUpdateCodeIndexStatus(t *testing.T) {
	ctx := context.Background()
	r := New(newTestDB(t), &mockLogger{})

	repo := &model.Repository{
		ID:              "repo-1",
		FullName:        "octo/widgets",
		OwnerID:         "owner-1",
		CodeIndexStatus: model.CodeIndexNone,
	}
	if err := r.Create(ctx, repo); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := r.UpdateCodeIndexStatus(ctx, "repo-1", model.CodeIndexCompleted); err != nil {
		t.Fatalf("first update: %v", err)
	}

	// Writing the value already stored is a no-op, not a missing repository.
	if err := r.UpdateCodeIndexStatus(ctx, "repo-1", model.CodeIndexCompleted); err != nil {
		t.Fatalf("repeat update: %v", err)
	}

	got, err := r.GetByID(ctx, "repo-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CodeIndexStatus != model.CodeIndexCompleted {
		t.Errorf("status = %q", got.CodeIndexStatus)
	}

	if err := r.UpdateCodeIndexStatus(ctx, "missing", model.CodeIndexPending); !errors.Is(err, repository.ErrRepositoryNotFound) {
		t.Errorf("expected ErrRepositoryNotFound, got %v", err)
	}
}
