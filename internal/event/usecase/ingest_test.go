package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"repodigest/internal/event"
	"repodigest/internal/event/repository"
	"repodigest/internal/model"
	"repodigest/internal/pipeline"
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

// mockEventRepo enforces delivery id uniqueness like the real unique index.
type mockEventRepo struct {
	mu         sync.Mutex
	byID       map[string]model.Event
	byDelivery map[string]string
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{
		byID:       make(map[string]model.Event),
		byDelivery: make(map[string]string),
	}
}

func (m *mockEventRepo) Create(ctx context.Context, ev *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byDelivery[ev.DeliveryID]; ok {
		return repository.ErrDuplicateDelivery
	}
	m.byDelivery[ev.DeliveryID] = ev.ID
	m.byID[ev.ID] = *ev
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.byID[id]
	if !ok {
		return model.Event{}, repository.ErrEventNotFound
	}
	return ev, nil
}

func (m *mockEventRepo) GetByDeliveryID(ctx context.Context, deliveryID string) (model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byDelivery[deliveryID]
	if !ok {
		return model.Event{}, repository.ErrEventNotFound
	}
	return m.byID[id], nil
}

func (m *mockEventRepo) UpdateStatus(ctx context.Context, id string, status model.EventStatus, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev := m.byID[id]
	ev.Status = status
	ev.ErrorMessage = errMsg
	m.byID[id] = ev
	return nil
}

func (m *mockEventRepo) SetFileDiffs(ctx context.Context, id string, diffs []model.FileDiff) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev := m.byID[id]
	ev.FileDiffs = diffs
	m.byID[id] = ev
	return nil
}

func (m *mockEventRepo) ListByRepository(ctx context.Context, repositoryID string, from, to time.Time, limit int) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Event
	for _, ev := range m.byID {
		if ev.RepositoryID == repositoryID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byDelivery, m.byID[id].DeliveryID)
	delete(m.byID, id)
	return nil
}

type mockScheduler struct {
	mu    sync.Mutex
	kinds []string
}

func (m *mockScheduler) Schedule(ctx context.Context, kind string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kinds = append(m.kinds, kind)
	return nil
}

func (m *mockScheduler) ScheduleAfter(ctx context.Context, delay time.Duration, kind string, payload any) error {
	return m.Schedule(ctx, kind, payload)
}

func (m *mockScheduler) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.kinds)
}

func pushInput(deliveryID string) event.IngestInput {
	return event.IngestInput{
		DeliveryID:   deliveryID,
		RepositoryID: "repo-1",
		Type:         model.EventTypePush,
		Actor:        "octocat",
		OccurredAt:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Payload: model.EventPayload{
			Kind: model.EventTypePush,
			Push: &model.PushPayload{Ref: "refs/heads/main"},
		},
	}
}

func TestIngest_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := newMockEventRepo()
	sched := &mockScheduler{}
	uc := New(&mockLogger{}, repo, sched)

	first, err := uc.Ingest(ctx, model.SystemScope(), pushInput("delivery-1"))
	if err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if first.Duplicate {
		t.Error("first ingest flagged duplicate")
	}

	second, err := uc.Ingest(ctx, model.SystemScope(), pushInput("delivery-1"))
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if !second.Duplicate {
		t.Error("second ingest not flagged duplicate")
	}
	if second.EventID != first.EventID {
		t.Errorf("expected same event id, got %s and %s", first.EventID, second.EventID)
	}
	if sched.count() != 1 {
		t.Errorf("expected exactly one scheduled run, got %d", sched.count())
	}
	if sched.kinds[0] != pipeline.TaskDigestRun {
		t.Errorf("expected %s task, got %s", pipeline.TaskDigestRun, sched.kinds[0])
	}
}

func TestIngest_ConcurrentSameDelivery(t *testing.T) {
	ctx := context.Background()
	repo := newMockEventRepo()
	sched := &mockScheduler{}
	uc := New(&mockLogger{}, repo, sched)

	const n = 16
	var wg sync.WaitGroup
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := uc.Ingest(ctx, model.SystemScope(), pushInput("delivery-racy"))
			if err != nil {
				t.Errorf("ingest %d: %v", i, err)
				return
			}
			ids[i] = out.EventID
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("diverging event ids: %s vs %s", ids[0], ids[i])
		}
	}
	if sched.count() != 1 {
		t.Errorf("expected exactly one scheduled run, got %d", sched.count())
	}
	if len(repo.byID) != 1 {
		t.Errorf("expected one stored event, got %d", len(repo.byID))
	}
}

func TestIngest_Validation(t *testing.T) {
	ctx := context.Background()
	uc := New(&mockLogger{}, newMockEventRepo(), &mockScheduler{})

	in := pushInput("")
	if _, err := uc.Ingest(ctx, model.SystemScope(), in); !errors.Is(err, event.ErrMissingDeliveryID) {
		t.Errorf("expected ErrMissingDeliveryID, got %v", err)
	}

	in = pushInput("delivery-2")
	in.RepositoryID = ""
	if _, err := uc.Ingest(ctx, model.SystemScope(), in); !errors.Is(err, event.ErrMissingRepository) {
		t.Errorf("expected ErrMissingRepository, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	uc := New(&mockLogger{}, newMockEventRepo(), &mockScheduler{})
	if _, err := uc.Get(context.Background(), model.SystemScope(), "missing"); !errors.Is(err, event.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
