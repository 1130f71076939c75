package scheduler_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"repodigest/internal/scheduler"
	"repodigest/pkg/log"
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

var _ log.Logger = (*mockLogger)(nil)

// memTaskRepo is an in-memory TaskRepository for worker tests.
type memTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*scheduler.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]*scheduler.Task)}
}

var _ scheduler.TaskRepository = (*memTaskRepo)(nil)

func (m *memTaskRepo) Enqueue(ctx context.Context, task *scheduler.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

func (m *memTaskRepo) ClaimDue(ctx context.Context, limit int, now time.Time) ([]scheduler.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var claimed []scheduler.Task
	for _, t := range m.tasks {
		if len(claimed) >= limit {
			break
		}
		if t.Status == scheduler.TaskStatusPending && !t.ScheduledAt.After(now) {
			t.Status = scheduler.TaskStatusRunning
			t.Attempts++
			claimed = append(claimed, *t)
		}
	}
	return claimed, nil
}

func (m *memTaskRepo) MarkCompleted(ctx context.Context, id string) error {
	return m.setStatus(id, scheduler.TaskStatusCompleted, "")
}

func (m *memTaskRepo) MarkFailed(ctx context.Context, id string, errMsg string) error {
	return m.setStatus(id, scheduler.TaskStatusFailed, errMsg)
}

func (m *memTaskRepo) Reschedule(ctx context.Context, id string, at time.Time, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return errors.New("task not found")
	}
	t.Status = scheduler.TaskStatusPending
	t.ScheduledAt = at
	t.LastError = errMsg
	return nil
}

func (m *memTaskRepo) RequeueStale(ctx context.Context, updatedBefore time.Time) (int, error) {
	return 0, nil
}

func (m *memTaskRepo) setStatus(id string, st scheduler.TaskStatus, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return errors.New("task not found")
	}
	t.Status = st
	if errMsg != "" {
		t.LastError = errMsg
	}
	return nil
}

func (m *memTaskRepo) get(id string) scheduler.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.tasks[id]
}

func enqueue(t *testing.T, repo *memTaskRepo, kind string, payload any) string {
	t.Helper()
	client := scheduler.NewClient(repo)
	if err := client.Schedule(context.Background(), kind, payload); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for id := range repo.tasks {
		return id
	}
	t.Fatal("no task enqueued")
	return ""
}

func runWorker(t *testing.T, w *scheduler.Worker, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	_ = w.Run(ctx)
}

func newTestWorker(t *testing.T, repo *memTaskRepo) *scheduler.Worker {
	t.Helper()
	w, err := scheduler.NewWorker(scheduler.Config{
		Repo:         repo,
		Logger:       &mockLogger{},
		Concurrency:  2,
		PollInterval: 5 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new worker: %v", err)
	}
	return w
}

func TestWorker_Dispatch(t *testing.T) {
	t.Run("Success Completes Task", func(t *testing.T) {
		repo := newMemTaskRepo()
		id := enqueue(t, repo, "noop", map[string]string{"k": "v"})

		w := newTestWorker(t, repo)
		var got map[string]string
		w.Register("noop", func(ctx context.Context, payload []byte) error {
			return json.Unmarshal(payload, &got)
		})

		runWorker(t, w, 100*time.Millisecond)

		if st := repo.get(id).Status; st != scheduler.TaskStatusCompleted {
			t.Errorf("expected completed, got %s", st)
		}
		if got["k"] != "v" {
			t.Errorf("payload not delivered: %v", got)
		}
	})

	t.Run("Terminal Error Fails Immediately", func(t *testing.T) {
		repo := newMemTaskRepo()
		id := enqueue(t, repo, "boom", nil)

		w := newTestWorker(t, repo)
		calls := 0
		w.Register("boom", func(ctx context.Context, payload []byte) error {
			calls++
			return scheduler.Terminal(errors.New("bad input"))
		})

		runWorker(t, w, 100*time.Millisecond)

		task := repo.get(id)
		if task.Status != scheduler.TaskStatusFailed {
			t.Errorf("expected failed, got %s", task.Status)
		}
		if calls != 1 {
			t.Errorf("terminal error must not retry, got %d calls", calls)
		}
		if task.LastError == "" {
			t.Errorf("expected error message recorded")
		}
	})

	t.Run("Retryable Error Is Rescheduled", func(t *testing.T) {
		repo := newMemTaskRepo()
		id := enqueue(t, repo, "flaky", nil)

		w := newTestWorker(t, repo)
		var mu sync.Mutex
		calls := 0
		w.Register("flaky", func(ctx context.Context, payload []byte) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			if calls < 2 {
				return errors.New("transient")
			}
			return nil
		})

		// The first retry backs off ~1s; wait past it.
		runWorker(t, w, 1500*time.Millisecond)

		if st := repo.get(id).Status; st != scheduler.TaskStatusCompleted {
			t.Errorf("expected completed after retry, got %s", st)
		}
		mu.Lock()
		if calls != 2 {
			t.Errorf("expected 2 calls, got %d", calls)
		}
		mu.Unlock()
	})

	t.Run("Exhausted Attempts Fail", func(t *testing.T) {
		repo := newMemTaskRepo()
		id := enqueue(t, repo, "always", nil)
		// Shrink the backoff window so three attempts fit into the test.
		repo.mu.Lock()
		repo.tasks[id].MaxAttempts = 1
		repo.mu.Unlock()

		w := newTestWorker(t, repo)
		w.Register("always", func(ctx context.Context, payload []byte) error {
			return errors.New("down")
		})

		runWorker(t, w, 100*time.Millisecond)

		if st := repo.get(id).Status; st != scheduler.TaskStatusFailed {
			t.Errorf("expected failed, got %s", st)
		}
	})

	t.Run("Shutdown While Saturated", func(t *testing.T) {
		repo := newMemTaskRepo()
		client := scheduler.NewClient(repo)
		for i := 0; i < 4; i++ {
			if err := client.Schedule(context.Background(), "slow", nil); err != nil {
				t.Fatalf("schedule: %v", err)
			}
		}

		// Concurrency is 2, so the third dispatch waits on a slot.
		w := newTestWorker(t, repo)
		started := make(chan struct{}, 4)
		w.Register("slow", func(ctx context.Context, payload []byte) error {
			started <- struct{}{}
			<-ctx.Done()
			return ctx.Err()
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		<-started
		<-started
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not stop while all slots were busy")
		}
	})

	t.Run("Unknown Kind Fails", func(t *testing.T) {
		repo := newMemTaskRepo()
		id := enqueue(t, repo, "nobody-home", nil)

		w := newTestWorker(t, repo)
		w.Register("other", func(ctx context.Context, payload []byte) error { return nil })

		runWorker(t, w, 100*time.Millisecond)

		if st := repo.get(id).Status; st != scheduler.TaskStatusFailed {
			t.Errorf("expected failed, got %s", st)
		}
	})
}

func TestNextRetryDelay(t *testing.T) {
	cases := []struct {
		attempts int
		want     time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
	}
	for _, c := range cases {
		if got := scheduler.NextRetryDelay(c.attempts); got != c.want {
			t.Errorf("attempt %d: expected %s, got %s", c.attempts, c.want, got)
		}
	}
}
