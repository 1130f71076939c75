package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	pkgLog "repodigest/pkg/log"
)

const (
	defaultConcurrency  = 4
	defaultPollInterval = time.Second
	defaultLeaseTimeout = 5 * time.Minute
	claimBatchSize      = 16
)

// Worker polls the task table and dispatches due tasks to registered
// handlers. One worker per process is enough; claims are transactional, so
// running several is safe.
type Worker struct {
	repo         TaskRepository
	l            pkgLog.Logger
	concurrency  int
	pollInterval time.Duration
	leaseTimeout time.Duration

	mu       sync.RWMutex
	handlers map[string]Handler
}

// Config is the dependency bag passed to NewWorker.
type Config struct {
	Repo         TaskRepository
	Logger       pkgLog.Logger
	Concurrency  int
	PollInterval time.Duration
	LeaseTimeout time.Duration
}

// NewWorker creates a Worker from config.
func NewWorker(cfg Config) (*Worker, error) {
	if cfg.Repo == nil {
		return nil, errors.New("task repository is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	w := &Worker{
		repo:         cfg.Repo,
		l:            cfg.Logger,
		concurrency:  cfg.Concurrency,
		pollInterval: cfg.PollInterval,
		leaseTimeout: cfg.LeaseTimeout,
		handlers:     make(map[string]Handler),
	}
	if w.concurrency <= 0 {
		w.concurrency = defaultConcurrency
	}
	if w.pollInterval <= 0 {
		w.pollInterval = defaultPollInterval
	}
	if w.leaseTimeout <= 0 {
		w.leaseTimeout = defaultLeaseTimeout
	}
	return w, nil
}

// Register binds a handler to a task kind.
func (w *Worker) Register(kind string, h Handler) {
	if kind == "" || h == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[kind] = h
}

// Run blocks until ctx is canceled, polling for due tasks.
func (w *Worker) Run(ctx context.Context) error {
	// Tasks left running by a previous process are fair game again.
	if n, err := w.repo.RequeueStale(ctx, time.Now().Add(-w.leaseTimeout)); err != nil {
		w.l.Warnf(ctx, "scheduler: requeue stale tasks failed: %v", err)
	} else if n > 0 {
		w.l.Infof(ctx, "scheduler: requeued %d stale task(s)", n)
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.concurrency)
	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case <-ticker.C:
			tasks, err := w.repo.ClaimDue(ctx, claimBatchSize, time.Now())
			if err != nil {
				w.l.Errorf(ctx, "scheduler: claim failed: %v", err)
				continue
			}
			for _, task := range tasks {
				select {
				case sem <- struct{}{}:
				case <-ctx.Done():
					wg.Wait()
					return ctx.Err()
				}
				wg.Add(1)
				go func(task Task) {
					defer wg.Done()
					defer func() { <-sem }()
					w.dispatch(ctx, task)
				}(task)
			}
		}
	}
}

func (w *Worker) dispatch(ctx context.Context, task Task) {
	w.mu.RLock()
	handler := w.handlers[task.Kind]
	w.mu.RUnlock()

	if handler == nil {
		w.l.Errorf(ctx, "scheduler: no handler for kind %s, failing task %s", task.Kind, task.ID)
		w.finishErr(ctx, task, fmt.Errorf("no handler registered for kind %s", task.Kind), false)
		return
	}

	err := w.safeHandle(ctx, handler, task)
	if err == nil {
		if mErr := w.repo.MarkCompleted(ctx, task.ID); mErr != nil {
			w.l.Errorf(ctx, "scheduler: mark completed %s: %v", task.ID, mErr)
		}
		return
	}

	retryable := !IsTerminal(err) && task.Attempts < task.MaxAttempts
	w.finishErr(ctx, task, err, retryable)
}

func (w *Worker) finishErr(ctx context.Context, task Task, err error, retryable bool) {
	if retryable {
		delay := NextRetryDelay(task.Attempts)
		w.l.Warnf(ctx, "scheduler: task %s (%s) attempt %d/%d failed, retrying in %s: %v",
			task.ID, task.Kind, task.Attempts, task.MaxAttempts, delay, err)
		if rErr := w.repo.Reschedule(ctx, task.ID, time.Now().Add(delay), err.Error()); rErr != nil {
			w.l.Errorf(ctx, "scheduler: reschedule %s: %v", task.ID, rErr)
		}
		return
	}

	w.l.Errorf(ctx, "scheduler: task %s (%s) failed permanently after %d attempt(s): %v",
		task.ID, task.Kind, task.Attempts, err)
	if fErr := w.repo.MarkFailed(ctx, task.ID, err.Error()); fErr != nil {
		w.l.Errorf(ctx, "scheduler: mark failed %s: %v", task.ID, fErr)
	}
}

// safeHandle shields the worker loop from panicking handlers.
func (w *Worker) safeHandle(ctx context.Context, h Handler, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, task.Payload)
}
