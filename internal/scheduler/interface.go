package scheduler

import (
	"context"
	"time"
)

// Client schedules durable tasks. Handoff between pipeline steps goes through
// here rather than direct calls, so a restart mid-pipeline is safe to resume.
type Client interface {
	// Schedule enqueues a task for immediate execution.
	Schedule(ctx context.Context, kind string, payload any) error

	// ScheduleAfter enqueues a task to run no earlier than delay from now.
	ScheduleAfter(ctx context.Context, delay time.Duration, kind string, payload any) error
}

// Handler processes one task payload. Returning a plain error reschedules the
// task with exponential backoff until MaxAttempts; wrap with Terminal to fail
// permanently.
type Handler func(ctx context.Context, payload []byte) error

// TaskRepository is the persistence interface for the durable task table.
type TaskRepository interface {
	// Enqueue inserts a new pending task.
	Enqueue(ctx context.Context, task *Task) error

	// ClaimDue atomically moves up to limit due pending tasks to running,
	// incrementing their attempt counter, and returns them.
	ClaimDue(ctx context.Context, limit int, now time.Time) ([]Task, error)

	// MarkCompleted finishes a task successfully.
	MarkCompleted(ctx context.Context, id string) error

	// MarkFailed finishes a task permanently with an error message.
	MarkFailed(ctx context.Context, id string, errMsg string) error

	// Reschedule returns a running task to pending for a later retry.
	Reschedule(ctx context.Context, id string, at time.Time, errMsg string) error

	// RequeueStale returns running tasks not updated since the deadline back
	// to pending. Covers workers that died mid-task.
	RequeueStale(ctx context.Context, updatedBefore time.Time) (int, error)
}
