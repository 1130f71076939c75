package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type implClient struct {
	repo TaskRepository
}

// NewClient creates a Client backed by the durable task repository.
func NewClient(repo TaskRepository) Client {
	return &implClient{repo: repo}
}

func (c *implClient) Schedule(ctx context.Context, kind string, payload any) error {
	return c.ScheduleAfter(ctx, 0, kind, payload)
}

func (c *implClient) ScheduleAfter(ctx context.Context, delay time.Duration, kind string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("scheduler: failed to marshal payload for %s: %w", kind, err)
	}

	task := &Task{
		ID:          uuid.NewString(),
		Kind:        kind,
		Payload:     body,
		Status:      TaskStatusPending,
		MaxAttempts: DefaultMaxAttempts,
		ScheduledAt: time.Now().Add(delay),
	}
	return c.repo.Enqueue(ctx, task)
}
