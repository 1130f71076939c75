package scheduler

import "time"

// TaskStatus is the lifecycle state of a scheduled task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

const (
	// DefaultMaxAttempts bounds retries of a retryable task.
	DefaultMaxAttempts = 3

	// DefaultInitialDelay is the first retry delay; it doubles per attempt.
	DefaultInitialDelay = time.Second

	// backoffBase is the exponential backoff multiplier.
	backoffBase = 2
)

// Task is one durably scheduled unit of work. Rows survive process restarts;
// delivery is at-least-once.
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	Kind        string     `json:"kind" gorm:"size:64;index"`
	Payload     []byte     `json:"payload" gorm:"type:text"`
	Status      TaskStatus `json:"status" gorm:"size:20;index:idx_tasks_due"`
	Attempts    int        `json:"attempts"`
	MaxAttempts int        `json:"max_attempts"`
	ScheduledAt time.Time  `json:"scheduled_at" gorm:"index:idx_tasks_due"`
	LastError   string     `json:"last_error,omitempty" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// NextRetryDelay returns the backoff delay after the given attempt count.
func NextRetryDelay(attempts int) time.Duration {
	delay := DefaultInitialDelay
	for i := 1; i < attempts; i++ {
		delay *= backoffBase
	}
	return delay
}
