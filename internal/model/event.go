package model

import "time"

// EventType is the kind of activity notification received from the host.
type EventType string

const (
	EventTypePush        EventType = "push"
	EventTypePullRequest EventType = "pull_request"
)

// EventStatus is the pipeline state of an event.
// Transitions: pending → processing → {completed | failed | skipped}.
// A failed event may re-enter processing when the scheduler retries the run;
// completed and skipped are terminal.
type EventStatus string

const (
	EventStatusPending    EventStatus = "pending"
	EventStatusProcessing EventStatus = "processing"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusFailed     EventStatus = "failed"
	EventStatusSkipped    EventStatus = "skipped"
)

// Terminal reports whether no further pipeline progress is possible.
func (s EventStatus) Terminal() bool {
	return s == EventStatusCompleted || s == EventStatusSkipped
}

// PushPayload is the typed subset of a push delivery the pipeline uses.
// Unknown fields from the host are ignored at parse time.
type PushPayload struct {
	Ref        string       `json:"ref"`
	Before     string       `json:"before"`
	After      string       `json:"after"`
	CompareURL string       `json:"compare_url"`
	Commits    []PushCommit `json:"commits"`
}

// PushCommit is one commit inside a push payload.
type PushCommit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author"`
}

// PullRequestPayload is the typed subset of a pull_request delivery.
type PullRequestPayload struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	State   string `json:"state"`
	Merged  bool   `json:"merged"`
	HTMLURL string `json:"html_url"`
	Branch  string `json:"branch"`
	BaseSHA string `json:"base_sha"`
	HeadSHA string `json:"head_sha"`
	Author  string `json:"author"`
}

// EventPayload is a tagged union over the known event types.
// Exactly one of Push / PullRequest is set, matching Kind.
type EventPayload struct {
	Kind        EventType           `json:"kind"`
	Push        *PushPayload        `json:"push,omitempty"`
	PullRequest *PullRequestPayload `json:"pull_request,omitempty"`
}

// FileDiff is one changed file, as returned by the diff provider.
type FileDiff struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"` // added, modified, removed, renamed
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Patch     string `json:"patch,omitempty"`
}

// Event is one inbound activity notification.
// DeliveryID is the host-assigned delivery identifier and the dedup key.
type Event struct {
	ID           string       `json:"id" gorm:"primaryKey;size:36"`
	DeliveryID   string       `json:"delivery_id" gorm:"size:128;uniqueIndex"`
	RepositoryID string       `json:"repository_id" gorm:"size:36;index"`
	Type         EventType    `json:"type" gorm:"size:20"`
	Actor        string       `json:"actor" gorm:"size:128"`
	OccurredAt   time.Time    `json:"occurred_at" gorm:"index"` // source timestamp, authoritative for ordering
	Payload      EventPayload `json:"payload" gorm:"serializer:json"`
	Status       EventStatus  `json:"status" gorm:"size:20;index"`
	ErrorMessage string       `json:"error_message,omitempty" gorm:"type:text"`
	FileDiffs    []FileDiff   `json:"file_diffs,omitempty" gorm:"serializer:json"`
	ProcessedAt  *time.Time   `json:"processed_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (Event) TableName() string { return "events" }
