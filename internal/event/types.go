package event

import (
	"time"

	"repodigest/internal/model"
)

// IngestInput is the input for event ingestion.
type IngestInput struct {
	DeliveryID   string             // host-assigned delivery id, the dedup key
	RepositoryID string             // tracked repository id
	Type         model.EventType    // push or pull_request
	Actor        string             // login of the user who caused the event
	OccurredAt   time.Time          // source timestamp, authoritative for ordering
	Payload      model.EventPayload // typed payload
}

// IngestOutput is the result of event ingestion.
type IngestOutput struct {
	EventID   string
	Duplicate bool // true when the delivery id was already known
}

// ListInput filters the event listing.
type ListInput struct {
	RepositoryID string
	From         time.Time
	To           time.Time
	Limit        int
}
