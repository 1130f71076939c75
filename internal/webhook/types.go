package webhook

import (
	"time"

	"repodigest/internal/model"
)

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret          string   // Shared secret for signature verification
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute
}

// ParsedEvent is a host delivery reduced to the fields ingestion needs.
type ParsedEvent struct {
	RepoFullName string
	Type         model.EventType
	Actor        string
	OccurredAt   time.Time
	Payload      model.EventPayload
}
