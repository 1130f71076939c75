package model

// Environment names.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries the identity a usecase call runs under.
// It is passed explicitly; there is no ambient session state.
type Scope struct {
	UserID string
}

// SystemScope is used for work triggered by webhooks and background tasks.
func SystemScope() Scope {
	return Scope{UserID: "system"}
}
