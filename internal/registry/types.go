package registry

// RegisterInput is the input for tracking a repository.
type RegisterInput struct {
	FullName      string // "owner/repo"
	OwnerID       string
	DefaultBranch string // defaults to "main" when empty
}

// SetCredentialInput stores an owner's generation credential.
type SetCredentialInput struct {
	OwnerID string
	APIKey  string
}
