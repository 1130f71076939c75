package model

import "time"

// CodeIndexStatus tracks whether a repository's code index is ready.
// Impact analysis is only scheduled once the index is completed.
type CodeIndexStatus string

const (
	CodeIndexNone      CodeIndexStatus = "none"
	CodeIndexPending   CodeIndexStatus = "pending"
	CodeIndexCompleted CodeIndexStatus = "completed"
)

// Repository is a tracked repository on the external host.
type Repository struct {
	ID              string          `json:"id" gorm:"primaryKey;size:36"`
	FullName        string          `json:"full_name" gorm:"size:255;uniqueIndex"` // e.g. "owner/repo"
	OwnerID         string          `json:"owner_id" gorm:"size:36;index"`
	DefaultBranch   string          `json:"default_branch" gorm:"size:128"`
	CodeIndexStatus CodeIndexStatus `json:"code_index_status" gorm:"size:20"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Repository) TableName() string { return "repositories" }

// OwnerCredential stores a repository owner's generation credential.
// Its absence makes the pipeline skip digest generation for that owner.
type OwnerCredential struct {
	OwnerID   string    `json:"owner_id" gorm:"primaryKey;size:36"`
	APIKey    string    `json:"-" gorm:"size:256"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OwnerCredential) TableName() string { return "owner_credentials" }
