package models

import "time"

// DocumentStatus describes the workflow state of a document.
// The status is informational only; it is never consulted by access control.
type DocumentStatus string

const (
	// StatusDraft is the initial state of an uploaded document.
	StatusDraft DocumentStatus = "draft"
	// StatusReview marks a document awaiting approval.
	StatusReview DocumentStatus = "review"
	// StatusPublished marks an approved, visible document.
	StatusPublished DocumentStatus = "published"
	// StatusArchived marks a retired document kept for record.
	StatusArchived DocumentStatus = "archived"
)

// Valid reports whether s is a known document status.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusReview, StatusPublished, StatusArchived:
		return true
	}

	return false
}

// Document represents a managed document's metadata. The document bytes
// themselves are stored and streamed by an external collaborator; this
// model carries only what the access-control engine and listings need.
type Document struct {
	// ID is the unique document identifier (UUID).
	ID string `gorm:"primaryKey;size:36"`
	// Title is the document's display title.
	Title string `gorm:"size:255;not null"`
	// Description is an optional free-form summary.
	Description string `gorm:"size:1000"`
	// FileName is the original upload file name.
	FileName string `gorm:"size:255"`
	// FileSize is the upload size in bytes.
	FileSize int64
	// OwnerID references the owning account. The owner always has full
	// rights regardless of the grant list.
	OwnerID uint64 `gorm:"index;not null"`
	// Status is the informational workflow state.
	Status DocumentStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	// Grants are the explicit access rights for non-owner accounts.
	Grants []Grant `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the document was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the document was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Document model.
func (Document) TableName() string {
	return "documents"
}
