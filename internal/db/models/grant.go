package models

import "time"

// Permission is the access level carried by a grant.
//
// The stored levels are flat values; the effective ordering
// (delete covers write covers read) is defined by the access-control
// engine, not by this type.
type Permission string

const (
	// PermissionRead allows reading a document.
	PermissionRead Permission = "read"
	// PermissionWrite allows modifying a document.
	PermissionWrite Permission = "write"
	// PermissionDelete allows deleting a document.
	PermissionDelete Permission = "delete"
)

// Valid reports whether p is a known permission level.
func (p Permission) Valid() bool {
	switch p {
	case PermissionRead, PermissionWrite, PermissionDelete:
		return true
	}

	return false
}

// Grant gives one non-owner account an access level on one document.
// The composite unique index keeps at most one grant per grantee per
// document; re-granting replaces the level in place.
type Grant struct {
	// ID is the unique identifier for the grant row.
	ID uint64 `gorm:"primaryKey"`
	// DocumentID references the document this grant applies to.
	DocumentID string `gorm:"size:36;not null;uniqueIndex:idx_grants_doc_grantee"`
	// GranteeID references the account receiving access.
	GranteeID uint64 `gorm:"not null;uniqueIndex:idx_grants_doc_grantee"`
	// Permission is the granted access level.
	Permission Permission `gorm:"type:varchar(20);not null"`
	// CreatedAt is the timestamp when the grant was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the grant was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Grant model.
func (Grant) TableName() string {
	return "grants"
}
