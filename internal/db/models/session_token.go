package models

import "time"

// SessionToken is one outstanding bearer token for an account.
//
// Tokens live in their own table rather than in an array column on the
// account: issuing a session is a single INSERT and revocation is a single
// DELETE, so two logins racing on the same account can never lose each
// other's update. The unique index on Token enforces system-wide token
// uniqueness, not merely per-account uniqueness.
type SessionToken struct {
	// ID is the unique identifier for the token row.
	ID uint64 `gorm:"primaryKey"`
	// Token is the opaque bearer value presented by clients.
	Token string `gorm:"unique;size:64;not null"`
	// AccountID is the account this token was issued to.
	AccountID uint64 `gorm:"index;not null"`
	// IssuedAt is the time the token was created.
	IssuedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for the SessionToken model.
func (SessionToken) TableName() string {
	return "session_tokens"
}
