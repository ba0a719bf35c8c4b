package models

import (
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// Role is the capability tier assigned to an account.
// It is a closed enumeration validated at the gateway boundary.
type Role string

const (
	// RoleStaff is the lowest-privilege tier and the default for new accounts.
	RoleStaff Role = "staff"
	// RoleManager is the mid tier for accounts managing departmental documents.
	RoleManager Role = "manager"
	// RoleAdmin is the highest tier for application administrators.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known role tiers.
func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleManager, RoleAdmin:
		return true
	}

	return false
}

// Account represents a user account in the system.
// The stored secret is an Argon2id hash with the salt embedded in the
// encoded form, so no separate salt column is needed.
type Account struct {
	// ID is the unique identifier for the account.
	ID uint64 `gorm:"primaryKey"`
	// Name is the account holder's display name.
	Name string `gorm:"size:100;not null"`
	// Email is the unique, lower-cased login identifier.
	Email string `gorm:"unique;size:255;not null"`
	// SecretHash is the Argon2id hash of the account password.
	SecretHash string `gorm:"size:255;not null"`
	// Role is the capability tier (staff, manager, admin).
	Role Role `gorm:"type:varchar(20);not null;default:'staff'"`
	// Department is an optional free-form organizational unit.
	Department string `gorm:"size:100"`
	// MFAEnabled indicates whether login requires a second factor.
	MFAEnabled bool `gorm:"column:mfa_enabled"`
	// MFASecret is the shared TOTP secret. It is non-empty with
	// MFAEnabled=false only while an enrollment is pending confirmation.
	MFASecret string `gorm:"column:mfa_secret;size:255"`
	// ResetTicketValue is the outstanding password-reset ticket, if any.
	// At most one live ticket exists per account; issuing a new one
	// overwrites the old.
	ResetTicketValue string `gorm:"size:64;index"`
	// ResetTicketExpiresAt bounds the ticket lifetime. An expired ticket
	// is treated as absent.
	ResetTicketExpiresAt *time.Time
	// LastLoginAt is updated on every successful full login.
	LastLoginAt *time.Time
	// Sessions are the outstanding session tokens for this account.
	Sessions []SessionToken `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the account was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the account was last updated (managed by GORM).
	UpdatedAt time.Time
}

// NormalizeEmail lower-cases and trims an email address so lookups and
// uniqueness checks operate on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashSecret hashes a plaintext secret using the Argon2id algorithm.
// The per-record random salt is embedded in the encoded hash.
func HashSecret(secret string) string {
	hash, err := argon2id.CreateHash(secret, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash secret: %v", err)
	}

	return hash
}

// VerifySecret verifies a plaintext secret against the stored hash.
// The comparison is constant-time. Returns false on any decode failure.
func (a *Account) VerifySecret(secret string) bool {
	match, err := argon2id.ComparePasswordAndHash(secret, a.SecretHash)
	if err != nil {
		log.Error().Msgf("failed to verify secret: %v", err)
		return false
	}

	return match
}

// HasLiveResetTicket reports whether the account holds a reset ticket that
// has not expired at the given time.
func (a *Account) HasLiveResetTicket(now time.Time) bool {
	return a.ResetTicketValue != "" &&
		a.ResetTicketExpiresAt != nil &&
		a.ResetTicketExpiresAt.After(now)
}
