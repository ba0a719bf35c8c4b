// Package account provides credential-store operations for Account records.
//
// Session and reset-ticket mutations are single-statement updates so that
// concurrent requests against the same account cannot lose each other's
// writes. Token and ticket lookups are exact-match only.
package account

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/GoDocVault/GoDocVault/internal/db/models"
)

const (
	whereID    = "id = ?"
	whereEmail = "email = ?"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
)

// FindByEmail retrieves an account by its case-normalized email address.
func FindByEmail(db *gorm.DB, email string) (*models.Account, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var acct models.Account

	result := db.Where(whereEmail, models.NormalizeEmail(email)).First(&acct)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}

		return nil, result.Error
	}

	return &acct, nil
}

// FindByID retrieves an account by its identifier.
func FindByID(db *gorm.DB, id uint64) (*models.Account, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var acct models.Account

	result := db.First(&acct, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}

		return nil, result.Error
	}

	return &acct, nil
}

// Create inserts a new account. The email must already be normalized by
// the caller; the unique index is the last line of defense on duplicates.
func Create(db *gorm.DB, acct *models.Account) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(acct).Error
}

// Save upserts an account record.
func Save(db *gorm.DB, acct *models.Account) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Save(acct).Error
}

// FindByResetTicket retrieves the account holding the exact, non-expired
// reset ticket. Expired tickets are treated as absent.
func FindByResetTicket(db *gorm.DB, ticket string, now time.Time) (*models.Account, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if ticket == "" {
		return nil, ErrAccountNotFound
	}

	var acct models.Account

	result := db.Where("reset_ticket_value = ? AND reset_ticket_expires_at > ?", ticket, now).
		First(&acct)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}

		return nil, result.Error
	}

	return &acct, nil
}

// FindBySessionToken retrieves the account owning the given session token.
// Unknown and malformed tokens are indistinguishable to the caller.
func FindBySessionToken(db *gorm.DB, token string) (*models.Account, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if token == "" {
		return nil, ErrAccountNotFound
	}

	var sess models.SessionToken

	result := db.Where("token = ?", token).First(&sess)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}

		return nil, result.Error
	}

	return FindByID(db, sess.AccountID)
}

// AppendSession records a freshly issued session token. A single INSERT,
// so concurrent logins on the same account both land.
func AppendSession(db *gorm.DB, accountID uint64, token string, issuedAt time.Time) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(&models.SessionToken{
		Token:     token,
		AccountID: accountID,
		IssuedAt:  issuedAt,
	}).Error
}

// RemoveSession deletes exactly the matching token. Removing an absent
// token is not an error.
func RemoveSession(db *gorm.DB, accountID uint64, token string) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Where("account_id = ? AND token = ?", accountID, token).
		Delete(&models.SessionToken{}).Error
}

// ClearSessions deletes every session token for the account in one
// statement.
func ClearSessions(db *gorm.DB, accountID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Where("account_id = ?", accountID).
		Delete(&models.SessionToken{}).Error
}

// SetResetTicket stores a new reset ticket, overwriting any prior one so
// at most one live ticket exists per account.
func SetResetTicket(db *gorm.DB, accountID uint64, value string, expiresAt time.Time) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Model(&models.Account{}).
		Where(whereID, accountID).
		Updates(map[string]interface{}{
			"reset_ticket_value":      value,
			"reset_ticket_expires_at": expiresAt,
		}).Error
}

// ConsumeResetTicket redeems a ticket and installs the new secret hash in
// one guarded UPDATE. The WHERE clause re-checks the ticket value and
// expiry, so of two racing redemptions exactly one observes a row change;
// the loser gets consumed=false.
func ConsumeResetTicket(
	db *gorm.DB,
	accountID uint64,
	ticket, newSecretHash string,
	now time.Time,
) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	result := db.Model(&models.Account{}).
		Where("id = ? AND reset_ticket_value = ? AND reset_ticket_expires_at > ?",
			accountID, ticket, now).
		Updates(map[string]interface{}{
			"secret_hash":             newSecretHash,
			"reset_ticket_value":      "",
			"reset_ticket_expires_at": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// TouchLastLogin records the time of a successful full login.
func TouchLastLogin(db *gorm.DB, accountID uint64, at time.Time) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Model(&models.Account{}).
		Where(whereID, accountID).
		Update("last_login_at", at).Error
}

// SetMFA updates the MFA fields on an account.
func SetMFA(db *gorm.DB, accountID uint64, enabled bool, secret string) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Model(&models.Account{}).
		Where(whereID, accountID).
		Updates(map[string]interface{}{
			"mfa_enabled": enabled,
			"mfa_secret":  secret,
		}).Error
}
