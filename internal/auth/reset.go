package auth

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoDocVault/GoDocVault/internal/db/controller/account"
	"github.com/GoDocVault/GoDocVault/internal/db/models"
	"github.com/GoDocVault/GoDocVault/internal/uniuri"
)

// resetTicketTTL is the lifetime of a password-reset ticket.
const resetTicketTTL = time.Hour

// RequestReset starts the password-reset flow for an email address.
//
// The outcome is identical whether or not the email matches an account, so
// the endpoint cannot be used to enumerate registered addresses. When a
// match exists, a fresh single-use ticket replaces any earlier one and is
// handed to the delivery collaborator (here: the log, at debug level).
func (s *Service) RequestReset(email string) error {
	acct, err := account.FindByEmail(s.db, email)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil
		}

		return storeError(err)
	}

	ticket := uniuri.NewToken()
	expiresAt := s.now().Add(resetTicketTTL)

	if err := account.SetResetTicket(s.db, acct.ID, ticket, expiresAt); err != nil {
		return storeError(err)
	}

	log.Info().Uint64("account_id", acct.ID).Msg("password reset requested")
	log.Debug().Uint64("account_id", acct.ID).Str("ticket", ticket).
		Msg("password reset ticket issued")

	return nil
}

// CompleteReset redeems a reset ticket exactly once: it installs the new
// secret hash, clears the ticket and revokes every outstanding session for
// the account. A ticket that is unknown, expired, or already consumed by a
// racing request yields ErrInvalidOrExpiredTicket.
func (s *Service) CompleteReset(ticket, newSecret string) error {
	now := s.now()
	newHash := models.HashSecret(newSecret)

	var accountID uint64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		acct, err := account.FindByResetTicket(tx, ticket, now)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound) {
				return ErrInvalidOrExpiredTicket
			}

			return storeError(err)
		}

		// Guarded update: re-checks ticket and expiry, so a double
		// submission lets exactly one request through.
		consumed, err := account.ConsumeResetTicket(tx, acct.ID, ticket, newHash, now)
		if err != nil {
			return storeError(err)
		}

		if !consumed {
			return ErrInvalidOrExpiredTicket
		}

		// A changed password must not leave old sessions valid.
		if err := account.ClearSessions(tx, acct.ID); err != nil {
			return storeError(err)
		}

		accountID = acct.ID

		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Uint64("account_id", accountID).Msg("password reset completed")

	return nil
}
