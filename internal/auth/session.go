package auth

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/GoDocVault/GoDocVault/internal/db/controller/account"
	"github.com/GoDocVault/GoDocVault/internal/db/models"
	"github.com/GoDocVault/GoDocVault/internal/uniuri"
)

// Issue generates a fresh unguessable session token for the account and
// persists it. The append is one INSERT, so two logins racing on the same
// account both keep their token.
func (s *Service) Issue(acct *models.Account) (string, error) {
	token := uniuri.NewToken()

	if err := account.AppendSession(s.db, acct.ID, token, s.now()); err != nil {
		return "", storeError(err)
	}

	log.Debug().Uint64("account_id", acct.ID).Msg("session issued")

	return token, nil
}

// Resolve maps a bearer token back to its account. Absent, malformed and
// unknown tokens all collapse to ErrUnauthenticated; the caller learns
// nothing about which it was.
func (s *Service) Resolve(token string) (*models.Account, error) {
	acct, err := account.FindBySessionToken(s.db, token)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, ErrUnauthenticated
		}

		return nil, storeError(err)
	}

	return acct, nil
}

// Revoke removes exactly one matching token from the account's session set.
// Revoking an absent token is not an error.
func (s *Service) Revoke(acct *models.Account, token string) error {
	if err := account.RemoveSession(s.db, acct.ID, token); err != nil {
		return storeError(err)
	}

	log.Debug().Uint64("account_id", acct.ID).Msg("session revoked")

	return nil
}

// RevokeAll clears the account's entire session set in one atomic update.
func (s *Service) RevokeAll(acct *models.Account) error {
	if err := account.ClearSessions(s.db, acct.ID); err != nil {
		return storeError(err)
	}

	log.Info().Uint64("account_id", acct.ID).Msg("all sessions revoked")

	return nil
}
