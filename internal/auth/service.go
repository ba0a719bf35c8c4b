package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoDocVault/GoDocVault/internal/db/controller/account"
	"github.com/GoDocVault/GoDocVault/internal/db/models"
)

// Service is the auth gateway. It composes the session manager, the MFA
// challenge engine, the password-reset flow and the access-control engine
// over a shared credential store.
type Service struct {
	db *gorm.DB

	// now is the clock source, injectable for tests.
	now func() time.Time
}

// NewService creates a new auth service on top of the given database.
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:  db,
		now: time.Now,
	}
}

// storeError wraps a persistence failure so it crosses the boundary as the
// stable ErrStoreUnavailable kind while keeping the cause in the message.
func storeError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// Register creates a new account and, on success, immediately issues a
// session token: registration implies login. An empty role defaults to the
// lowest-privilege tier.
func (s *Service) Register(
	name, email, secret string,
	role models.Role,
	department string,
) (*models.Account, string, error) {
	if role == "" {
		role = models.RoleStaff
	}

	if !role.Valid() {
		return nil, "", ErrInvalidRole
	}

	normalized := models.NormalizeEmail(email)

	_, err := account.FindByEmail(s.db, normalized)
	if err == nil {
		return nil, "", ErrDuplicateEmail
	}

	if !errors.Is(err, account.ErrAccountNotFound) {
		return nil, "", storeError(err)
	}

	acct := &models.Account{
		Name:       name,
		Email:      normalized,
		SecretHash: models.HashSecret(secret),
		Role:       role,
		Department: department,
	}

	if err := account.Create(s.db, acct); err != nil {
		return nil, "", storeError(err)
	}

	token, err := s.Issue(acct)
	if err != nil {
		return nil, "", err
	}

	log.Info().Uint64("account_id", acct.ID).Msg("account registered")

	return acct, token, nil
}

// Login verifies credentials and drives the second-factor state machine.
//
// An unknown email and a wrong secret produce the same ErrInvalidCredentials.
// With MFA enrolled, a call without a code returns ErrMFARequired and no
// token; the follow-up call must carry the credentials again plus a current
// code. On full success the account's LastLoginAt is updated and a fresh
// session token is returned.
func (s *Service) Login(email, secret, otpCode string) (*models.Account, string, error) {
	acct, err := account.FindByEmail(s.db, email)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", storeError(err)
	}

	if !acct.VerifySecret(secret) {
		return nil, "", ErrInvalidCredentials
	}

	if acct.MFAEnabled {
		if otpCode == "" {
			return nil, "", ErrMFARequired
		}

		if !verifyTOTP(acct.MFASecret, otpCode, s.now()) {
			return nil, "", ErrInvalidMFACode
		}
	}

	now := s.now()
	if err := account.TouchLastLogin(s.db, acct.ID, now); err != nil {
		return nil, "", storeError(err)
	}

	acct.LastLoginAt = &now

	token, err := s.Issue(acct)
	if err != nil {
		return nil, "", err
	}

	log.Info().Uint64("account_id", acct.ID).Msg("account logged in")

	return acct, token, nil
}

// Logout revokes the single session the token belongs to.
func (s *Service) Logout(token string) error {
	acct, err := s.Resolve(token)
	if err != nil {
		return err
	}

	return s.Revoke(acct, token)
}

// LogoutAll revokes every outstanding session for the account.
func (s *Service) LogoutAll(acct *models.Account) error {
	return s.RevokeAll(acct)
}
