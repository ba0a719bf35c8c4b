package auth

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/rs/zerolog/log"

	"github.com/GoDocVault/GoDocVault/internal/db/controller/account"
	"github.com/GoDocVault/GoDocVault/internal/db/models"
)

const (
	// totpPeriod is the TOTP time-step length in seconds.
	totpPeriod = 30
	// totpSkew accepts codes from one step before and after the current
	// one to tolerate client clock drift.
	totpSkew = 1

	totpIssuer = "GoDocVault"
)

// MFAEnrollment is handed to a client starting second-factor enrollment.
type MFAEnrollment struct {
	// Secret is the base32-encoded shared secret for manual entry.
	Secret string
	// URL is the otpauth:// provisioning URI for QR-code display.
	URL string
}

// verifyTOTP checks a time-based one-time code against the shared secret
// at the given instant.
func verifyTOTP(secret, code string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		log.Error().Msgf("failed to validate one-time code: %v", err)
		return false
	}

	return ok
}

// BeginMFAEnrollment generates a fresh TOTP secret for the account and
// stores it without enabling the second factor yet. Login is unaffected
// until the enrollment is activated with a valid code.
func (s *Service) BeginMFAEnrollment(acct *models.Account) (*MFAEnrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: acct.Email,
		Period:      totpPeriod,
	})
	if err != nil {
		return nil, err
	}

	if err := account.SetMFA(s.db, acct.ID, false, key.Secret()); err != nil {
		return nil, storeError(err)
	}

	acct.MFAEnabled = false
	acct.MFASecret = key.Secret()

	log.Info().Uint64("account_id", acct.ID).Msg("mfa enrollment started")

	return &MFAEnrollment{
		Secret: key.Secret(),
		URL:    key.URL(),
	}, nil
}

// ActivateMFA turns the pending enrollment on once the client proves it
// holds the secret by presenting a current code.
func (s *Service) ActivateMFA(acct *models.Account, code string) error {
	if acct.MFASecret == "" {
		return ErrMFANotEnrolled
	}

	if !verifyTOTP(acct.MFASecret, code, s.now()) {
		return ErrInvalidMFACode
	}

	if err := account.SetMFA(s.db, acct.ID, true, acct.MFASecret); err != nil {
		return storeError(err)
	}

	acct.MFAEnabled = true

	log.Info().Uint64("account_id", acct.ID).Msg("mfa enabled")

	return nil
}

// DisableMFA removes the second factor. A current code is required so a
// hijacked session alone cannot weaken the account.
func (s *Service) DisableMFA(acct *models.Account, code string) error {
	if !acct.MFAEnabled {
		return ErrMFANotEnrolled
	}

	if !verifyTOTP(acct.MFASecret, code, s.now()) {
		return ErrInvalidMFACode
	}

	if err := account.SetMFA(s.db, acct.ID, false, ""); err != nil {
		return storeError(err)
	}

	acct.MFAEnabled = false
	acct.MFASecret = ""

	log.Info().Uint64("account_id", acct.ID).Msg("mfa disabled")

	return nil
}
