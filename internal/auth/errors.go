package auth

import "errors"

var (
	// ErrDuplicateEmail is returned when registering with an email address
	// that already belongs to an account.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidCredentials is returned when login fails because the email
	// is unknown or the secret does not match. The two cases are deliberately
	// indistinguishable to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMFARequired signals that credential verification succeeded but the
	// account has a second factor enrolled and no code was supplied. It is a
	// control outcome, not a failure: the caller should retry with a code.
	ErrMFARequired = errors.New("second factor required")

	// ErrInvalidMFACode is returned when the supplied TOTP code does not
	// verify within the accepted step window.
	ErrInvalidMFACode = errors.New("invalid one-time code")

	// ErrMFANotEnrolled is returned when an MFA operation requires an
	// enrollment that does not exist.
	ErrMFANotEnrolled = errors.New("no second factor enrolled")

	// ErrUnauthenticated is returned when a bearer token is absent,
	// malformed, or unknown. The cases are indistinguishable.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when a resolved identity lacks permission
	// for the requested operation on a document.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidOrExpiredTicket is returned when a password-reset ticket
	// does not match any account, has expired, or was already redeemed.
	ErrInvalidOrExpiredTicket = errors.New("reset ticket is invalid or has expired")

	// ErrInvalidRole is returned when registration names a role outside the
	// closed enumeration.
	ErrInvalidRole = errors.New("invalid role")

	// ErrStoreUnavailable wraps persistence failures propagated from the
	// store. Callers may retry per their own policy; this core does not.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)
