// Package auth implements the authentication and authorization core of the
// application: the credential and session lifecycle plus the per-document
// access-control model.
//
// # Gateway operations
//
// The Service type composes the core into the externally callable surface:
//   - Register: create an account and issue a first session token
//   - Login: password check, optional TOTP second factor, token issuance
//   - Logout / LogoutAll: revoke one or every session token
//   - RequestReset / CompleteReset: single-use, time-bounded password reset
//   - Resolve: map a bearer token back to an account
//
// # Sessions
//
// Session tokens are opaque random values stored one row per token. Issuing
// and revoking are single SQL statements, so concurrent logins on one
// account never lose updates. Changing the password through the reset flow
// revokes every outstanding token for the account.
//
// # Second factor
//
// Login is a stateless per-request evaluation: a request either completes
// with the password alone (MFA disabled) or must carry both the password
// and a current TOTP code. No pending-login state is kept between the two
// requests. Codes are accepted within one time step of skew either way.
//
// # Access control
//
// Authorize decides (account, document, operation) requests. The owner may
// do anything to their own document; everyone else needs a grant whose
// level covers the operation under the ordering delete > write > read.
//
// All outcomes cross the package boundary as stable sentinel errors; see
// errors.go. Store failures are wrapped in ErrStoreUnavailable and never
// retried here.
package auth
