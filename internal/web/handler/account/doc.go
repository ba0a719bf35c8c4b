// Package account provides the HTTP handlers for the account gateway:
// registration, credential and second-factor login, session revocation,
// password-reset tickets and second-factor enrollment.
//
// All request payloads are validated with go-playground/validator before
// they reach the auth service; service errors are translated to HTTP
// statuses centrally by the handler package.
package account
