// Package bearer provides token authentication middleware for the API.
//
// The middleware reads the Authorization header, resolves the bearer token
// to an account through the auth service and stores the result in
// fiber.Locals. Handlers behind it can assume an authenticated account is
// present; a missing, malformed or revoked token never reaches them.
//
// Usage:
//
//	api := app.Group("/api/documents", bearer.New(svc))
package bearer
