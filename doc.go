// Package main provides the entry point for the GoDocVault service.
// It starts a Fiber web server exposing a JSON API for account
// registration and login, one-time-code second factors, password-reset
// tickets, multi-session tokens and per-document access control. The
// application uses gorm for persistence and zerolog for logging.
package main
