// Package uniuri generates cryptographically secure random strings used as
// session tokens and password-reset tickets. Generation is modulo-bias free
// and sourced from crypto/rand.
package uniuri
