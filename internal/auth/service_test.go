package auth

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoDocVault/GoDocVault/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing. The pool is
// capped at one connection so every pooled handle sees the same in-memory
// database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Account{},
		&models.SessionToken{},
		&models.Document{},
		&models.Grant{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// newTestService returns a Service over a fresh test database with a fixed
// clock.
func newTestService(t *testing.T) (*Service, time.Time) {
	t.Helper()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	svc := NewService(setupTestDB(t))
	svc.now = func() time.Time { return now }

	return svc, now
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService(t)

	acct, token, err := svc.Register("Alice", "Alice@Example.com", "s3cret!", "", "archives")
	require.NoError(t, err)
	require.NotNil(t, acct)

	assert.Equal(t, "alice@example.com", acct.Email, "email should be normalized")
	assert.Equal(t, models.RoleStaff, acct.Role, "role should default to staff")
	assert.Equal(t, "archives", acct.Department)
	assert.NotEqual(t, "s3cret!", acct.SecretHash, "secret must not be stored in plaintext")

	// registration implies login
	require.NotEmpty(t, token)

	resolved, err := svc.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, acct.ID, resolved.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Register("Alice", "alice@example.com", "s3cret!", models.RoleStaff, "")
	require.NoError(t, err)

	// same address, different casing
	_, _, err = svc.Register("Imposter", "ALICE@example.com", "other", models.RoleStaff, "")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Register("Mallory", "mallory@example.com", "s3cret!", "superuser", "")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin(t *testing.T) {
	svc, now := newTestService(t)

	acct, _, err := svc.Register("Bob", "bob@example.com", "hunter2", models.RoleManager, "")
	require.NoError(t, err)

	testCases := []struct {
		name          string
		email         string
		secret        string
		expectedError error
	}{
		{
			name:          "unknown email",
			email:         "nobody@example.com",
			secret:        "hunter2",
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "wrong secret",
			email:         "bob@example.com",
			secret:        "wrong",
			expectedError: ErrInvalidCredentials,
		},
		{
			name:   "correct credentials",
			email:  "bob@example.com",
			secret: "hunter2",
		},
		{
			name:   "email casing is normalized",
			email:  "BOB@Example.COM",
			secret: "hunter2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, token, err := svc.Login(tc.email, tc.secret, "")
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Empty(t, token)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, acct.ID, got.ID)
			assert.NotEmpty(t, token)

			require.NotNil(t, got.LastLoginAt)
			assert.True(t, got.LastLoginAt.Equal(now))
		})
	}
}

func TestLoginWithoutMFANeverAsksForCode(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Register("Carol", "carol@example.com", "pw", models.RoleStaff, "")
	require.NoError(t, err)

	// first call with correct credentials returns a token straight away
	_, token, err := svc.Login("carol@example.com", "pw", "")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogout(t *testing.T) {
	svc, _ := newTestService(t)

	_, token, err := svc.Register("Dave", "dave@example.com", "pw", models.RoleStaff, "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token))

	_, err = svc.Resolve(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// token is gone, a second logout cannot resolve it
	assert.ErrorIs(t, svc.Logout(token), ErrUnauthenticated)
}

func TestLogoutAll(t *testing.T) {
	svc, _ := newTestService(t)

	acct, first, err := svc.Register("Erin", "erin@example.com", "pw", models.RoleStaff, "")
	require.NoError(t, err)

	_, second, err := svc.Login("erin@example.com", "pw", "")
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(acct))

	for _, token := range []string{first, second} {
		_, err = svc.Resolve(token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	}

	// a token issued after the purge resolves again
	_, fresh, err := svc.Login("erin@example.com", "pw", "")
	require.NoError(t, err)

	resolved, err := svc.Resolve(fresh)
	require.NoError(t, err)
	assert.Equal(t, acct.ID, resolved.ID)
}
